package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/orphanlabs/orphan/internal/output"
	"github.com/orphanlabs/orphan/pkg/analyzer/deadfiles"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"dag"},
		Usage:     "Generate the import dependency graph (Mermaid output)",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Include PageRank and centrality metrics",
			},
		},
		Action: runGraphCmd,
	}
}

func runGraphCmd(c *cli.Context) error {
	includeMetrics := c.Bool("metrics")

	analysis, err := analyzeRoot(c, "Building dependency graph...")
	if err != nil {
		return err
	}

	var metrics *deadfiles.Metrics
	if includeMetrics {
		metrics = deadfiles.ComputeMetrics(analysis)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// For JSON/TOON, output structured data
	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		if metrics != nil {
			return formatter.Output(struct {
				Graph   map[string][]string `json:"graph" toon:"graph"`
				Metrics *deadfiles.Metrics  `json:"metrics" toon:"metrics"`
			}{analysis.Graph, metrics})
		}
		return formatter.Output(analysis.Graph)
	}

	// Generate Mermaid diagram for text/markdown
	sources := make([]string, 0, len(analysis.Graph))
	for src := range analysis.Graph {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	fmt.Fprintln(formatter.Writer(), "```mermaid")
	fmt.Fprintln(formatter.Writer(), "graph TD")
	for _, src := range sources {
		fmt.Fprintf(formatter.Writer(), "    %s[%s]\n", sanitizeID(src), src)
	}
	for _, src := range sources {
		for _, target := range analysis.Graph[src] {
			fmt.Fprintf(formatter.Writer(), "    %s --> %s\n", sanitizeID(src), sanitizeID(target))
		}
	}
	fmt.Fprintln(formatter.Writer(), "```")

	if metrics != nil {
		fmt.Fprintln(formatter.Writer())
		if formatter.Colored() {
			color.Cyan("Graph Metrics:")
		} else {
			fmt.Fprintln(formatter.Writer(), "Graph Metrics:")
		}
		fmt.Fprintf(formatter.Writer(), "  Nodes: %d\n", metrics.Summary.TotalNodes)
		fmt.Fprintf(formatter.Writer(), "  Edges: %d\n", metrics.Summary.TotalEdges)
		fmt.Fprintf(formatter.Writer(), "  Avg Degree: %.2f\n", metrics.Summary.AvgDegree)
		fmt.Fprintf(formatter.Writer(), "  Density: %.4f\n", metrics.Summary.Density)
		fmt.Fprintf(formatter.Writer(), "  Components: %d (largest %d)\n",
			metrics.Summary.Components, metrics.Summary.LargestComponent)
		if metrics.Summary.IsCyclic {
			fmt.Fprintf(formatter.Writer(), "  Cycles: %d\n", metrics.Summary.CycleCount)
		}

		if len(metrics.NodeMetrics) > 0 {
			fmt.Fprintln(formatter.Writer())
			if formatter.Colored() {
				color.Cyan("Top Files by PageRank:")
			} else {
				fmt.Fprintln(formatter.Writer(), "Top Files by PageRank:")
			}
			ranked := append([]deadfiles.NodeMetric(nil), metrics.NodeMetrics...)
			sort.Slice(ranked, func(i, j int) bool {
				return ranked[i].PageRank > ranked[j].PageRank
			})
			for i, nm := range ranked {
				if i >= 5 {
					break
				}
				fmt.Fprintf(formatter.Writer(), "  %s: %.4f (in: %d, out: %d)\n",
					nm.Path, nm.PageRank, nm.InDegree, nm.OutDegree)
			}
		}
	}

	return nil
}
