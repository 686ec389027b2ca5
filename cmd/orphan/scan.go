package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/orphanlabs/orphan/internal/output"
	"github.com/orphanlabs/orphan/internal/progress"
	"github.com/orphanlabs/orphan/internal/scanner"
	"github.com/orphanlabs/orphan/pkg/analyzer/deadfiles"
	"github.com/orphanlabs/orphan/pkg/source"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Aliases:   []string{"s"},
		Usage:     "Scan a project and report files nothing imports",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "graph-file",
				Usage: "Write the dependency graph to a JSON file",
			},
		},
		Action: runScanCmd,
	}
}

// analyzeRoot runs collection and import analysis for a project root.
// Collection problems fold into the analysis diagnostics so every
// non-fatal failure surfaces through the same channel.
func analyzeRoot(c *cli.Context, label string) (*deadfiles.Analysis, error) {
	root := getRoot(c)

	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	scan := scanner.NewScanner(cfg)
	scanResult, err := scan.ScanDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	var collectDiags []deadfiles.Diagnostic
	for _, p := range scanResult.Problems {
		collectDiags = append(collectDiags, deadfiles.Diagnostic{
			File:     p.Path,
			Stage:    deadfiles.StageCollect,
			Severity: deadfiles.SeverityWarning,
			Message:  p.Message,
		})
	}

	tracker := progress.NewTracker(label, len(scanResult.Files))
	analyzer := deadfiles.New(
		deadfiles.WithResolution(
			cfg.Resolution.LibDir,
			cfg.Resolution.PackagePrefix,
			cfg.Resolution.SourceSuffix,
			cfg.Resolution.ModuleSuffix,
		),
		deadfiles.WithWorkers(cfg.Scan.Workers),
		deadfiles.WithMaxFileSize(cfg.Scan.MaxFileSize),
		deadfiles.WithProgress(tracker.Tick),
	)
	analysis, err := analyzer.Analyze(context.Background(), scanResult.Root, scanResult.Files, source.NewFilesystem())
	if err != nil {
		tracker.FinishError(err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	analysis.Diagnostics = append(collectDiags, analysis.Diagnostics...)
	return analysis, nil
}

// filterDiagnostics drops debug-severity entries unless verbose output
// was requested. The filter applies to every output format.
func filterDiagnostics(diags []deadfiles.Diagnostic, verbose bool) []deadfiles.Diagnostic {
	if verbose {
		return diags
	}
	var filtered []deadfiles.Diagnostic
	for _, d := range diags {
		if d.Severity != deadfiles.SeverityDebug {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

func runScanCmd(c *cli.Context) error {
	analysis, err := analyzeRoot(c, "Scanning imports...")
	if err != nil {
		return err
	}
	analysis.Diagnostics = filterDiagnostics(analysis.Diagnostics, c.Bool("verbose"))

	if graphFile := c.String("graph-file"); graphFile != "" {
		data, err := json.MarshalIndent(analysis.Graph, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		if err := os.WriteFile(graphFile, data, 0o644); err != nil {
			return fmt.Errorf("failed to write graph file: %w", err)
		}
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(analysis)
	}

	if len(analysis.Unused) > 0 {
		var rows [][]string
		for _, f := range analysis.Unused {
			rows = append(rows, []string{truncate(f, 80)})
		}
		table := output.NewTable(
			"Unreferenced Files",
			[]string{"File"},
			rows,
			nil,
			nil,
		)
		if err := formatter.Output(table); err != nil {
			return err
		}
	} else if formatter.Colored() {
		color.Green("No unreferenced files found")
	} else {
		fmt.Fprintln(formatter.Writer(), "No unreferenced files found")
	}

	shown := 0
	for _, d := range analysis.Diagnostics {
		if shown == 0 {
			fmt.Fprintln(formatter.Writer())
		}
		shown++
		if d.Severity == deadfiles.SeverityWarning && formatter.Colored() {
			color.Yellow("  %s: %s: %s", d.Stage, d.File, d.Message)
		} else {
			fmt.Fprintf(formatter.Writer(), "  %s: %s: %s\n", d.Stage, d.File, d.Message)
		}
	}

	fmt.Fprintf(formatter.Writer(), "\nSummary: %d files collected, %d scanned, %d import edges, %d unreferenced\n",
		analysis.Summary.TotalFiles,
		analysis.Summary.ScannedFiles,
		analysis.Summary.TotalEdges,
		analysis.Summary.UnusedFiles)

	return nil
}
