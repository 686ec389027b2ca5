package deadfiles

import (
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NodeMetric holds per-file graph metrics.
type NodeMetric struct {
	Path      string  `json:"path" toon:"path"`
	PageRank  float64 `json:"pagerank" toon:"pagerank"`
	InDegree  int     `json:"in_degree" toon:"in_degree"`
	OutDegree int     `json:"out_degree" toon:"out_degree"`
}

// MetricsSummary provides aggregate graph statistics.
type MetricsSummary struct {
	TotalNodes       int     `json:"total_nodes" toon:"total_nodes"`
	TotalEdges       int     `json:"total_edges" toon:"total_edges"`
	AvgDegree        float64 `json:"avg_degree" toon:"avg_degree"`
	Density          float64 `json:"density" toon:"density"`
	Components       int     `json:"components" toon:"components"`
	LargestComponent int     `json:"largest_component" toon:"largest_component"`
	CycleCount       int     `json:"cycle_count" toon:"cycle_count"`
	IsCyclic         bool    `json:"is_cyclic" toon:"is_cyclic"`
}

// Metrics holds graph metrics for an analysis result.
type Metrics struct {
	NodeMetrics []NodeMetric   `json:"node_metrics" toon:"node_metrics"`
	Summary     MetricsSummary `json:"summary" toon:"summary"`
}

// gonumGraph holds the gonum representation and path mappings.
type gonumGraph struct {
	directed   *simple.DirectedGraph
	undirected *simple.UndirectedGraph
	pathToID   map[string]int64
	idToPath   map[int64]string
}

// toGonumGraph converts the analysis universe and edges to gonum graphs.
func toGonumGraph(a *Analysis) *gonumGraph {
	g := &gonumGraph{
		directed:   simple.NewDirectedGraph(),
		undirected: simple.NewUndirectedGraph(),
		pathToID:   make(map[string]int64),
		idToPath:   make(map[int64]string),
	}

	for i, f := range a.Files {
		rel := relPath(a.Root, f)
		id := int64(i)
		g.pathToID[rel] = id
		g.idToPath[id] = rel
		g.directed.AddNode(simple.Node(id))
		g.undirected.AddNode(simple.Node(id))
	}

	for source, targets := range a.Graph {
		for _, target := range targets {
			fromID, fromOK := g.pathToID[source]
			toID, toOK := g.pathToID[target]
			if fromOK && toOK && fromID != toID {
				g.directed.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
				if !g.undirected.HasEdgeBetween(fromID, toID) {
					g.undirected.SetEdge(simple.Edge{F: simple.Node(fromID), T: simple.Node(toID)})
				}
			}
		}
	}

	return g
}

// ComputeMetrics calculates PageRank, degrees, connected components and
// cycle statistics over the file dependency graph.
func ComputeMetrics(a *Analysis) *Metrics {
	metrics := &Metrics{
		NodeMetrics: make([]NodeMetric, 0, len(a.Files)),
		Summary: MetricsSummary{
			TotalNodes: len(a.Files),
			TotalEdges: a.Summary.TotalEdges,
		},
	}

	if len(a.Files) == 0 {
		return metrics
	}

	g := toGonumGraph(a)

	inDegree := make(map[string]int, len(g.pathToID))
	outDegree := make(map[string]int, len(g.pathToID))
	for source, targets := range a.Graph {
		for _, target := range targets {
			outDegree[source]++
			inDegree[target]++
		}
	}

	pageRankMap := network.PageRank(g.directed, 0.85, 1e-6)

	paths := make([]string, 0, len(g.pathToID))
	for path := range g.pathToID {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	totalDegree := 0
	for _, path := range paths {
		metrics.NodeMetrics = append(metrics.NodeMetrics, NodeMetric{
			Path:      path,
			PageRank:  pageRankMap[g.pathToID[path]],
			InDegree:  inDegree[path],
			OutDegree: outDegree[path],
		})
		totalDegree += inDegree[path] + outDegree[path]
	}
	metrics.Summary.AvgDegree = float64(totalDegree) / float64(len(paths))

	if len(paths) > 1 {
		maxEdges := len(paths) * (len(paths) - 1)
		metrics.Summary.Density = float64(a.Summary.TotalEdges) / float64(maxEdges)
	}

	components := topo.ConnectedComponents(g.undirected)
	metrics.Summary.Components = len(components)
	for _, comp := range components {
		if len(comp) > metrics.Summary.LargestComponent {
			metrics.Summary.LargestComponent = len(comp)
		}
	}

	// Only SCCs with more than one node are actual cycles.
	for _, scc := range topo.TarjanSCC(g.directed) {
		if len(scc) > 1 {
			metrics.Summary.CycleCount++
		}
	}
	metrics.Summary.IsCyclic = metrics.Summary.CycleCount > 0

	return metrics
}
