package deadfiles

import "path/filepath"

// DependencyGraph accumulates directed file-to-file edges with set
// semantics: inserting an edge twice has no observable effect. Source and
// target order is preserved as insertion order so output is deterministic.
type DependencyGraph struct {
	order   []string
	targets map[string][]string
	seen    map[string]map[string]bool
}

// NewDependencyGraph creates an empty graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		targets: make(map[string][]string),
		seen:    make(map[string]map[string]bool),
	}
}

// AddEdge records a source -> target dependency. Idempotent.
func (g *DependencyGraph) AddEdge(source, target string) {
	set, ok := g.seen[source]
	if !ok {
		set = make(map[string]bool)
		g.seen[source] = set
		g.order = append(g.order, source)
	}
	if set[target] {
		return
	}
	set[target] = true
	g.targets[source] = append(g.targets[source], target)
}

// Sources returns source files in insertion order.
func (g *DependencyGraph) Sources() []string {
	return g.order
}

// Targets returns the targets of a source file in discovery order.
func (g *DependencyGraph) Targets(source string) []string {
	return g.targets[source]
}

// HasEdge reports whether the edge exists.
func (g *DependencyGraph) HasEdge(source, target string) bool {
	return g.seen[source][target]
}

// EdgeCount returns the total number of distinct edges.
func (g *DependencyGraph) EdgeCount() int {
	n := 0
	for _, ts := range g.targets {
		n += len(ts)
	}
	return n
}

// TargetSet returns the set of all files appearing as an edge target.
func (g *DependencyGraph) TargetSet() map[string]bool {
	set := make(map[string]bool)
	for _, ts := range g.targets {
		for _, t := range ts {
			set[t] = true
		}
	}
	return set
}

// Rel returns the graph keyed and valued by root-relative paths. This is
// the external representation persisted for visualization tooling.
func (g *DependencyGraph) Rel(root string) map[string][]string {
	out := make(map[string][]string, len(g.order))
	for _, source := range g.order {
		targets := make([]string, 0, len(g.targets[source]))
		for _, t := range g.targets[source] {
			targets = append(targets, relPath(root, t))
		}
		out[relPath(root, source)] = targets
	}
	return out
}

// relPath converts an absolute path to a root-relative slash path. Paths
// outside the root are returned as-is.
func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
