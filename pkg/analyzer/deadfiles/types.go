package deadfiles

// Stage identifies the analysis phase that produced a diagnostic.
type Stage string

const (
	StageCollect Stage = "collect"
	StageRead    Stage = "read"
	StageParse   Stage = "parse"
	StageResolve Stage = "resolve"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityDebug   Severity = "debug"
)

// Diagnostic records a non-fatal, per-file analysis failure.
// No stage aborts the run; every failure degrades to one of these.
type Diagnostic struct {
	File     string   `json:"file" toon:"file"`
	Stage    Stage    `json:"stage" toon:"stage"`
	Severity Severity `json:"severity" toon:"severity"`
	Message  string   `json:"message" toon:"message"`
}

// Summary provides aggregate analysis counts.
type Summary struct {
	TotalFiles   int `json:"total_files" toon:"total_files"`
	ScannedFiles int `json:"scanned_files" toon:"scanned_files"`
	TotalEdges   int `json:"total_edges" toon:"total_edges"`
	UnusedFiles  int `json:"unused_files" toon:"unused_files"`
}

// Analysis is the result of a dead-file analysis run.
//
// Graph and Unused use project-root-relative paths: Graph maps each source
// file to its resolved targets in discovery order, and Unused is sorted.
// The absolute-path structures (Files, Used, Dependencies) are kept for
// callers that post-process the result.
type Analysis struct {
	Root        string              `json:"root" toon:"root"`
	Graph       map[string][]string `json:"graph" toon:"graph"`
	Unused      []string            `json:"unused" toon:"unused"`
	Diagnostics []Diagnostic        `json:"diagnostics,omitempty" toon:"diagnostics,omitempty"`
	Summary     Summary             `json:"summary" toon:"summary"`

	// Files is the collected universe, absolute paths.
	Files []string `json:"-" toon:"-"`

	// Used marks files that were scanned as a source or appear as an
	// edge target. Files merely opened without a registered extractor
	// still count; this intentionally never flags entry points.
	Used map[string]bool `json:"-" toon:"-"`

	// Dependencies is the absolute-path dependency graph.
	Dependencies *DependencyGraph `json:"-" toon:"-"`
}
