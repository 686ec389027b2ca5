package deadfiles

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"unicode/utf8"

	"github.com/sourcegraph/conc/pool"

	"github.com/orphanlabs/orphan/pkg/source"
)

// Analyzer finds files never referenced by any resolvable import.
type Analyzer struct {
	registry    *Registry
	libDir      string
	prefix      string
	srcSuffix   string
	modSuffix   string
	workers     int
	maxFileSize int64
	onProgress  func()
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithRegistry sets the extractor registry.
func WithRegistry(r *Registry) Option {
	return func(a *Analyzer) {
		a.registry = r
	}
}

// WithResolution overrides the resolver's project conventions.
func WithResolution(libDir, packagePrefix, sourceSuffix, moduleSuffix string) Option {
	return func(a *Analyzer) {
		a.libDir = libDir
		a.prefix = packagePrefix
		a.srcSuffix = sourceSuffix
		a.modSuffix = moduleSuffix
	}
}

// WithWorkers sets the scan worker count (0 = 2x NumCPU).
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// WithMaxFileSize caps the content size scanned per file (0 = no limit).
// Oversized files are skipped with a diagnostic but stay in the universe.
func WithMaxFileSize(maxSize int64) Option {
	return func(a *Analyzer) {
		a.maxFileSize = maxSize
	}
}

// WithProgress sets a callback invoked after each file is processed.
func WithProgress(fn func()) Option {
	return func(a *Analyzer) {
		a.onProgress = fn
	}
}

// New creates a new dead-file analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		registry:  DefaultRegistry(),
		libDir:    "lib",
		prefix:    "package:",
		srcSuffix: ".py",
		modSuffix: ".dart",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// edge is a resolved source -> target dependency.
type edge struct {
	from string
	to   string
}

// fileResult holds one file's scan outcome. Per-file results merge into
// the final graph and used set regardless of worker interleaving.
type fileResult struct {
	path    string
	scanned bool
	edges   []edge
	diags   []Diagnostic
}

// Analyze scans files under root and classifies each as used or unused.
// The universe is exactly the files argument; edges only ever point at
// existing files. Per-file failures become Diagnostics, never errors; the
// only error returns are an unusable root and context cancellation.
func (a *Analyzer) Analyze(ctx context.Context, root string, files []string, src source.ContentSource) (*Analysis, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %s: %w", root, err)
	}
	absRoot = filepath.Clean(absRoot)

	resolver := &Resolver{
		Root:          absRoot,
		LibDir:        a.libDir,
		PackagePrefix: a.prefix,
		SourceSuffix:  a.srcSuffix,
		ModuleSuffix:  a.modSuffix,
	}

	workers := a.workers
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}

	// Scan phase: each file is independent, so it parallelizes freely.
	// Workers write to disjoint indices; the merge below runs single
	// threaded in input order so output is deterministic.
	results := make([]fileResult, len(files))
	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range files {
		p.Go(func() {
			if ctx.Err() != nil {
				return
			}
			results[i] = a.scanFile(path, resolver, src)
			if a.onProgress != nil {
				a.onProgress()
			}
		})
	}
	p.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return a.reduce(absRoot, files, results), nil
}

// scanFile reads and scans a single file, producing its edges and
// diagnostics. It never fails: every error path degrades to a Diagnostic.
func (a *Analyzer) scanFile(path string, resolver *Resolver, src source.ContentSource) fileResult {
	res := fileResult{path: path}

	content, err := src.Read(path)
	if err != nil {
		res.diags = append(res.diags, Diagnostic{
			File:     path,
			Stage:    StageRead,
			Severity: SeverityWarning,
			Message:  err.Error(),
		})
		return res
	}

	if a.maxFileSize > 0 && int64(len(content)) > a.maxFileSize {
		res.diags = append(res.diags, Diagnostic{
			File:     path,
			Stage:    StageRead,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("file exceeds size cap (%d bytes)", a.maxFileSize),
		})
		return res
	}

	if !utf8.Valid(content) {
		// Undecodable content never reaches an extractor; the file
		// stays in the universe but drops out of the used set.
		res.diags = append(res.diags, Diagnostic{
			File:     path,
			Stage:    StageRead,
			Severity: SeverityWarning,
			Message:  "content is not valid UTF-8",
		})
		return res
	}

	// Reading and decoding the file successfully marks it used, whether
	// or not an extractor exists for its extension.
	res.scanned = true

	extractor, ok := a.registry.Lookup(path)
	if !ok {
		return res
	}

	imports, err := extractor.Extract(content)
	if err != nil {
		// Parse failures still count as scanned: a file we could not
		// parse must not be misreported as unused.
		res.diags = append(res.diags, Diagnostic{
			File:     path,
			Stage:    StageParse,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s: %v", extractor.Language(), err),
		})
		return res
	}

	for _, raw := range imports {
		target, ok := resolver.Resolve(path, raw)
		if !ok {
			// Expected for stdlib/third-party imports.
			res.diags = append(res.diags, Diagnostic{
				File:     path,
				Stage:    StageResolve,
				Severity: SeverityDebug,
				Message:  fmt.Sprintf("no file for import %q", raw),
			})
			continue
		}
		res.edges = append(res.edges, edge{from: path, to: target})
	}

	return res
}

// reduce merges per-file results into the final classification.
func (a *Analyzer) reduce(root string, files []string, results []fileResult) *Analysis {
	graph := NewDependencyGraph()
	used := make(map[string]bool)
	var diags []Diagnostic
	scanned := 0

	for _, res := range results {
		if res.scanned {
			used[res.path] = true
			scanned++
		}
		for _, e := range res.edges {
			graph.AddEdge(e.from, e.to)
		}
		diags = append(diags, res.diags...)
	}

	for target := range graph.TargetSet() {
		used[target] = true
	}

	// UnusedSet = FileUniverse - UsedSet.
	var unused []string
	for _, f := range files {
		if !used[f] {
			unused = append(unused, relPath(root, f))
		}
	}
	sort.Strings(unused)

	return &Analysis{
		Root:         root,
		Graph:        graph.Rel(root),
		Unused:       unused,
		Diagnostics:  diags,
		Files:        files,
		Used:         used,
		Dependencies: graph,
		Summary: Summary{
			TotalFiles:   len(files),
			ScannedFiles: scanned,
			TotalEdges:   graph.EdgeCount(),
			UnusedFiles:  len(unused),
		},
	}
}
