package deadfiles

import (
	"os"
	"path/filepath"
	"strings"
)

// Resolver converts raw import strings into existing files on disk.
// Resolution rules are tried in a fixed priority order based on the
// import's shape; a candidate only becomes an edge if it exists. External
// imports (standard library, installed packages) never resolve: only
// intra-project dependencies are tracked.
type Resolver struct {
	// Root is the project root directory, absolute.
	Root string

	// LibDir is the source-root directory for package-style imports.
	LibDir string

	// PackagePrefix marks namespaced package-style imports.
	PackagePrefix string

	// SourceSuffix triggers source-relative path resolution (rule 1).
	SourceSuffix string

	// ModuleSuffix is appended to dotted module paths (rule 3).
	ModuleSuffix string
}

// NewResolver creates a resolver with the conventional defaults.
func NewResolver(root string) *Resolver {
	return &Resolver{
		Root:          root,
		LibDir:        "lib",
		PackagePrefix: "package:",
		SourceSuffix:  ".py",
		ModuleSuffix:  ".dart",
	}
}

// Resolve maps a raw import from sourceFile to an existing file. The
// second return value is false when no existing file matches; misses are
// expected and carry no error.
func (r *Resolver) Resolve(sourceFile, raw string) (string, bool) {
	var candidate string

	switch {
	case strings.HasSuffix(raw, r.SourceSuffix):
		// Quoted path relative to the importing file's directory.
		candidate = filepath.Join(filepath.Dir(sourceFile), raw)

	case strings.HasPrefix(raw, r.PackagePrefix):
		// package:name/path.ext relative to the project source root.
		rest := strings.TrimPrefix(raw, r.PackagePrefix)
		candidate = filepath.Join(r.Root, r.LibDir, filepath.FromSlash(rest))

	default:
		// Dotted module path relative to the importing file's directory.
		rel := strings.ReplaceAll(raw, ".", string(filepath.Separator)) + r.ModuleSuffix
		candidate = filepath.Join(filepath.Dir(sourceFile), rel)
	}

	candidate = filepath.Clean(candidate)

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}
