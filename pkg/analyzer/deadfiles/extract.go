package deadfiles

import (
	"errors"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/orphanlabs/orphan/pkg/parser"
)

// ErrSyntax is returned by extractors when source content cannot be parsed.
var ErrSyntax = errors.New("syntax error")

// Extractor yields raw import strings from source content. Implementations
// must be pure: same content, same imports, no shared state.
type Extractor interface {
	// Language identifies the extractor's language.
	Language() parser.Language

	// Extract returns the raw import targets found in content, verbatim.
	// A returned error means the content could not be parsed; callers
	// treat it as a per-file diagnostic, never a fatal failure.
	Extract(content []byte) ([]string, error)
}

// Registry maps languages to extractors. Files whose language has no
// registered extractor are collected but never scanned for imports.
type Registry struct {
	byLang map[parser.Language]Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byLang: make(map[parser.Language]Extractor)}
}

// Register binds an extractor to the language it reports.
// Adding a language is one Register call.
func (r *Registry) Register(e Extractor) {
	r.byLang[e.Language()] = e
}

// Lookup returns the extractor for a path's detected language.
func (r *Registry) Lookup(path string) (Extractor, bool) {
	e, ok := r.byLang[parser.DetectLanguage(path)]
	return e, ok
}

// DefaultRegistry returns a registry with the built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&PythonExtractor{})
	r.Register(&DartExtractor{})
	return r
}

// PythonExtractor extracts imports from Python source via its AST.
// Both plain imports (import a.b) and from-imports (from a.b import c)
// yield the dotted module path; imported symbols are irrelevant for
// file-level dependency tracking.
type PythonExtractor struct{}

// Language implements Extractor.
func (e *PythonExtractor) Language() parser.Language {
	return parser.LangPython
}

// Extract implements Extractor. Source that does not parse cleanly yields
// ErrSyntax and no imports.
func (e *PythonExtractor) Extract(content []byte) ([]string, error) {
	p := parser.New()
	defer p.Close()

	result, err := p.Parse(content, parser.LangPython, "")
	if err != nil {
		return nil, err
	}
	if result.HasSyntaxError() {
		return nil, ErrSyntax
	}

	var imports []string
	parser.Walk(result.Tree.RootNode(), content, func(node *sitter.Node, src []byte) bool {
		switch node.Type() {
		case "import_statement":
			// import a.b, c as d
			for i := range int(node.NamedChildCount()) {
				child := node.NamedChild(i)
				switch child.Type() {
				case "dotted_name":
					if name := parser.GetNodeText(child, src); name != "" {
						imports = append(imports, name)
					}
				case "aliased_import":
					if nameNode := child.ChildByFieldName("name"); nameNode != nil {
						if name := parser.GetNodeText(nameNode, src); name != "" {
							imports = append(imports, name)
						}
					}
				}
			}
			return false

		case "import_from_statement":
			// from a.b import c -- only the module path matters.
			if modNode := node.ChildByFieldName("module_name"); modNode != nil {
				name := parser.GetNodeText(modNode, src)
				// A bare relative import (from . import x) has no
				// module name; leading dots otherwise are not part
				// of the module path.
				name = strings.TrimLeft(name, ".")
				if name != "" {
					imports = append(imports, name)
				}
			}
			return false
		}
		return true
	})

	return imports, nil
}

// dartImportPattern matches an import keyword followed by a quoted string.
var dartImportPattern = regexp.MustCompile(`import\s+['"](.+?)['"]`)

// DartExtractor extracts imports from Dart source with a lexical scan.
// No AST is built, so imports inside comments or string literals can
// produce false positives.
type DartExtractor struct{}

// Language implements Extractor.
func (e *DartExtractor) Language() parser.Language {
	return parser.LangDart
}

// Extract implements Extractor. It never fails.
func (e *DartExtractor) Extract(content []byte) ([]string, error) {
	var imports []string
	for _, m := range dartImportPattern.FindAllSubmatch(content, -1) {
		imports = append(imports, string(m[1]))
	}
	return imports, nil
}
