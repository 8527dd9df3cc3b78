package languages

import sitter "github.com/smacker/go-tree-sitter"

// OutlineStyle selects how composite class outlines are rendered
type OutlineStyle int

const (
	// OutlineNone renders only childless classes.
	OutlineNone OutlineStyle = iota
	// OutlineImplBlock wraps member outlines in "impl <name> { ... }".
	OutlineImplBlock
)

// Queries holds the tree-sitter query sources a language uses to report
// structure. An empty query means the language has no such construct.
//
// Capture names are fixed:
//   - Functions: function, identifier, parameters, body, return_type
//   - Classes: class_declaration, identifier
//   - Types: type_declaration, identifier
//   - Imports: import
//   - Comments: comment
//   - Identifiers: identifier
type Queries struct {
	Imports     string
	Functions   string
	Classes     string
	Types       string
	Comments    string
	Identifiers string
}

// Language describes the capabilities of one registered language
type Language interface {
	// Name returns the language identifier (e.g., "go", "python")
	Name() string

	// Extensions returns the file extensions this language handles (e.g., [".go"])
	Extensions() []string

	// TreeSitterLang returns the tree-sitter language for parsing
	TreeSitterLang() *sitter.Language

	// Queries returns the capture queries for structural extraction
	Queries() Queries

	// OutlineStyle returns the rendering rule for class outlines
	OutlineStyle() OutlineStyle
}

// Provider resolves languages for documents.
type Provider interface {
	ForFile(path string) Language
	ByName(name string) Language
}
