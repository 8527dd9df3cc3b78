package python

import (
	"github.com/roveo/topo-context/languages"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

func init() {
	languages.Register(&Language{})
}

// Language implements the Python language capabilities
type Language struct{}

func (p *Language) Name() string {
	return "python"
}

func (p *Language) Extensions() []string {
	return []string{".py"}
}

func (p *Language) TreeSitterLang() *sitter.Language {
	return python.GetLanguage()
}

func (p *Language) OutlineStyle() languages.OutlineStyle {
	return languages.OutlineNone
}

func (p *Language) Queries() languages.Queries {
	return queries
}

var queries = languages.Queries{
	Imports: `
(import_statement) @import
(import_from_statement) @import
(future_import_statement) @import
`,

	Functions: `
(function_definition
  name: (identifier) @identifier
  parameters: (parameters) @parameters
  return_type: (_)? @return_type
  body: (block) @body) @function
`,

	Classes: `
(class_definition
  name: (identifier) @identifier) @class_declaration
`,

	Comments: `(comment) @comment`,

	Identifiers: `
(assignment left: (identifier) @identifier)
(parameters (identifier) @identifier)
(for_statement left: (identifier) @identifier)
`,
}
