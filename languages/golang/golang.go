package golang

import (
	"github.com/roveo/topo-context/languages"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

func init() {
	languages.Register(&Language{})
}

// Language implements the Go language capabilities
type Language struct{}

func (g *Language) Name() string {
	return "go"
}

func (g *Language) Extensions() []string {
	return []string{".go"}
}

func (g *Language) TreeSitterLang() *sitter.Language {
	return golang.GetLanguage()
}

// Go has no class construct; struct declarations stand in for classes and
// methods live outside them, so composite outlines never occur.
func (g *Language) OutlineStyle() languages.OutlineStyle {
	return languages.OutlineNone
}

func (g *Language) Queries() languages.Queries {
	return queries
}

var queries = languages.Queries{
	Imports: `(import_declaration) @import`,

	Functions: `
(function_declaration
  name: (identifier) @identifier
  parameters: (parameter_list) @parameters
  result: (_)? @return_type
  body: (block) @body) @function

(method_declaration
  name: (field_identifier) @identifier
  parameters: (parameter_list) @parameters
  result: (_)? @return_type
  body: (block) @body) @function

(func_literal
  parameters: (parameter_list) @parameters
  result: (_)? @return_type
  body: (block) @body) @function
`,

	Classes: `
(type_declaration
  (type_spec
    name: (type_identifier) @identifier
    type: (struct_type))) @class_declaration
`,

	Types: `
(type_spec
  name: (type_identifier) @identifier) @type_declaration
`,

	Comments: `(comment) @comment`,

	Identifiers: `
(short_var_declaration left: (expression_list (identifier) @identifier))
(var_spec name: (identifier) @identifier)
(parameter_declaration name: (identifier) @identifier)
(range_clause left: (expression_list (identifier) @identifier))
`,
}
