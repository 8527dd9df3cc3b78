package rust

import (
	"github.com/roveo/topo-context/languages"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

func init() {
	languages.Register(&Language{})
}

// Language implements the Rust language capabilities
type Language struct{}

func (r *Language) Name() string         { return "rust" }
func (r *Language) Extensions() []string { return []string{".rs"} }

func (r *Language) TreeSitterLang() *sitter.Language {
	return rust.GetLanguage()
}

// Methods live inside impl blocks, so class outlines are rendered as
// "impl <Type> { ... }" with the member signatures inside.
func (r *Language) OutlineStyle() languages.OutlineStyle {
	return languages.OutlineImplBlock
}

func (r *Language) Queries() languages.Queries {
	return queries
}

var queries = languages.Queries{
	Imports: `
(use_declaration) @import
(extern_crate_declaration) @import
`,

	Functions: `
(function_item
  name: (identifier) @identifier
  parameters: (parameters) @parameters
  return_type: (_)? @return_type
  body: (block) @body) @function
`,

	Classes: `
(impl_item
  type: (_) @identifier) @class_declaration

(struct_item
  name: (type_identifier) @identifier) @class_declaration

(trait_item
  name: (type_identifier) @identifier) @class_declaration
`,

	Types: `
(enum_item
  name: (type_identifier) @identifier) @type_declaration

(type_item
  name: (type_identifier) @identifier) @type_declaration
`,

	Comments: `
(line_comment) @comment
(block_comment) @comment
`,

	Identifiers: `
(let_declaration pattern: (identifier) @identifier)
(parameter pattern: (identifier) @identifier)
`,
}
