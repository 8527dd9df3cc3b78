package typescript

import (
	"github.com/roveo/topo-context/languages"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

func init() {
	languages.Register(&TSLanguage{})
	languages.Register(&TSXLanguage{})
	languages.Register(&JSLanguage{})
	languages.Register(&JSXLanguage{})
}

// ecmascript carries what every TypeScript/JavaScript flavour shares
type ecmascript struct{}

func (ecmascript) OutlineStyle() languages.OutlineStyle { return languages.OutlineNone }

// TSLanguage implements TypeScript (.ts)
type TSLanguage struct{ ecmascript }

func (t *TSLanguage) Name() string                     { return "typescript" }
func (t *TSLanguage) Extensions() []string             { return []string{".ts"} }
func (t *TSLanguage) TreeSitterLang() *sitter.Language { return typescript.GetLanguage() }
func (t *TSLanguage) Queries() languages.Queries       { return tsQueries }

// TSXLanguage implements TSX (.tsx)
type TSXLanguage struct{ ecmascript }

func (t *TSXLanguage) Name() string                     { return "tsx" }
func (t *TSXLanguage) Extensions() []string             { return []string{".tsx"} }
func (t *TSXLanguage) TreeSitterLang() *sitter.Language { return tsx.GetLanguage() }
func (t *TSXLanguage) Queries() languages.Queries       { return tsQueries }

// JSLanguage implements JavaScript (.js)
type JSLanguage struct{ ecmascript }

func (j *JSLanguage) Name() string                     { return "javascript" }
func (j *JSLanguage) Extensions() []string             { return []string{".js", ".mjs", ".cjs"} }
func (j *JSLanguage) TreeSitterLang() *sitter.Language { return javascript.GetLanguage() }
func (j *JSLanguage) Queries() languages.Queries       { return jsQueries }

// JSXLanguage implements JSX (.jsx)
type JSXLanguage struct{ ecmascript }

func (j *JSXLanguage) Name() string                     { return "jsx" }
func (j *JSXLanguage) Extensions() []string             { return []string{".jsx"} }
func (j *JSXLanguage) TreeSitterLang() *sitter.Language { return javascript.GetLanguage() }
func (j *JSXLanguage) Queries() languages.Queries       { return jsQueries }

const (
	importQuery     = `(import_statement) @import`
	commentQuery    = `(comment) @comment`
	identifierQuery = `
(variable_declarator name: (identifier) @identifier)
(required_parameter pattern: (identifier) @identifier)
`
)

var tsQueries = languages.Queries{
	Imports: importQuery,

	Functions: `
(function_declaration
  name: (identifier) @identifier
  parameters: (formal_parameters) @parameters
  return_type: (type_annotation)? @return_type
  body: (statement_block) @body) @function

(method_definition
  name: (property_identifier) @identifier
  parameters: (formal_parameters) @parameters
  return_type: (type_annotation)? @return_type
  body: (statement_block) @body) @function

(arrow_function
  parameters: (formal_parameters) @parameters
  return_type: (type_annotation)? @return_type
  body: (_) @body) @function
`,

	Classes: `
(class_declaration
  name: (type_identifier) @identifier) @class_declaration
`,

	Types: `
(interface_declaration
  name: (type_identifier) @identifier) @type_declaration

(type_alias_declaration
  name: (type_identifier) @identifier) @type_declaration

(enum_declaration
  name: (identifier) @identifier) @type_declaration
`,

	Comments:    commentQuery,
	Identifiers: identifierQuery,
}

var jsQueries = languages.Queries{
	Imports: importQuery,

	Functions: `
(function_declaration
  name: (identifier) @identifier
  parameters: (formal_parameters) @parameters
  body: (statement_block) @body) @function

(method_definition
  name: (property_identifier) @identifier
  parameters: (formal_parameters) @parameters
  body: (statement_block) @body) @function

(arrow_function
  parameters: (formal_parameters) @parameters
  body: (_) @body) @function
`,

	Classes: `
(class_declaration
  name: (identifier) @identifier) @class_declaration
`,

	Comments: commentQuery,
	Identifiers: `
(variable_declarator name: (identifier) @identifier)
(formal_parameters (identifier) @identifier)
`,
}
