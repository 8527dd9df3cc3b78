// Package chunking extracts structural entities (functions, classes, types)
// from a parsed source file and folds, documents and indexes them.
package chunking

import (
	"github.com/roveo/topo-context/languages"
)

// FunctionNodeType names the role of a capture inside a function match
type FunctionNodeType int

const (
	FunctionIdentifier FunctionNodeType = iota
	FunctionBody
	FunctionFull
	FunctionParameters
	FunctionReturnType
)

// FunctionNodeTypeFromCapture maps a query capture name to its role
func FunctionNodeTypeFromCapture(name string) (FunctionNodeType, bool) {
	switch name {
	case "identifier":
		return FunctionIdentifier, true
	case "body":
		return FunctionBody, true
	case "function":
		return FunctionFull, true
	case "parameters":
		return FunctionParameters, true
	case "return_type":
		return FunctionReturnType, true
	}
	return 0, false
}

// Identifier is a named identifier node and where it occurs
type Identifier struct {
	Name  string          `json:"name"`
	Range languages.Range `json:"range"`
}

// FunctionNodeInformation holds the text of a function's parts
type FunctionNodeInformation struct {
	Name          string       `json:"name"`
	Parameters    string       `json:"parameters"`
	Body          string       `json:"body"`
	ReturnType    string       `json:"return_type"`
	Documentation string       `json:"documentation,omitempty"`
	Identifiers   []Identifier `json:"identifiers,omitempty"`
}

// FunctionInformation is one function capture
type FunctionInformation struct {
	Range languages.Range          `json:"range"`
	Type  FunctionNodeType         `json:"type"`
	Node  *FunctionNodeInformation `json:"node,omitempty"`
}

// NewFunctionInformation creates a FunctionInformation without node details
func NewFunctionInformation(r languages.Range, typ FunctionNodeType) FunctionInformation {
	return FunctionInformation{Range: r, Type: typ}
}

// Name returns the function name, or "" when no node information is set.
func (f *FunctionInformation) Name() string {
	if f.Node == nil {
		return ""
	}
	return f.Node.Name
}

// Documentation returns the attached documentation, if any.
func (f *FunctionInformation) Documentation() string {
	if f.Node == nil {
		return ""
	}
	return f.Node.Documentation
}

// Identifiers returns the identifiers found inside the function.
func (f *FunctionInformation) Identifiers() []Identifier {
	if f.Node == nil {
		return nil
	}
	return f.Node.Identifiers
}

// SetDocumentation is a no-op without node information.
func (f *FunctionInformation) SetDocumentation(doc string) {
	if f.Node != nil {
		f.Node.Documentation = doc
	}
}

// InsertIdentifier is a no-op without node information.
func (f *FunctionInformation) InsertIdentifier(name string, r languages.Range) {
	if f.Node != nil {
		f.Node.Identifiers = append(f.Node.Identifiers, Identifier{Name: name, Range: r})
	}
}

// Content returns the function's source text.
func (f *FunctionInformation) Content(source string) (string, error) {
	return f.Range.Slice(source)
}

func (f FunctionInformation) clone() FunctionInformation {
	if f.Node != nil {
		node := *f.Node
		node.Identifiers = append([]Identifier(nil), f.Node.Identifiers...)
		f.Node = &node
	}
	return f
}

// ClassNodeType names the role of a capture inside a class match
type ClassNodeType int

const (
	ClassIdentifier ClassNodeType = iota
	ClassDeclaration
)

// ClassNodeTypeFromCapture maps a query capture name to its role
func ClassNodeTypeFromCapture(name string) (ClassNodeType, bool) {
	switch name {
	case "identifier":
		return ClassIdentifier, true
	case "class_declaration":
		return ClassDeclaration, true
	}
	return 0, false
}

// ClassInformation is one class capture
type ClassInformation struct {
	Range         languages.Range `json:"range"`
	Name          string          `json:"name"`
	Type          ClassNodeType   `json:"type"`
	Documentation string          `json:"documentation,omitempty"`
}

// Content returns the class's source text.
func (c *ClassInformation) Content(source string) (string, error) {
	return c.Range.Slice(source)
}

// TypeNodeType names the role of a capture inside a type match
type TypeNodeType int

const (
	TypeIdentifier TypeNodeType = iota
	TypeDeclaration
)

// TypeNodeTypeFromCapture maps a query capture name to its role
func TypeNodeTypeFromCapture(name string) (TypeNodeType, bool) {
	switch name {
	case "identifier":
		return TypeIdentifier, true
	case "type_declaration":
		return TypeDeclaration, true
	}
	return 0, false
}

// TypeInformation is one type declaration capture
type TypeInformation struct {
	Range         languages.Range `json:"range"`
	Name          string          `json:"name"`
	Type          TypeNodeType    `json:"type"`
	Documentation string          `json:"documentation,omitempty"`
}

// Content returns the type's source text.
func (t *TypeInformation) Content(source string) (string, error) {
	return t.Range.Slice(source)
}

// ClassWithFunctions groups functions under the class that contains them.
// Class is nil for the group of free functions.
type ClassWithFunctions struct {
	Class     *ClassInformation
	Functions []FunctionInformation
}

// GroupFunctionsByClass assigns each function to the first class whose
// range contains it. Functions outside every class are returned in a final
// group with a nil Class, if there are any.
func GroupFunctionsByClass(classes []ClassInformation, functions []FunctionInformation) []ClassWithFunctions {
	groups := make([]ClassWithFunctions, len(classes))
	for i := range classes {
		groups[i].Class = &classes[i]
	}
	var free []FunctionInformation
	for _, fn := range functions {
		placed := false
		for i := range groups {
			if groups[i].Class.Range.Contains(fn.Range) {
				groups[i].Functions = append(groups[i].Functions, fn)
				placed = true
				break
			}
		}
		if !placed {
			free = append(free, fn)
		}
	}
	if len(free) > 0 {
		groups = append(groups, ClassWithFunctions{Functions: free})
	}
	return groups
}
