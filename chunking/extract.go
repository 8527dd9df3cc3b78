package chunking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roveo/topo-context/languages"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("topo.chunking")

func malformed(kind string, primary string, m languages.Match) {
	log.Debugf("%v: %s match without @%s capture (%d captures)",
		languages.ErrMalformedCapture, kind, primary, len(m.Captures))
}

// ExtractFunctions returns one record per function match, unfolded.
func ExtractFunctions(tree *languages.Tree) ([]FunctionInformation, error) {
	matches, err := tree.Captures(tree.Language().Queries().Functions)
	if err != nil {
		return nil, fmt.Errorf("function query: %w", err)
	}

	var functions []FunctionInformation
	for _, m := range matches {
		full, ok := m.First("function")
		if !ok {
			malformed("function", "function", m)
			continue
		}
		node := &FunctionNodeInformation{}
		for _, c := range m.Captures {
			typ, ok := FunctionNodeTypeFromCapture(c.Name)
			if !ok {
				continue
			}
			switch typ {
			case FunctionIdentifier:
				node.Name = c.Text
			case FunctionParameters:
				node.Parameters = c.Text
			case FunctionBody:
				node.Body = c.Text
			case FunctionReturnType:
				node.ReturnType = c.Text
			}
		}
		functions = append(functions, FunctionInformation{
			Range: full.Range,
			Type:  FunctionFull,
			Node:  node,
		})
	}
	return functions, nil
}

// ExtractClasses returns one record per class match, unfolded.
func ExtractClasses(tree *languages.Tree) ([]ClassInformation, error) {
	matches, err := tree.Captures(tree.Language().Queries().Classes)
	if err != nil {
		return nil, fmt.Errorf("class query: %w", err)
	}

	var classes []ClassInformation
	for _, m := range matches {
		decl, ok := m.First("class_declaration")
		if !ok {
			malformed("class", "class_declaration", m)
			continue
		}
		class := ClassInformation{Range: decl.Range, Type: ClassDeclaration}
		if id, ok := m.First("identifier"); ok {
			class.Name = id.Text
		}
		classes = append(classes, class)
	}
	return classes, nil
}

// ExtractTypes returns one record per type match, unfolded.
func ExtractTypes(tree *languages.Tree) ([]TypeInformation, error) {
	matches, err := tree.Captures(tree.Language().Queries().Types)
	if err != nil {
		return nil, fmt.Errorf("type query: %w", err)
	}

	var types []TypeInformation
	for _, m := range matches {
		decl, ok := m.First("type_declaration")
		if !ok {
			malformed("type", "type_declaration", m)
			continue
		}
		typ := TypeInformation{Range: decl.Range, Type: TypeDeclaration}
		if id, ok := m.First("identifier"); ok {
			typ.Name = id.Text
		}
		types = append(types, typ)
	}
	return types, nil
}

// ImportRanges returns the ranges of import-like statements.
func ImportRanges(tree *languages.Tree) ([]languages.Range, error) {
	matches, err := tree.Captures(tree.Language().Queries().Imports)
	if err != nil {
		return nil, fmt.Errorf("import query: %w", err)
	}
	var ranges []languages.Range
	for _, m := range matches {
		if c, ok := m.First("import"); ok {
			ranges = append(ranges, c.Range)
		}
	}
	return ranges, nil
}

// DocumentationEntries returns the raw comment captures.
func DocumentationEntries(tree *languages.Tree) ([]Documentation, error) {
	matches, err := tree.Captures(tree.Language().Queries().Comments)
	if err != nil {
		return nil, fmt.Errorf("comment query: %w", err)
	}
	var docs []Documentation
	for _, m := range matches {
		if c, ok := m.First("comment"); ok {
			docs = append(docs, commentDocumentation(c))
		}
	}
	return docs, nil
}

// commentDocumentation drops the line break some grammars include in line
// comments, so the range ends on the comment's own line.
func commentDocumentation(c languages.Capture) Documentation {
	text := strings.TrimSuffix(c.Text, "\n")
	if len(text) == len(c.Text) {
		return Documentation{Range: c.Range, Text: c.Text}
	}
	text = strings.TrimSuffix(text, "\r")

	end := languages.Position{Line: c.Range.Start.Line, Byte: c.Range.Start.Byte + len(text)}
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		end.Line += strings.Count(text, "\n")
		end.Column = utf8.RuneCountInString(text[i+1:])
	} else {
		end.Column = c.Range.Start.Column + utf8.RuneCountInString(text)
	}
	return Documentation{Range: languages.NewRange(c.Range.Start, end), Text: text}
}

// IdentifierNodes returns the named identifiers declared in the file.
func IdentifierNodes(tree *languages.Tree) ([]Identifier, error) {
	matches, err := tree.Captures(tree.Language().Queries().Identifiers)
	if err != nil {
		return nil, fmt.Errorf("identifier query: %w", err)
	}
	var ids []Identifier
	for _, m := range matches {
		for _, c := range m.Captures {
			if c.Name == "identifier" {
				ids = append(ids, Identifier{Name: c.Text, Range: c.Range})
			}
		}
	}
	return ids, nil
}

// Structure is everything extracted from one parse of a file.
type Structure struct {
	Functions []FunctionInformation
	Classes   []ClassInformation
	Types     []TypeInformation
	Imports   []languages.Range
	Outline   []OutlineNode
}

// Analyze extracts, folds and documents every structural entity in tree.
// Functions additionally carry the identifiers declared inside them.
func Analyze(tree *languages.Tree) (*Structure, error) {
	functions, err := ExtractFunctions(tree)
	if err != nil {
		return nil, err
	}
	classes, err := ExtractClasses(tree)
	if err != nil {
		return nil, err
	}
	types, err := ExtractTypes(tree)
	if err != nil {
		return nil, err
	}
	imports, err := ImportRanges(tree)
	if err != nil {
		return nil, err
	}
	docs, err := DocumentationEntries(tree)
	if err != nil {
		return nil, err
	}
	ids, err := IdentifierNodes(tree)
	if err != nil {
		return nil, err
	}

	s := &Structure{Imports: imports}
	s.Functions = AddIdentifierNodes(AddDocumentationToFunctions(FoldFunctions(functions), docs), ids)
	s.Classes = AddDocumentationToClasses(FoldClasses(classes), docs)
	s.Types = AddDocumentationToTypes(FoldTypes(types), docs)
	s.Outline = BuildOutline(tree.Language(), string(tree.Source()), s.Classes, s.Functions)

	log.Debugf("%s: %d functions, %d classes, %d types, %d imports",
		tree.Language().Name(), len(s.Functions), len(s.Classes), len(s.Types), len(s.Imports))
	return s, nil
}
