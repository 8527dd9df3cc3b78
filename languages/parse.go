package languages

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Capture is one named node from a query match
type Capture struct {
	Name  string
	Range Range
	Text  string
}

// Match groups the captures produced by a single query pattern match
type Match struct {
	Captures []Capture
}

// First returns the first capture named name.
func (m Match) First(name string) (Capture, bool) {
	for _, c := range m.Captures {
		if c.Name == name {
			return c, true
		}
	}
	return Capture{}, false
}

// Tree is a parsed syntax tree together with the source it was built from.
type Tree struct {
	lang   Language
	tree   *sitter.Tree
	source []byte
}

// Parse builds a fresh syntax tree for content.
func Parse(ctx context.Context, lang Language, content []byte) (*Tree, error) {
	if lang == nil {
		return nil, ErrUnsupportedLanguage
	}
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.TreeSitterLang())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s file: %w", lang.Name(), err)
	}
	return &Tree{lang: lang, tree: tree, source: content}, nil
}

// Language returns the language the tree was parsed with
func (t *Tree) Language() Language { return t.lang }

// Source returns the bytes the tree was parsed from
func (t *Tree) Source() []byte { return t.source }

// Root returns the root node of the tree
func (t *Tree) Root() *sitter.Node { return t.tree.RootNode() }

// Close frees the underlying tree
func (t *Tree) Close() {
	if t != nil && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Captures runs query over the whole tree. An empty query yields no matches.
func (t *Tree) Captures(query string) ([]Match, error) {
	if query == "" || t.tree == nil {
		return nil, nil
	}
	q, err := compiledQuery(t.lang, query)
	if err != nil {
		return nil, err
	}

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, t.tree.RootNode())

	var matches []Match
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, t.source)

		match := Match{Captures: make([]Capture, 0, len(m.Captures))}
		for _, c := range m.Captures {
			match.Captures = append(match.Captures, Capture{
				Name:  q.CaptureNameForId(c.Index),
				Range: NodeRange(c.Node, t.source),
				Text:  c.Node.Content(t.source),
			})
		}
		matches = append(matches, match)
	}
	return matches, nil
}

type queryKey struct {
	lang  string
	query string
}

// compiledQueries holds compiled queries by language name and source. A compiled
// query is read-only and shared between cursors.
var compiledQueries sync.Map

func compiledQuery(lang Language, query string) (*sitter.Query, error) {
	key := queryKey{lang: lang.Name(), query: query}
	if q, ok := compiledQueries.Load(key); ok {
		return q.(*sitter.Query), nil
	}
	q, err := sitter.NewQuery([]byte(query), lang.TreeSitterLang())
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s query: %w", lang.Name(), err)
	}
	if prev, loaded := compiledQueries.LoadOrStore(key, q); loaded {
		q.Close()
		return prev.(*sitter.Query), nil
	}
	return q, nil
}
