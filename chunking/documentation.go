package chunking

import (
	"sort"
	"strings"

	"github.com/roveo/topo-context/languages"
)

// Documentation is a comment-like block and its range
type Documentation struct {
	Range languages.Range `json:"range"`
	Text  string          `json:"text"`
}

// ConcatDocumentation merges entries on consecutive lines into a single
// entry, so stacked line comments become one block:
//
//	// first line
//	// second line
//	fn foo() {}
func ConcatDocumentation(entries []Documentation) []Documentation {
	sorted := append([]Documentation(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Range, sorted[j].Range
		if a.Start != b.Start {
			return a.Start.Before(b.Start)
		}
		return b.End.Before(a.End)
	})

	var merged []Documentation
	index := 0
	for index < len(sorted) {
		current := sorted[index]
		var text strings.Builder
		text.WriteString(current.Text)

		next := index + 1
		for next < len(sorted) && current.Range.EndLine()+1 == sorted[next].Range.StartLine() {
			text.WriteString("\n")
			text.WriteString(sorted[next].Text)
			current.Range.SetEnd(sorted[next].Range.End)
			next++
		}
		current.Text = text.String()
		merged = append(merged, current)
		index = next
	}
	return merged
}

// attachDocumentation gives each item the documentation block ending on the
// line right above it and extends the item's range to cover that block.
func attachDocumentation[T any](items []T, entries []Documentation, rangeOf func(*T) *languages.Range, setDoc func(*T, string)) []T {
	out := append([]T(nil), items...)
	sortOuterFirst(out, func(t *T) languages.Range { return *rangeOf(t) })
	docs := ConcatDocumentation(entries)

	for i := range out {
		r := rangeOf(&out[i])
		for _, doc := range docs {
			if r.StartLine() != 0 && doc.Range.EndLine() == r.StartLine()-1 {
				setDoc(&out[i], doc.Text)
				r.SetStart(doc.Range.Start)
			}
		}
	}
	return out
}

// AddDocumentationToFunctions attaches documentation blocks to functions.
func AddDocumentationToFunctions(functions []FunctionInformation, entries []Documentation) []FunctionInformation {
	cloned := make([]FunctionInformation, len(functions))
	for i, fn := range functions {
		cloned[i] = fn.clone()
	}
	return attachDocumentation(cloned, entries,
		func(f *FunctionInformation) *languages.Range { return &f.Range },
		func(f *FunctionInformation, doc string) { f.SetDocumentation(doc) })
}

// AddDocumentationToClasses attaches documentation blocks to classes.
func AddDocumentationToClasses(classes []ClassInformation, entries []Documentation) []ClassInformation {
	return attachDocumentation(classes, entries,
		func(c *ClassInformation) *languages.Range { return &c.Range },
		func(c *ClassInformation, doc string) { c.Documentation = doc })
}

// AddDocumentationToTypes attaches documentation blocks to types.
func AddDocumentationToTypes(types []TypeInformation, entries []Documentation) []TypeInformation {
	return attachDocumentation(types, entries,
		func(t *TypeInformation) *languages.Range { return &t.Range },
		func(t *TypeInformation, doc string) { t.Documentation = doc })
}
