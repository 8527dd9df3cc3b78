package chunking

import (
	"sort"

	"github.com/roveo/topo-context/languages"
)

// sortOuterFirst orders items by start byte ascending and end byte
// descending, so an enclosing range always precedes the ranges it contains.
func sortOuterFirst[T any](items []T, rangeOf func(*T) languages.Range) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := rangeOf(&items[i]), rangeOf(&items[j])
		if a.StartByte() != b.StartByte() {
			return a.StartByte() < b.StartByte()
		}
		return a.EndByte() > b.EndByte()
	})
}

// fold drops every item contained in the most recently kept item.
// Partially overlapping items are all kept.
func fold[T any](items []T, rangeOf func(*T) languages.Range) []T {
	sorted := append([]T(nil), items...)
	sortOuterFirst(sorted, rangeOf)

	var kept []T
	index := 0
	for index < len(sorted) {
		kept = append(kept, sorted[index])
		outer := rangeOf(&sorted[index])
		next := index + 1
		for next < len(sorted) && rangeOf(&sorted[next]).IsContained(outer) {
			next++
		}
		index = next
	}
	return kept
}

func functionRange(f *FunctionInformation) languages.Range { return f.Range }
func classRange(c *ClassInformation) languages.Range       { return c.Range }
func typeRange(t *TypeInformation) languages.Range         { return t.Range }

// FoldFunctions removes functions nested inside another function.
func FoldFunctions(functions []FunctionInformation) []FunctionInformation {
	return fold(functions, functionRange)
}

// FoldClasses removes classes nested inside another class.
func FoldClasses(classes []ClassInformation) []ClassInformation {
	return fold(classes, classRange)
}

// FoldTypes removes types nested inside another type.
func FoldTypes(types []TypeInformation) []TypeInformation {
	return fold(types, typeRange)
}
