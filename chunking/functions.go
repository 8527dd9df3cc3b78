package chunking

import (
	"github.com/roveo/topo-context/languages"
)

// AddIdentifierNodes attaches every identifier to each function whose range
// contains it. Functions come back ordered outer-first.
func AddIdentifierNodes(functions []FunctionInformation, identifiers []Identifier) []FunctionInformation {
	out := make([]FunctionInformation, len(functions))
	for i, fn := range functions {
		out[i] = fn.clone()
	}
	sortOuterFirst(out, functionRange)

	for i := range out {
		for _, id := range identifiers {
			if out[i].Range.Contains(id.Range) {
				out[i].InsertIdentifier(id.Name, id.Range)
			}
		}
	}
	return out
}

// FindFunctionInByteOffset returns the function enclosing offset. functions
// must already be folded and sorted by start byte; the scan stops at the first
// function starting after offset.
func FindFunctionInByteOffset(functions []FunctionInformation, offset int) (FunctionInformation, bool) {
	var (
		found FunctionInformation
		ok    bool
	)
	for _, fn := range functions {
		if fn.Range.EndByte() < offset {
			continue
		}
		if fn.Range.StartByte() > offset {
			break
		}
		found, ok = fn, true
	}
	return found, ok
}

// ExpandedSelectionRange widens selection so that it covers the whole of any
// function its start or end falls into.
func ExpandedSelectionRange(functions []FunctionInformation, selection languages.Range) languages.Range {
	start, end := selection.Start, selection.End

	widen := func(fn FunctionInformation) {
		if fn.Range.StartByte() < start.Byte {
			start = fn.Range.Start
		}
		if fn.Range.EndByte() > end.Byte {
			end = fn.Range.End
		}
	}

	if fn, ok := FindFunctionInByteOffset(functions, selection.StartByte()); ok {
		widen(fn)
	}
	if fn, ok := FindFunctionInByteOffset(functions, selection.EndByte()); ok {
		widen(fn)
	}
	return languages.NewRange(start, end)
}
