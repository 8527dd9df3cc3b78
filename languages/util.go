package languages

import (
	"bytes"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodeRange converts a tree-sitter node to a Range. Tree-sitter reports
// columns in bytes, so they are recounted as code points against source.
func NodeRange(node *sitter.Node, source []byte) Range {
	start := node.StartPoint()
	end := node.EndPoint()
	return Range{
		Start: pointPosition(source, int(start.Row), int(node.StartByte())),
		End:   pointPosition(source, int(end.Row), int(node.EndByte())),
	}
}

func pointPosition(source []byte, row, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	lineStart := bytes.LastIndexByte(source[:offset], '\n') + 1
	return Position{
		Line:   row,
		Column: utf8.RuneCount(source[lineStart:offset]),
		Byte:   offset,
	}
}
