package languages

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned for ranges whose start is after their end,
	// or whose offsets fall outside the content they are applied to.
	ErrInvalidRange = errors.New("invalid range")

	// ErrUnsupportedLanguage means no parser is registered for a file.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// ErrMalformedCapture means a query match lacked its primary capture.
	ErrMalformedCapture = errors.New("malformed capture")
)

// Position is a location in a document. Line and Column are 0-based, Column
// counts code points (not bytes) within the line, Byte is the offset from the
// start of the document.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
	Byte   int `json:"byte"`
}

// NewPosition creates a Position
func NewPosition(line, column, byteOffset int) Position {
	return Position{Line: line, Column: column, Byte: byteOffset}
}

// Before reports whether p sorts strictly before other by (line, column).
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d@%d", p.Line, p.Column, p.Byte)
}

// Range is an inclusive span between two positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewRange creates a Range
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// Validate returns ErrInvalidRange if the range is reversed or has negative fields.
func (r Range) Validate() error {
	for _, p := range []Position{r.Start, r.End} {
		if p.Line < 0 || p.Column < 0 || p.Byte < 0 {
			return fmt.Errorf("%w: negative position in %s", ErrInvalidRange, r)
		}
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("%w: start %s after end %s", ErrInvalidRange, r.Start, r.End)
	}
	return nil
}

func (r Range) StartLine() int   { return r.Start.Line }
func (r Range) EndLine() int     { return r.End.Line }
func (r Range) StartColumn() int { return r.Start.Column }
func (r Range) EndColumn() int   { return r.End.Column }
func (r Range) StartByte() int   { return r.Start.Byte }
func (r Range) EndByte() int     { return r.End.Byte }

// SetStart moves the start of the range.
func (r *Range) SetStart(p Position) { r.Start = p }

// SetEnd moves the end of the range.
func (r *Range) SetEnd(p Position) { r.End = p }

// Contains reports whether other lies fully inside r, bounds included.
func (r Range) Contains(other Range) bool {
	return !other.Start.Before(r.Start) && !r.End.Before(other.End)
}

// IsContained reports whether r lies fully inside other.
func (r Range) IsContained(other Range) bool {
	return other.Contains(r)
}

// Overlaps reports whether the two ranges share at least one position.
func (r Range) Overlaps(other Range) bool {
	return !r.End.Before(other.Start) && !other.End.Before(r.Start)
}

// Slice returns the bytes of source covered by the range.
func (r Range) Slice(source string) (string, error) {
	if r.Start.Byte < 0 || r.End.Byte < r.Start.Byte || r.End.Byte > len(source) {
		return "", fmt.Errorf("%w: bytes [%d, %d) outside content of %d bytes",
			ErrInvalidRange, r.Start.Byte, r.End.Byte, len(source))
	}
	return source[r.Start.Byte:r.End.Byte], nil
}

func (r Range) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}
