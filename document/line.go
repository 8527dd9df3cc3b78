package document

import "strings"

// LineStatus records whether a line was rewritten by an insertion
type LineStatus int

const (
	Unedited LineStatus = iota
	Edited
)

func (s LineStatus) String() string {
	if s == Edited {
		return "edited"
	}
	return "unedited"
}

// Line is one line of the buffer without its line break
type Line struct {
	Status  LineStatus `json:"status"`
	Content string     `json:"content"`
}

// IsEdited reports whether the line was produced by an insertion
func (l Line) IsEdited() bool { return l.Status == Edited }

// splitLines splits on "\n" only, so joining with "\n" gives back the
// input exactly. Empty content is one empty line.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

func joinLines(lines []Line) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Content)
	}
	return b.String()
}
