package document

import (
	"sort"
	"strings"
)

// SnippetInformation is a run of consecutive lines. StartLine and EndLine
// are 1-indexed and inclusive.
type SnippetInformation struct {
	Lines     []string `json:"lines"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
}

// NewSnippetInformation creates a snippet
func NewSnippetInformation(lines []string, startLine, endLine int) SnippetInformation {
	return SnippetInformation{Lines: lines, StartLine: startLine, EndLine: endLine}
}

// Clone returns a copy of s that shares no lines with it
func (s SnippetInformation) Clone() SnippetInformation {
	s.Lines = append([]string(nil), s.Lines...)
	return s
}

// CloneSnippets copies every snippet of snippets
func CloneSnippets(snippets []SnippetInformation) []SnippetInformation {
	if snippets == nil {
		return nil
	}
	out := make([]SnippetInformation, len(snippets))
	for i, s := range snippets {
		out[i] = s.Clone()
	}
	return out
}

// Snippet joins the lines with "\n"
func (s SnippetInformation) Snippet() string {
	return strings.Join(s.Lines, "\n")
}

// Merge combines s with after, which must start no later than one line past
// s's end. Lines are keyed by line number and after's text wins when both
// snippets have the same line.
func (s SnippetInformation) Merge(after SnippetInformation) SnippetInformation {
	byLine := make(map[int]string, len(s.Lines)+len(after.Lines))
	for i, line := range s.Lines {
		byLine[s.StartLine+i] = line
	}
	for i, line := range after.Lines {
		byLine[after.StartLine+i] = line
	}

	start := min(s.StartLine, after.StartLine)
	end := max(s.EndLine, after.EndLine)
	lines := make([]string, 0, end-start+1)
	for n := start; n <= end; n++ {
		lines = append(lines, byLine[n])
	}
	return SnippetInformation{Lines: lines, StartLine: start, EndLine: end}
}

// CoalesceSnippets sorts snippets by start line and merges every snippet
// that overlaps or touches the one before it.
func CoalesceSnippets(snippets []SnippetInformation) []SnippetInformation {
	if len(snippets) == 0 {
		return nil
	}
	sorted := append([]SnippetInformation(nil), snippets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartLine < sorted[j].StartLine
	})

	var merged []SnippetInformation
	current := sorted[0]
	for _, next := range sorted[1:] {
		if current.EndLine >= next.StartLine {
			current = current.Merge(next)
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
