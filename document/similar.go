package document

import "sort"

const (
	windowSize      = 50
	scoreThreshold  = 0.3
	maxSimilarItems = 10
)

// slidingWindows returns one window when there are at most windowSize lines,
// and otherwise a window starting at every line up to len(lines)-windowSize.
// Line numbers are 1-indexed. No lines still give one empty window, ending
// at line 0.
func slidingWindows(lines []string) []BagOfWords {
	if len(lines) <= windowSize {
		return []BagOfWords{NewBagOfWords(append([]string(nil), lines...), 1, len(lines))}
	}

	windows := make([]BagOfWords, 0, len(lines)-windowSize)
	for i := 0; i < len(lines)-windowSize; i++ {
		window := append([]string(nil), lines[i:i+windowSize]...)
		windows = append(windows, NewBagOfWords(window, i+1, i+windowSize))
	}
	return windows
}

// WindowCount returns how many snippet windows are indexed
func (d *EditLines) WindowCount() int { return len(d.windows) }

// SimilarSnippets ranks the buffer's windows against query and returns at
// most ten scoring above 0.3, best first. The results are copies and never
// alias the windows.
func (d *EditLines) SimilarSnippets(query string) []SnippetInformation {
	bag := NewBagOfWords([]string{query}, 0, 0)

	type scored struct {
		score   float64
		snippet SnippetInformation
	}
	var ranked []scored
	for _, window := range d.windows {
		if score := window.JaccardScore(bag); score > scoreThreshold {
			ranked = append(ranked, scored{score: score, snippet: window.Snippet})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > maxSimilarItems {
		ranked = ranked[:maxSimilarItems]
	}

	out := make([]SnippetInformation, len(ranked))
	for i, r := range ranked {
		out[i] = r.snippet.Clone()
	}
	log.Debugf("%s: %d of %d windows similar to query", d.filePath, len(out), len(d.windows))
	return out
}

// GrabSimilarContext is SimilarSnippets rendered as text
func (d *EditLines) GrabSimilarContext(query string) []string {
	snippets := d.SimilarSnippets(query)
	out := make([]string, len(snippets))
	for i, s := range snippets {
		out[i] = s.Snippet()
	}
	return out
}
