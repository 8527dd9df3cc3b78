package document

import (
	"regexp"
	"strings"
	"unicode"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}\p{Pc}]+`)

// BagOfWords is the token set of a snippet
type BagOfWords struct {
	Words   map[string]struct{}
	Snippet SnippetInformation
}

// NewBagOfWords tokenizes lines and keeps them as the bag's snippet
func NewBagOfWords(lines []string, startLine, endLine int) BagOfWords {
	return BagOfWords{
		Words:   Tokenize(strings.Join(lines, "\n")),
		Snippet: NewSnippetInformation(lines, startLine, endLine),
	}
}

// JaccardScore returns |A ∩ B| / |A ∪ B|, or 0 when both bags are empty.
func (b BagOfWords) JaccardScore(other BagOfWords) float64 {
	return JaccardScore(b.Words, other.Words)
}

// JaccardScore returns |A ∩ B| / |A ∪ B|, or 0 when both sets are empty.
func JaccardScore(a, b map[string]struct{}) float64 {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for word := range small {
		if _, ok := large[word]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Tokenize splits text into word tokens. snake_case words are split on
// underscores and words with upper case letters are split on case changes,
// so "HTTPServer" gives "HTTP" and "Server". Parts shorter than two bytes
// are dropped.
func Tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	add := func(part string) {
		if len(part) > 1 {
			tokens[part] = struct{}{}
		}
	}

	for _, word := range wordPattern.FindAllString(text, -1) {
		switch {
		case strings.Contains(word, "_"):
			for _, part := range strings.Split(word, "_") {
				add(part)
			}
		case strings.IndexFunc(word, unicode.IsUpper) >= 0:
			for _, part := range splitCase(word) {
				add(part)
			}
		default:
			add(word)
		}
	}
	return tokens
}

func isASCIIUpper(r rune) bool { return 'A' <= r && r <= 'Z' }
func isASCIILower(r rune) bool { return 'a' <= r && r <= 'z' }

// splitCase finds, left to right, the first of Upper+lower+, lower+, or an
// upper case run followed by another upper case letter or the end of the
// word. Anything else is skipped.
func splitCase(word string) []string {
	chars := []rune(word)
	n := len(chars)
	run := func(from int, pred func(rune) bool) int {
		for from < n && pred(chars[from]) {
			from++
		}
		return from
	}

	var parts []string
	for i := 0; i < n; {
		switch {
		case isASCIILower(chars[i]):
			end := run(i, isASCIILower)
			parts = append(parts, string(chars[i:end]))
			i = end

		case isASCIIUpper(chars[i]):
			if end := run(i+1, isASCIILower); end > i+1 {
				parts = append(parts, string(chars[i:end]))
				i = end
				continue
			}
			end := run(i, isASCIIUpper)
			for end > i && end < n && !isASCIIUpper(chars[end]) {
				end--
			}
			if end == i {
				i++
				continue
			}
			parts = append(parts, string(chars[i:end]))
			i = end

		default:
			i++
		}
	}
	return parts
}
