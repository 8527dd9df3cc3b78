package document

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/roveo/topo-context/languages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedTokens(text string) []string {
	var out []string
	for token := range Tokenize(text) {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"a b c", nil},
		{"hello world hello", []string{"hello", "world"}},
		{"snake_case_x", []string{"case", "snake"}},
		{"camelCase", []string{"Case", "camel"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"getURL", []string{"URL", "get"}},
		{"PascalCaseName", []string{"Case", "Name", "Pascal"}},
		{"ABc", []string{"Bc"}},
		{"v2Alpha", []string{"Alpha"}},
		{"fmt.Println(\"hi\")", []string{"Println", "fmt", "hi"}},
		{"naïve café", []string{"café", "naïve"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, sortedTokens(tt.text))
		})
	}
}

func set(words ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}

func TestJaccardScore(t *testing.T) {
	tests := []struct {
		name string
		a, b map[string]struct{}
		want float64
	}{
		{"both empty", set(), set(), 0},
		{"one empty", set("a"), set(), 0},
		{"equal", set("aa", "bb"), set("bb", "aa"), 1},
		{"disjoint", set("aa"), set("bb"), 0},
		{"half", set("aa", "bb", "cc"), set("bb", "cc", "dd"), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JaccardScore(tt.a, tt.b)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.InDelta(t, got, JaccardScore(tt.b, tt.a), 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestSlidingWindows(t *testing.T) {
	lines := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("line%d", i)
		}
		return out
	}

	none := slidingWindows(nil)
	require.Len(t, none, 1)
	assert.Empty(t, none[0].Snippet.Lines)
	assert.Equal(t, 1, none[0].Snippet.StartLine)
	assert.Equal(t, 0, none[0].Snippet.EndLine)

	small := slidingWindows(lines(7))
	require.Len(t, small, 1)
	assert.Equal(t, 1, small[0].Snippet.StartLine)
	assert.Equal(t, 7, small[0].Snippet.EndLine)

	exact := slidingWindows(lines(50))
	require.Len(t, exact, 1)
	assert.Equal(t, 50, exact[0].Snippet.EndLine)

	large := slidingWindows(lines(60))
	require.Len(t, large, 10)
	for i, w := range large {
		assert.Equal(t, i+1, w.Snippet.StartLine)
		assert.Equal(t, i+50, w.Snippet.EndLine)
		assert.Len(t, w.Snippet.Lines, 50)
		assert.Equal(t, fmt.Sprintf("line%d", i), w.Snippet.Lines[0])
	}
}

func TestSimilarSnippetsCap(t *testing.T) {
	content := strings.Repeat("alpha beta gamma\n", 69) + "alpha beta gamma"
	d := plain(content)
	require.Equal(t, 20, d.WindowCount())

	got := d.SimilarSnippets("gamma beta alpha")
	require.Len(t, got, 10)
	for _, s := range got {
		assert.Len(t, s.Lines, 50)
	}
	assert.Len(t, d.GrabSimilarContext("alpha beta"), 10)
	assert.Empty(t, d.SimilarSnippets("alpha delta"), "0.25 is below the threshold")
	assert.Empty(t, d.SimilarSnippets(""))
}

func TestSimilarSnippetsRanking(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("parse token stream\n")
	}
	for i := 0; i < 60; i++ {
		b.WriteString("render widget tree\n")
	}
	d := plain(strings.TrimSuffix(b.String(), "\n"))

	query := "render widget tree"
	got := d.SimilarSnippets(query)
	require.NotEmpty(t, got)
	require.LessOrEqual(t, len(got), 10)

	qbag := NewBagOfWords([]string{query}, 0, 0)
	prev := 1.0
	for _, s := range got {
		score := NewBagOfWords(s.Lines, s.StartLine, s.EndLine).JaccardScore(qbag)
		assert.Greater(t, score, 0.3)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
	assert.Equal(t, strings.Repeat("render widget tree\n", 49)+"render widget tree", got[0].Snippet())
}

func TestSimilarSnippetsSkipsImports(t *testing.T) {
	src := `package main

import "fmt"

func main() {
	fmt.Println("hi")
}`
	d := New("main.go", src, "go", languages.Default())
	defer d.Close()

	got := d.SimilarSnippets("package main fmt Println")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].StartLine)
	assert.Equal(t, 6, got[0].EndLine)
	assert.NotContains(t, got[0].Snippet(), "import")
}

func TestSimilarSnippetsOnlyImports(t *testing.T) {
	d := New("main.go", "import \"fmt\"\nimport \"os\"", "go", languages.Default())
	defer d.Close()

	assert.Equal(t, 1, d.WindowCount())
	assert.Empty(t, d.SimilarSnippets("import fmt os"))
}

func TestSimilarSnippetsReturnsCopies(t *testing.T) {
	d := plain("alpha beta gamma\nalpha beta gamma")

	got := d.SimilarSnippets("alpha beta gamma")
	require.Len(t, got, 1)
	got[0].Lines[0] = "changed by caller"
	got[0].Lines = append(got[0].Lines, "extra")

	again := d.SimilarSnippets("alpha beta gamma")
	require.Len(t, again, 1)
	assert.Equal(t, []string{"alpha beta gamma", "alpha beta gamma"}, again[0].Lines)
	assert.Equal(t, []string{"alpha beta gamma\nalpha beta gamma"}, d.GrabSimilarContext("alpha beta gamma"))
}

func TestMerge(t *testing.T) {
	a := NewSnippetInformation([]string{"one", "two", "three"}, 1, 3)
	b := NewSnippetInformation([]string{"TWO", "THREE", "four"}, 2, 4)

	merged := a.Merge(b)
	assert.Equal(t, NewSnippetInformation([]string{"one", "TWO", "THREE", "four"}, 1, 4), merged)

	inner := NewSnippetInformation([]string{"TWO"}, 2, 2)
	assert.Equal(t, NewSnippetInformation([]string{"one", "TWO", "three"}, 1, 3), a.Merge(inner))
}

func TestCoalesceSnippets(t *testing.T) {
	snippets := []SnippetInformation{
		NewSnippetInformation([]string{"ten", "eleven"}, 10, 11),
		NewSnippetInformation([]string{"three", "four"}, 3, 4),
		NewSnippetInformation([]string{"one", "two", "three"}, 1, 3),
		NewSnippetInformation([]string{"eleven!", "twelve"}, 11, 12),
		NewSnippetInformation([]string{"five"}, 5, 5),
	}

	got := CoalesceSnippets(snippets)
	require.Len(t, got, 3)
	assert.Equal(t, NewSnippetInformation([]string{"one", "two", "three", "four"}, 1, 4), got[0])
	assert.Equal(t, NewSnippetInformation([]string{"five"}, 5, 5), got[1])
	assert.Equal(t, NewSnippetInformation([]string{"ten", "eleven!", "twelve"}, 10, 12), got[2])

	assert.Nil(t, CoalesceSnippets(nil))
}
