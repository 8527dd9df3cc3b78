package document

import (
	"strings"
	"testing"

	"github.com/roveo/topo-context/languages"
	_ "github.com/roveo/topo-context/languages/golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rng(startLine, startCol, endLine, endCol int) languages.Range {
	return languages.NewRange(
		languages.NewPosition(startLine, startCol, 0),
		languages.NewPosition(endLine, endCol, 0),
	)
}

func plain(content string) *EditLines {
	return New("notes.txt", content, "", nil)
}

const emojiLines = `FIRST LINE
SECOND LINE
THIRD LINE
🫡🫡🫡🫡
FIFTH LINE 🫡
SIXTH LINE 🫡🚀`

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		lines   int
	}{
		{"empty", "", 1},
		{"single line", "SOMETHING", 1},
		{"three newlines", "\n\n\n", 4},
		{"two trailing newlines", "a\nb\n\n", 4},
		{"unicode", emojiLines, 6},
		{"carriage returns kept", "a\r\nb", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := plain(tt.content)
			assert.Equal(t, tt.content, d.Content())
			assert.Equal(t, tt.lines, d.LineCount())
			assert.Equal(t, 0, d.Version())
		})
	}
}

func TestContentChange(t *testing.T) {
	tests := []struct {
		name    string
		content string
		r       languages.Range
		text    string
		want    string
	}{
		{
			name:    "remove whole line across emoji",
			content: "FIRST LINE\nSECOND LINE\nTHIRD LINE\nFOURTH LINE\nFIFTH LINE 🫡\nSIXTH LINE 🫡🚀",
			r:       rng(4, 0, 5, 0),
			want:    "FIRST LINE\nSECOND LINE\nTHIRD LINE\nFOURTH LINE\nSIXTH LINE 🫡🚀",
		},
		{
			name:    "degenerate range is a no-op",
			content: "SOMETHING",
			r:       rng(0, 0, 0, 0),
			want:    "SOMETHING",
		},
		{
			name:    "insert into empty document",
			content: "",
			r:       rng(0, 0, 0, 0),
			text:    "SOMETHING",
			want:    "SOMETHING",
		},
		{
			name:    "remove everything",
			content: emojiLines,
			r:       rng(0, 0, 5, 13),
			want:    "",
		},
		{
			name:    "remove inside a single line",
			content: "blah blah\n// bbbbbbbb\nblah blah",
			r:       rng(1, 3, 1, 11),
			want:    "blah blah\n// \nblah blah",
		},
		{
			name:    "remove blank lines",
			content: "aa\n\nbb\n\ncamelCase\n\ndd\n\nee\n\n\n\n\n\n\nfff",
			r:       rng(9, 0, 13, 0),
			want:    "aa\n\nbb\n\ncamelCase\n\ndd\n\nee\n\n\nfff",
		},
		{
			name:    "collapse blank lines before last line",
			content: "aa\n\nbb\n\ncamelCase\n\ndd\n\nee\n\n\n\n\n\nfff",
			r:       rng(9, 0, 13, 0),
			want:    "aa\n\nbb\n\ncamelCase\n\ndd\n\nee\n\nfff",
		},
		{
			name:    "replace across lines",
			content: "aa\n\nbb\n\ncamelCase\n\ndd\n\nee\n\n\nfff",
			r:       rng(6, 0, 8, 2),
			text:    "expected_output",
			want:    "aa\n\nbb\n\ncamelCase\n\nexpected_output\n\n\nfff",
		},
		{
			name:    "replace emoji with emoji",
			content: "x🫡🫡y",
			r:       rng(0, 1, 0, 3),
			text:    "🚀",
			want:    "x🚀y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := plain(tt.content)
			require.NoError(t, d.ContentChange(tt.r, tt.text))
			assert.Equal(t, tt.want, d.Content())
			assert.Equal(t, 1, d.Version())
		})
	}
}

func TestInsertSplicesEditedLines(t *testing.T) {
	d := plain(emojiLines)
	require.NoError(t, d.ContentChange(rng(3, 1, 3, 1), "🚀🚀🚀\n🪨🪨"))

	assert.Equal(t, `FIRST LINE
SECOND LINE
THIRD LINE
🫡🚀🚀🚀
🪨🪨🫡🫡🫡
FIFTH LINE 🫡
SIXTH LINE 🫡🚀`, d.Content())

	lines := d.Lines()
	require.Len(t, lines, 7)
	for i, line := range lines {
		if i == 3 || i == 4 {
			assert.True(t, line.IsEdited(), "line %d", i)
		} else {
			assert.Equal(t, Unedited, line.Status, "line %d", i)
		}
	}
}

func TestContentChangeRejectsBadRanges(t *testing.T) {
	tests := []struct {
		name    string
		r       languages.Range
		wantErr error
	}{
		{"line past end", rng(0, 0, 6, 0), ErrOutOfBounds},
		{"start column past line end", rng(3, 5, 3, 5), ErrOutOfBounds},
		{"end column past line end", rng(4, 0, 5, 14), ErrOutOfBounds},
		{"reversed", rng(2, 0, 1, 0), languages.ErrInvalidRange},
		{"reversed columns", rng(1, 4, 1, 2), languages.ErrInvalidRange},
		{"negative", rng(-1, 0, 0, 0), languages.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := plain(emojiLines)
			err := d.ContentChange(tt.r, "text")
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, emojiLines, d.Content(), "buffer must be untouched")
			assert.Equal(t, 0, d.Version())
		})
	}
}

func TestUnsupportedLanguageDegrades(t *testing.T) {
	d := New("data.unknown", "alpha beta\ngamma", "cobol", languages.Default())
	defer d.Close()

	assert.Empty(t, d.Functions())
	assert.Empty(t, d.Classes())
	assert.Empty(t, d.Types())
	assert.Empty(t, d.Outline())
	assert.Equal(t, 1, d.WindowCount())
}

const goSource = `package main

import "fmt"

// Greeter says hello.
type Greeter struct {
	name string
}

// Greet prints a greeting.
func (g *Greeter) Greet() {
	fmt.Println("hello", g.name)
}

func main() {
	g := &Greeter{name: "world"}
	g.Greet()
}`

func TestStructuralViews(t *testing.T) {
	d := New("main.go", goSource, "", languages.Default())
	defer d.Close()

	assert.Equal(t, "go", d.Language())

	functions := d.Functions()
	require.Len(t, functions, 2)
	assert.Equal(t, "Greet", functions[0].Name())
	assert.Equal(t, "// Greet prints a greeting.", functions[0].Documentation())
	assert.Equal(t, "main", functions[1].Name())
	require.Len(t, functions[1].Identifiers(), 1)
	assert.Equal(t, "g", functions[1].Identifiers()[0].Name)

	classes := d.Classes()
	require.Len(t, classes, 1)
	assert.Equal(t, "Greeter", classes[0].Name)
	assert.Equal(t, []string{"// Greeter says hello.\ntype Greeter struct {\n\tname string\n}"}, d.Outline())

	offset := strings.Index(goSource, "g.Greet()")
	fn, ok := d.FindEnclosingFunction(offset)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name())

	_, ok = d.FindEnclosingFunction(strings.Index(goSource, "name string"))
	assert.False(t, ok)

	sel := languages.NewRange(
		languages.NewPosition(16, 1, offset),
		languages.NewPosition(16, 4, offset+3),
	)
	expanded, err := d.ExpandSelection(sel)
	require.NoError(t, err)
	assert.Equal(t, functions[1].Range, expanded)
}

func TestEditRefreshesStructure(t *testing.T) {
	d := New("main.go", goSource, "", languages.Default())
	defer d.Close()

	last := d.LineCount() - 1
	require.NoError(t, d.ContentChange(rng(last, 1, last, 1), "\n\nfunc extra() {}"))

	assert.Equal(t, 1, d.Version())
	require.Len(t, d.Functions(), 3)
	assert.Equal(t, "extra", d.Functions()[2].Name())
	assert.True(t, strings.HasSuffix(d.Content(), "}\n\nfunc extra() {}"))
}
