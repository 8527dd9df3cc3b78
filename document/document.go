// Package document keeps an editor buffer in sync with its syntax tree and
// the structural and similarity views derived from it.
//
// An EditLines performs no locking. Callers serialize ContentChange against
// every other method on the same buffer.
package document

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/roveo/topo-context/chunking"
	"github.com/roveo/topo-context/languages"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("topo.document")

// ErrOutOfBounds is returned when an edit addresses a line or column past
// the end of the buffer.
var ErrOutOfBounds = errors.New("position out of bounds")

// EditLines is a line-oriented text buffer that absorbs editor edits.
type EditLines struct {
	lines    []Line
	filePath string
	language string
	lang     languages.Language

	tree      *languages.Tree
	structure *chunking.Structure
	windows   []BagOfWords
	version   int
}

// New creates a buffer for content. The language is looked up by name first
// and then by file extension; when neither resolves, the buffer works as
// plain text and every structural view is empty.
func New(filePath, content, language string, provider languages.Provider) *EditLines {
	d := &EditLines{
		filePath: filePath,
		language: language,
	}
	for _, text := range splitLines(content) {
		d.lines = append(d.lines, Line{Status: Unedited, Content: text})
	}
	if provider != nil {
		if d.lang = provider.ByName(language); d.lang == nil {
			d.lang = provider.ForFile(filePath)
		}
	}
	if d.lang != nil && d.language == "" {
		d.language = d.lang.Name()
	}
	d.refresh()
	return d
}

// FilePath returns the path the buffer was opened with
func (d *EditLines) FilePath() string { return d.filePath }

// Language returns the language tag of the buffer
func (d *EditLines) Language() string { return d.language }

// Version starts at 0 and grows by one with every applied edit
func (d *EditLines) Version() int { return d.version }

// LineCount returns the number of lines, never less than 1
func (d *EditLines) LineCount() int { return len(d.lines) }

// Lines returns a copy of the buffer's lines
func (d *EditLines) Lines() []Line {
	return append([]Line(nil), d.lines...)
}

// Content joins the lines with "\n".
func (d *EditLines) Content() string {
	return joinLines(d.lines)
}

// Close releases the syntax tree.
func (d *EditLines) Close() {
	d.tree.Close()
	d.tree = nil
}

// ContentChange replaces the text covered by r with newText. Columns count
// code points and the end column is exclusive. Byte offsets in r are ignored.
// The edit is validated as a whole first, so an error leaves the buffer
// untouched.
func (d *EditLines) ContentChange(r languages.Range, newText string) error {
	if err := d.validate(r); err != nil {
		return err
	}
	d.removeRange(r)
	d.insertAt(r.Start, newText)
	d.version++
	d.refresh()
	return nil
}

func (d *EditLines) validate(r languages.Range) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.End.Line >= len(d.lines) {
		return fmt.Errorf("%w: line %d of %d", ErrOutOfBounds, r.End.Line, len(d.lines))
	}
	if n := utf8.RuneCountInString(d.lines[r.Start.Line].Content); r.Start.Column > n {
		return fmt.Errorf("%w: column %d on line %d of %d code points",
			ErrOutOfBounds, r.Start.Column, r.Start.Line, n)
	}
	if n := utf8.RuneCountInString(d.lines[r.End.Line].Content); r.End.Column > n {
		return fmt.Errorf("%w: column %d on line %d of %d code points",
			ErrOutOfBounds, r.End.Column, r.End.Line, n)
	}
	return nil
}

func (d *EditLines) removeRange(r languages.Range) {
	start, end := r.Start, r.End
	if start.Line == end.Line {
		if start.Column == end.Column {
			return
		}
		chars := []rune(d.lines[start.Line].Content)
		d.lines[start.Line].Content = string(chars[:start.Column]) + string(chars[end.Column:])
		return
	}

	prefix := []rune(d.lines[start.Line].Content)[:start.Column]
	suffix := []rune(d.lines[end.Line].Content)[end.Column:]
	d.lines[start.Line].Content = string(prefix) + string(suffix)
	d.lines = append(d.lines[:start.Line+1], d.lines[end.Line+1:]...)
}

func (d *EditLines) insertAt(pos languages.Position, text string) {
	if text == "" {
		return
	}
	chars := []rune(d.lines[pos.Line].Content)
	joined := string(chars[:pos.Column]) + text + string(chars[pos.Column:])

	parts := splitLines(joined)
	inserted := make([]Line, len(parts))
	for i, part := range parts {
		inserted[i] = Line{Status: Edited, Content: part}
	}

	lines := make([]Line, 0, len(d.lines)+len(inserted)-1)
	lines = append(lines, d.lines[:pos.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, d.lines[pos.Line+1:]...)
	d.lines = lines
}

// refresh reparses the whole buffer and rebuilds every derived view.
func (d *EditLines) refresh() {
	d.tree.Close()
	d.tree = nil
	d.structure = &chunking.Structure{}

	if d.lang == nil {
		log.Debugf("%s: %v, structural views disabled", d.filePath, languages.ErrUnsupportedLanguage)
	} else {
		tree, err := languages.Parse(context.Background(), d.lang, []byte(d.Content()))
		if err != nil {
			log.Warningf("%s: %v", d.filePath, err)
		} else {
			d.tree = tree
			if s, err := chunking.Analyze(tree); err != nil {
				log.Warningf("%s: %v", d.filePath, err)
			} else {
				d.structure = s
			}
		}
	}
	d.windows = slidingWindows(d.snippetLines())
}

// snippetLines returns the buffer without import lines. Lines inside a
// function are always kept.
func (d *EditLines) snippetLines() []string {
	excluded := make(map[int]struct{})
	for _, r := range d.structure.Imports {
		for line := r.StartLine(); line <= r.EndLine(); line++ {
			excluded[line] = struct{}{}
		}
	}
	for _, fn := range d.structure.Functions {
		for line := fn.Range.StartLine(); line <= fn.Range.EndLine(); line++ {
			delete(excluded, line)
		}
	}

	lines := make([]string, 0, len(d.lines))
	for i, line := range d.lines {
		if _, skip := excluded[i]; !skip {
			lines = append(lines, line.Content)
		}
	}
	return lines
}

// Functions returns the folded, documented functions with their identifiers.
func (d *EditLines) Functions() []chunking.FunctionInformation {
	return append([]chunking.FunctionInformation(nil), d.structure.Functions...)
}

// Classes returns the folded, documented classes.
func (d *EditLines) Classes() []chunking.ClassInformation {
	return append([]chunking.ClassInformation(nil), d.structure.Classes...)
}

// Types returns the folded, documented type declarations.
func (d *EditLines) Types() []chunking.TypeInformation {
	return append([]chunking.TypeInformation(nil), d.structure.Types...)
}

// OutlineNodes returns one node per class with its member functions.
func (d *EditLines) OutlineNodes() []chunking.OutlineNode {
	return append([]chunking.OutlineNode(nil), d.structure.Outline...)
}

// Outline renders every class that has an outline, in source order.
func (d *EditLines) Outline() []string {
	var out []string
	for _, node := range d.structure.Outline {
		if text, ok := node.Outline(); ok {
			out = append(out, text)
		}
	}
	return out
}

// FindEnclosingFunction returns the function containing the byte offset.
func (d *EditLines) FindEnclosingFunction(offset int) (chunking.FunctionInformation, bool) {
	return chunking.FindFunctionInByteOffset(d.structure.Functions, offset)
}

// ExpandSelection widens r to cover the functions its ends fall into.
func (d *EditLines) ExpandSelection(r languages.Range) (languages.Range, error) {
	if err := r.Validate(); err != nil {
		return languages.Range{}, err
	}
	return chunking.ExpandedSelectionRange(d.structure.Functions, r), nil
}
