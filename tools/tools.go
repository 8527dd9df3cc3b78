// Package tools provides the MCP tools over a workspace of open documents.
package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/chunking"
	"github.com/roveo/topo-context/languages"
	"github.com/roveo/topo-context/workspace"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("topo.tools")

// DefaultLineLimit is the default maximum number of lines in the index output
const DefaultLineLimit = 1000

// Config holds server-wide configuration for tools
type Config struct {
	Workspace    *workspace.Workspace
	SkipPatterns []string // Path prefixes to skip by default
	LineLimit    int      // Maximum lines in output (0 = no limit)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// absPath resolves p against the working directory
func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(cwd, p), nil
}

// displayPath shortens p to a path relative to the working directory when
// it lies below it.
func displayPath(p string) string {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(cwd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

func requireHandle(h string) (workspace.Handle, error) {
	if h == "" {
		return "", fmt.Errorf("document handle is required")
	}
	return workspace.Handle(h), nil
}

// writeNumbered writes lines prefixed with 1-based line numbers starting at first.
func writeNumbered(sb *strings.Builder, lines []string, first int) {
	sb.WriteString("```\n")
	for i, line := range lines {
		fmt.Fprintf(sb, "%4d | %s\n", first+i, line)
	}
	sb.WriteString("```\n")
}

// lineSpan formats a 1-based line range
func lineSpan(r languages.Range) string {
	start, end := r.StartLine()+1, r.EndLine()+1
	if start == end {
		return fmt.Sprintf("[%d]", start)
	}
	return fmt.Sprintf("[%d-%d]", start, end)
}

// position converts a 1-based line and column into a position in content,
// computing its byte offset. Columns count characters, not bytes.
func position(content string, line, column int) (languages.Position, error) {
	lines := strings.Split(content, "\n")
	if line < 1 || line > len(lines) {
		return languages.Position{}, fmt.Errorf("line %d out of range (document has %d lines)", line, len(lines))
	}
	runes := []rune(lines[line-1])
	if column < 1 || column > len(runes)+1 {
		return languages.Position{}, fmt.Errorf("column %d out of range on line %d (%d characters)", column, line, len(runes))
	}
	offset := 0
	for _, l := range lines[:line-1] {
		offset += len(l) + 1
	}
	offset += len(string(runes[:column-1]))
	return languages.NewPosition(line-1, column-1, offset), nil
}

// Symbol is a named function, class or type in an open document
type Symbol struct {
	Kind          string
	Name          string
	Range         languages.Range
	Documentation string
}

func (s Symbol) String() string {
	return s.Kind + " " + s.Name
}

// Symbols lists the named structures of a document in source order.
func Symbols(ws *workspace.Workspace, h workspace.Handle) ([]Symbol, error) {
	functions, err := ws.ExtractFunctions(h)
	if err != nil {
		return nil, err
	}
	classes, err := ws.ExtractClasses(h)
	if err != nil {
		return nil, err
	}
	types, err := ws.ExtractTypes(h)
	if err != nil {
		return nil, err
	}

	var out []Symbol
	for _, c := range classes {
		out = append(out, Symbol{Kind: "class", Name: c.Name, Range: c.Range, Documentation: c.Documentation})
	}
	for _, t := range types {
		if declaredAsClass(t.Name, t.Range, classes) {
			continue
		}
		out = append(out, Symbol{Kind: "type", Name: t.Name, Range: t.Range, Documentation: t.Documentation})
	}
	for _, fn := range functions {
		if fn.Name() == "" {
			continue
		}
		out = append(out, Symbol{Kind: "func", Name: fn.Name(), Range: fn.Range, Documentation: fn.Documentation()})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Range.StartByte() < out[j].Range.StartByte()
	})
	return out, nil
}

// declaredAsClass reports whether a type declaration is the inner part of a
// class capture, like the type_spec of a Go struct.
func declaredAsClass(name string, r languages.Range, classes []chunking.ClassInformation) bool {
	for _, c := range classes {
		if c.Name == name && c.Range.Contains(r) {
			return true
		}
	}
	return false
}

// FindSymbol returns the first symbol called name
func FindSymbol(ws *workspace.Workspace, h workspace.Handle, name string) (Symbol, error) {
	symbols, err := Symbols(ws, h)
	if err != nil {
		return Symbol{}, err
	}
	for _, s := range symbols {
		if s.Name == name {
			return s, nil
		}
	}
	return Symbol{}, fmt.Errorf("symbol %q not found in %s", name, h)
}

// firstDocLine returns the first line of a documentation block
func firstDocLine(doc string) string {
	first, _, _ := strings.Cut(doc, "\n")
	return strings.TrimSpace(first)
}
