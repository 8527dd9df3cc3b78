package tools

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/workspace"
)

// CodemapInput is the input schema for the index tool
type CodemapInput struct {
	Filter string `json:"filter,omitempty" jsonschema_description:"Optional path filter to show only a specific package (directory) or file. When specified, only documents matching this prefix have their symbols shown. Overrides any default skip patterns for matching files."`
}

// CodemapTool creates the index MCP tool
func CodemapTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "index",
		Description: "List the functions, classes and types of every open document with their handles and line ranges. Open documents first with open_document or open_directory.",
	}
}

// CodemapHandler handles the index tool invocation
func CodemapHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, CodemapInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CodemapInput) (*mcp.CallToolResult, any, error) {
		files, err := IndexWorkspace(cfg.Workspace)
		if err != nil {
			return nil, nil, err
		}
		output := FormatCodemap(files, FormatOptions{
			SkipPatterns: cfg.SkipPatterns,
			Filter:       input.Filter,
			LineLimit:    cfg.LineLimit,
		})
		if output == "" {
			output = "No symbols found in the open documents."
		}
		return textResult(output), nil, nil
	}
}

// FileIndex is the symbol listing of one open document
type FileIndex struct {
	Handle   workspace.Handle
	Path     string
	Language string
	Symbols  []Symbol
}

// IndexWorkspace lists the symbols of every open document, ordered by path.
func IndexWorkspace(ws *workspace.Workspace) ([]FileIndex, error) {
	var files []FileIndex
	for _, h := range ws.Handles() {
		info, err := ws.Info(h)
		if err != nil {
			continue // closed meanwhile
		}
		symbols, err := Symbols(ws, h)
		if err != nil {
			continue
		}
		files = append(files, FileIndex{
			Handle:   h,
			Path:     displayPath(info.Path),
			Language: info.Language,
			Symbols:  symbols,
		})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// FormatOptions controls how the index is formatted
type FormatOptions struct {
	SkipPatterns []string // Path prefixes to skip by default
	Filter       string   // If set, only show files matching this prefix (overrides skip)
	LineLimit    int      // Maximum lines in output (0 = DefaultLineLimit)
}

// FormatCodemap formats the index in a compact human-readable format. When
// the listing is longer than the line limit, the directories contributing
// the most lines are dropped first.
func FormatCodemap(files []FileIndex, opts FormatOptions) string {
	limit := opts.LineLimit
	if limit == 0 {
		limit = DefaultLineLimit
	}

	var shown, skipped []FileIndex
	for _, f := range files {
		switch {
		case opts.Filter != "":
			if matchesFilter(f.Path, opts.Filter) {
				shown = append(shown, f)
			}
		case isSkipped(f.Path, opts.SkipPatterns):
			skipped = append(skipped, f)
		default:
			if len(f.Symbols) > 0 {
				shown = append(shown, f)
			}
		}
	}

	shown, pruned := pruneToLimit(shown, limit-3*len(skipped))

	var sb strings.Builder
	if len(pruned) > 0 {
		sb.WriteString("# Note: Output pruned to fit line limit\n")
		sb.WriteString("# Pruned directories: ")
		sb.WriteString(strings.Join(pruned, ", "))
		sb.WriteString("\n\n")
	}
	for _, f := range skipped {
		fmt.Fprintf(&sb, "## %s\n", f.Path)
		sb.WriteString("  (skipped by default - use filter parameter to list this path explicitly)\n\n")
	}
	for _, f := range shown {
		fmt.Fprintf(&sb, "## %s (%s)\n", f.Path, f.Handle)
		for _, s := range f.Symbols {
			line := fmt.Sprintf("  %s %s", s, lineSpan(s.Range))
			if doc := firstDocLine(s.Documentation); doc != "" {
				line += " " + doc
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// fileLineCount is header + symbols + blank line
func fileLineCount(f FileIndex) int {
	return len(f.Symbols) + 2
}

// pruneToLimit drops whole directories, largest first, until the listing fits.
func pruneToLimit(files []FileIndex, limit int) ([]FileIndex, []string) {
	total := 0
	byDir := map[string]int{}
	for _, f := range files {
		n := fileLineCount(f)
		total += n
		byDir[path.Dir(f.Path)] += n
	}
	if limit <= 0 || total <= limit {
		return files, nil
	}

	dirs := make([]string, 0, len(byDir))
	for d := range byDir {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool {
		if byDir[dirs[i]] != byDir[dirs[j]] {
			return byDir[dirs[i]] > byDir[dirs[j]]
		}
		return dirs[i] < dirs[j]
	})

	dropped := map[string]bool{}
	var pruned []string
	for _, d := range dirs {
		if total <= limit {
			break
		}
		dropped[d] = true
		pruned = append(pruned, d)
		total -= byDir[d]
	}

	var kept []FileIndex
	for _, f := range files {
		if !dropped[path.Dir(f.Path)] {
			kept = append(kept, f)
		}
	}
	sort.Strings(pruned)
	return kept, pruned
}

// matchesFilter checks if a file path equals the filter or lies below it.
func matchesFilter(filePath, filter string) bool {
	filter = strings.TrimSuffix(strings.TrimPrefix(filter, "./"), "/")
	filePath = strings.TrimPrefix(filePath, "./")
	return filePath == filter || strings.HasPrefix(filePath, filter+"/")
}

func isSkipped(filePath string, patterns []string) bool {
	for _, p := range patterns {
		if matchesFilter(filePath, p) {
			return true
		}
	}
	return false
}
