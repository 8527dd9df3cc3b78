package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/languages"
	"github.com/roveo/topo-context/workspace"
)

// FindReferencesInput is the input schema for the find_identifier tool
type FindReferencesInput struct {
	Symbol string `json:"symbol" jsonschema_description:"Identifier name to look for."`
	Handle string `json:"handle,omitempty" jsonschema_description:"Restrict the search to one document. Searches every open document when empty."`
}

// FindReferencesTool creates the find_identifier MCP tool
func FindReferencesTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "find_identifier",
		Description: `Find where an identifier is bound inside functions of the open documents: assignments, parameters and loop variables.

Syntax-aware: only matches real identifier nodes, not strings or comments. Reports the enclosing function of each match.`,
	}
}

// FindReferencesHandler handles the find_identifier tool invocation
func FindReferencesHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, FindReferencesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindReferencesInput) (*mcp.CallToolResult, any, error) {
		if input.Symbol == "" {
			return nil, nil, fmt.Errorf("symbol name is required")
		}
		handles := cfg.Workspace.Handles()
		if input.Handle != "" {
			handles = []workspace.Handle{workspace.Handle(input.Handle)}
		}

		refs, err := FindReferences(cfg.Workspace, handles, input.Symbol)
		if err != nil {
			return nil, nil, err
		}
		if len(refs) == 0 {
			return textResult(fmt.Sprintf("No identifiers found for %q", input.Symbol)), nil, nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Identifier %q (%d found)\n\n", input.Symbol, len(refs))
		currentFile := ""
		for _, ref := range refs {
			if ref.File != currentFile {
				if currentFile != "" {
					sb.WriteString("\n")
				}
				fmt.Fprintf(&sb, "## %s\n", ref.File)
				currentFile = ref.File
			}
			fmt.Fprintf(&sb, "  [%d:%d] in %s: %s\n", ref.Line, ref.Column, ref.Function, ref.Context)
		}
		return textResult(sb.String()), nil, nil
	}
}

// Reference is one identifier node matching a name
type Reference struct {
	File     string // Display path
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Function string // Innermost enclosing function
	Context  string // The trimmed line containing the identifier
}

// FindReferences collects the identifier nodes called name. Each node is
// reported once, under the innermost function containing it.
func FindReferences(ws *workspace.Workspace, handles []workspace.Handle, name string) ([]Reference, error) {
	var refs []Reference
	for _, h := range handles {
		info, err := ws.Info(h)
		if err != nil {
			return nil, err
		}
		functions, err := ws.ExtractFunctions(h)
		if err != nil {
			return nil, err
		}
		content, err := ws.Read(h)
		if err != nil {
			return nil, err
		}
		lines := strings.Split(content, "\n")

		// functions are ordered outer-first, so an inner function overwrites
		// the owner of identifiers it shares with its parent
		found := map[languages.Range]Reference{}
		for _, fn := range functions {
			for _, id := range fn.Identifiers() {
				if id.Name != name {
					continue
				}
				line := id.Range.StartLine()
				var text string
				if line < len(lines) {
					text = strings.TrimSpace(lines[line])
				}
				found[id.Range] = Reference{
					File:     displayPath(info.Path),
					Line:     line + 1,
					Column:   id.Range.StartColumn() + 1,
					Function: fn.Name(),
					Context:  text,
				}
			}
		}
		var local []Reference
		for _, ref := range found {
			local = append(local, ref)
		}
		sort.Slice(local, func(i, j int) bool {
			if local[i].Line != local[j].Line {
				return local[i].Line < local[j].Line
			}
			return local[i].Column < local[j].Column
		})
		refs = append(refs, local...)
	}
	return refs, nil
}
