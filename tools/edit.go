package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/roveo/topo-context/languages"
	"github.com/roveo/topo-context/workspace"
)

// ApplyEditInput is the input schema for the apply_edit tool
type ApplyEditInput struct {
	Handle      string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	StartLine   int    `json:"start_line" jsonschema_description:"Line where the replaced range starts (1-based)."`
	StartColumn int    `json:"start_column" jsonschema_description:"Column where the replaced range starts (1-based, counted in characters)."`
	EndLine     int    `json:"end_line" jsonschema_description:"Line where the replaced range ends (1-based)."`
	EndColumn   int    `json:"end_column" jsonschema_description:"Column just after the last replaced character (1-based, exclusive). Equal start and end positions insert without removing."`
	Text        string `json:"text,omitempty" jsonschema_description:"Replacement text. Empty to delete the range."`
}

// ApplyEditTool creates the apply_edit MCP tool
func ApplyEditTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "apply_edit",
		Description: "Replace a range of an open document with new text and return a unified diff of the change. The document is re-analyzed after every edit. Edits stay in memory until save_document.",
	}
}

// ApplyEditHandler handles the apply_edit tool invocation
func ApplyEditHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, ApplyEditInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ApplyEditInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		content, err := cfg.Workspace.Read(h)
		if err != nil {
			return nil, nil, err
		}
		start, err := position(content, input.StartLine, input.StartColumn)
		if err != nil {
			return nil, nil, err
		}
		end, err := position(content, input.EndLine, input.EndColumn)
		if err != nil {
			return nil, nil, err
		}

		out, err := applyAndDiff(cfg.Workspace, h, languages.NewRange(start, end), input.Text)
		if err != nil {
			return nil, nil, err
		}
		return textResult(out), nil, nil
	}
}

// applyAndDiff applies the edit and renders its unified diff
func applyAndDiff(ws *workspace.Workspace, h workspace.Handle, r languages.Range, text string) (string, error) {
	res, err := ws.ApplyEdit(h, r, text)
	if err != nil {
		return "", err
	}
	info, err := ws.Info(h)
	if err != nil {
		return "", err
	}
	name := displayPath(info.Path)

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(res.Before),
		B:        difflib.SplitLines(res.After),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to diff edit: %w", err)
	}
	if diff == "" {
		return fmt.Sprintf("No changes to %s (version %d)", name, res.Version), nil
	}
	return fmt.Sprintf("# %s version %d\n\n%s", name, res.Version, diff), nil
}
