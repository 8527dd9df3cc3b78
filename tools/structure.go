package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/languages"
)

// FindEnclosingFunctionInput is the input schema for the find_enclosing_function tool
type FindEnclosingFunctionInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	Line   int    `json:"line" jsonschema_description:"Line of the position (1-based)."`
	Column int    `json:"column,omitempty" jsonschema_description:"Column of the position (1-based, counted in characters). Defaults to 1."`
}

// FindEnclosingFunctionTool creates the find_enclosing_function MCP tool
func FindEnclosingFunctionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "find_enclosing_function",
		Description: "Return the function that contains a position of an open document, with its documentation and source.",
	}
}

// FindEnclosingFunctionHandler handles the find_enclosing_function tool invocation
func FindEnclosingFunctionHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, FindEnclosingFunctionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FindEnclosingFunctionInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		if input.Column == 0 {
			input.Column = 1
		}
		content, err := cfg.Workspace.Read(h)
		if err != nil {
			return nil, nil, err
		}
		pos, err := position(content, input.Line, input.Column)
		if err != nil {
			return nil, nil, err
		}

		fn, found, err := cfg.Workspace.FindEnclosingFunction(h, pos.Byte)
		if err != nil {
			return nil, nil, err
		}
		if !found {
			return textResult(fmt.Sprintf("No function encloses line %d column %d", input.Line, input.Column)), nil, nil
		}

		text, err := fn.Content(content)
		if err != nil {
			return nil, nil, err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "# func %s %s\n\n", fn.Name(), lineSpan(fn.Range))
		writeNumbered(&sb, strings.Split(text, "\n"), fn.Range.StartLine()+1)
		return textResult(sb.String()), nil, nil
	}
}

// ExpandSelectionInput is the input schema for the expand_selection tool
type ExpandSelectionInput struct {
	Handle      string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	StartLine   int    `json:"start_line" jsonschema_description:"Line where the selection starts (1-based)."`
	StartColumn int    `json:"start_column,omitempty" jsonschema_description:"Column where the selection starts (1-based). Defaults to 1."`
	EndLine     int    `json:"end_line" jsonschema_description:"Line where the selection ends (1-based)."`
	EndColumn   int    `json:"end_column,omitempty" jsonschema_description:"Column where the selection ends (1-based, exclusive). Defaults to 1."`
}

// ExpandSelectionTool creates the expand_selection MCP tool
func ExpandSelectionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "expand_selection",
		Description: "Widen a selection so that it covers every function its start or end falls into. Useful to turn a partial selection into complete, editable units.",
	}
}

// ExpandSelectionHandler handles the expand_selection tool invocation
func ExpandSelectionHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, ExpandSelectionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ExpandSelectionInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		if input.StartColumn == 0 {
			input.StartColumn = 1
		}
		if input.EndColumn == 0 {
			input.EndColumn = 1
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

		r, err := cfg.Workspace.ExpandSelection(h, languages.NewRange(start, end))
		if err != nil {
			return nil, nil, err
		}
		text, err := r.Slice(content)
		if err != nil {
			return nil, nil, err
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Selection %d:%d-%d:%d\n\n", r.StartLine()+1, r.StartColumn()+1, r.EndLine()+1, r.EndColumn()+1)
		writeNumbered(&sb, strings.Split(text, "\n"), r.StartLine()+1)
		return textResult(sb.String()), nil, nil
	}
}

// OutlineInput is the input schema for the outline tool
type OutlineInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
}

// OutlineTool creates the outline MCP tool
func OutlineTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "outline",
		Description: "Render a compact outline of the classes in an open document: plain declarations in full, and for languages with impl blocks the method signatures without bodies.",
	}
}

// OutlineHandler handles the outline tool invocation
func OutlineHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, OutlineInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input OutlineInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		outlines, err := cfg.Workspace.Outline(h)
		if err != nil {
			return nil, nil, err
		}
		if len(outlines) == 0 {
			return textResult("No outline available for this document."), nil, nil
		}
		return textResult(strings.Join(outlines, "\n\n") + "\n"), nil, nil
	}
}
