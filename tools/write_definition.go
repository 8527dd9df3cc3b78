package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WriteDefinitionInput is the input schema for the write_definition tool
type WriteDefinitionInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	Symbol string `json:"symbol" jsonschema_description:"Name of the symbol to replace (function, type, class, method). For methods, use just the method name without the receiver."`
	Code   string `json:"code" jsonschema_description:"The new source code for the symbol, including its documentation comment. Replaces the entire definition as returned by read_definition."`
}

// WriteDefinitionTool creates the write_definition MCP tool
func WriteDefinitionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "write_definition",
		Description: "Replace the source code of a symbol (function, type, class, etc.) in an open document. The inverse of read_definition. Returns a unified diff; use save_document to write the result to disk.",
	}
}

// WriteDefinitionHandler handles the write_definition tool invocation
func WriteDefinitionHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, WriteDefinitionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input WriteDefinitionInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		if input.Symbol == "" {
			return nil, nil, fmt.Errorf("symbol name is required")
		}
		if input.Code == "" {
			return nil, nil, fmt.Errorf("code is required")
		}

		sym, err := FindSymbol(cfg.Workspace, h, input.Symbol)
		if err != nil {
			return nil, nil, err
		}
		out, err := applyAndDiff(cfg.Workspace, h, sym.Range, strings.TrimSuffix(input.Code, "\n"))
		if err != nil {
			return nil, nil, err
		}
		return textResult(out), nil, nil
	}
}
