package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReadDefinitionInput is the input schema for the read_definition tool
type ReadDefinitionInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	Symbol string `json:"symbol" jsonschema_description:"Name of the symbol to retrieve (function, type, class, method). For methods, use just the method name without the receiver."`
}

// ReadDefinitionTool creates the read_definition MCP tool
func ReadDefinitionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_definition",
		Description: "Get the source code of a symbol (function, type, class, etc.) by name from an open document. Similar to LSP's 'Go to Definition'. Returns the complete definition including its documentation comment.",
	}
}

// ReadDefinitionHandler handles the read_definition tool invocation
func ReadDefinitionHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, ReadDefinitionInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadDefinitionInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		if input.Symbol == "" {
			return nil, nil, fmt.Errorf("symbol name is required")
		}

		sym, err := FindSymbol(cfg.Workspace, h, input.Symbol)
		if err != nil {
			return nil, nil, err
		}
		info, err := cfg.Workspace.Info(h)
		if err != nil {
			return nil, nil, err
		}
		content, err := cfg.Workspace.Read(h)
		if err != nil {
			return nil, nil, err
		}

		lines := strings.Split(content, "\n")
		startLine, endLine := sym.Range.StartLine(), sym.Range.EndLine()
		if endLine >= len(lines) {
			endLine = len(lines) - 1
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s in %s %s\n\n", sym, displayPath(info.Path), lineSpan(sym.Range))
		writeNumbered(&sb, lines[startLine:endLine+1], startLine+1)
		return textResult(sb.String()), nil, nil
	}
}
