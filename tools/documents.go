package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/workspace"
)

// OpenDocumentInput is the input schema for the open_document tool
type OpenDocumentInput struct {
	Path     string `json:"path" jsonschema_description:"File path, absolute or relative to the working directory."`
	Content  string `json:"content,omitempty" jsonschema_description:"Document text. When empty the file is read from disk."`
	Language string `json:"language,omitempty" jsonschema_description:"Language name (go, python, rust, typescript). Detected from the file extension when empty."`
}

// OpenDocumentTool creates the open_document MCP tool
func OpenDocumentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "open_document",
		Description: "Open a document and return its handle. Other tools address documents by handle. Files in unsupported languages can still be read, edited and searched for similar snippets.",
	}
}

// OpenDocumentHandler handles the open_document tool invocation
func OpenDocumentHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, OpenDocumentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input OpenDocumentInput) (*mcp.CallToolResult, any, error) {
		if input.Path == "" {
			return nil, nil, fmt.Errorf("file path is required")
		}

		var h workspace.Handle
		if input.Content != "" {
			h = cfg.Workspace.Open(input.Path, input.Content, input.Language)
		} else {
			filePath, err := absPath(input.Path)
			if err != nil {
				return nil, nil, err
			}
			if h, err = cfg.Workspace.OpenFile(filePath, input.Language); err != nil {
				return nil, nil, err
			}
		}

		info, err := cfg.Workspace.Info(h)
		if err != nil {
			return nil, nil, err
		}
		return textResult(formatInfo(info)), nil, nil
	}
}

func formatInfo(info workspace.Info) string {
	lang := info.Language
	if lang == "" {
		lang = "plain text"
	}
	return fmt.Sprintf("%s %s (%s, %d lines, version %d)", info.Handle, displayPath(info.Path), lang, info.Lines, info.Version)
}

// OpenDirectoryInput is the input schema for the open_directory tool
type OpenDirectoryInput struct {
	Path string `json:"path,omitempty" jsonschema_description:"Directory to open. Defaults to current working directory."`
}

// OpenDirectoryTool creates the open_directory MCP tool
func OpenDirectoryTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "open_directory",
		Description: "Open every supported source file below a directory. Respects .gitignore and skips hidden directories, vendor and node_modules.",
	}
}

// OpenDirectoryHandler handles the open_directory tool invocation
func OpenDirectoryHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, OpenDirectoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input OpenDirectoryInput) (*mcp.CallToolResult, any, error) {
		dir := input.Path
		if dir == "" {
			dir = "."
		}
		dir, err := absPath(dir)
		if err != nil {
			return nil, nil, err
		}

		handles, err := cfg.Workspace.OpenDirectory(ctx, dir, cfg.SkipPatterns)
		if err != nil {
			return nil, nil, err
		}
		if len(handles) == 0 {
			return textResult("No supported files found in the specified directory."), nil, nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# Opened %d documents\n\n", len(handles))
		for _, h := range handles {
			info, err := cfg.Workspace.Info(h)
			if err != nil {
				continue
			}
			sb.WriteString(formatInfo(info) + "\n")
		}
		return textResult(sb.String()), nil, nil
	}
}

// ListDocumentsInput is the input schema for the list_documents tool
type ListDocumentsInput struct{}

// ListDocumentsTool creates the list_documents MCP tool
func ListDocumentsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_documents",
		Description: "List the open documents with their handles, languages, line counts and versions.",
	}
}

// ListDocumentsHandler handles the list_documents tool invocation
func ListDocumentsHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, ListDocumentsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListDocumentsInput) (*mcp.CallToolResult, any, error) {
		var sb strings.Builder
		for _, h := range cfg.Workspace.Handles() {
			info, err := cfg.Workspace.Info(h)
			if err != nil {
				continue
			}
			sb.WriteString(formatInfo(info) + "\n")
		}
		if sb.Len() == 0 {
			return textResult("No open documents."), nil, nil
		}
		return textResult(sb.String()), nil, nil
	}
}

// ReadDocumentInput is the input schema for the read_document tool
type ReadDocumentInput struct {
	Handle    string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
	StartLine int    `json:"start_line,omitempty" jsonschema_description:"First line to return (1-based). Defaults to the first line."`
	EndLine   int    `json:"end_line,omitempty" jsonschema_description:"Last line to return (1-based, inclusive). Defaults to the last line."`
}

// ReadDocumentTool creates the read_document MCP tool
func ReadDocumentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_document",
		Description: "Return the current text of an open document with line numbers, including unsaved edits.",
	}
}

// ReadDocumentHandler handles the read_document tool invocation
func ReadDocumentHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, ReadDocumentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ReadDocumentInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
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
		start, end := input.StartLine, input.EndLine
		if start <= 0 {
			start = 1
		}
		if end <= 0 || end > len(lines) {
			end = len(lines)
		}
		if start > end {
			return nil, nil, fmt.Errorf("start line %d is after end line %d", start, end)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s [%d-%d] version %d\n\n", displayPath(info.Path), start, end, info.Version)
		writeNumbered(&sb, lines[start-1:end], start)
		return textResult(sb.String()), nil, nil
	}
}

// SaveDocumentInput is the input schema for the save_document tool
type SaveDocumentInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
}

// SaveDocumentTool creates the save_document MCP tool
func SaveDocumentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "save_document",
		Description: "Write the current text of an open document back to its file path.",
	}
}

// SaveDocumentHandler handles the save_document tool invocation
func SaveDocumentHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, SaveDocumentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SaveDocumentInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
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
		filePath, err := absPath(info.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := os.WriteFile(filePath, []byte(content), 0o644); err != nil {
			return nil, nil, fmt.Errorf("failed to write file: %w", err)
		}
		log.Infof("saved %s to %s", h, filePath)
		return textResult(fmt.Sprintf("Saved %s (version %d)", displayPath(info.Path), info.Version)), nil, nil
	}
}

// CloseDocumentInput is the input schema for the close_document tool
type CloseDocumentInput struct {
	Handle string `json:"handle" jsonschema_description:"Document handle returned by open_document."`
}

// CloseDocumentTool creates the close_document MCP tool
func CloseDocumentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "close_document",
		Description: "Close an open document. Unsaved edits are discarded and the handle becomes invalid.",
	}
}

// CloseDocumentHandler handles the close_document tool invocation
func CloseDocumentHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, CloseDocumentInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CloseDocumentInput) (*mcp.CallToolResult, any, error) {
		h, err := requireHandle(input.Handle)
		if err != nil {
			return nil, nil, err
		}
		if err := cfg.Workspace.Close(h); err != nil {
			return nil, nil, err
		}
		return textResult(fmt.Sprintf("Closed %s", h)), nil, nil
	}
}
