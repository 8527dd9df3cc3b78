package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/document"
	"github.com/roveo/topo-context/workspace"
)

// SimilarSnippetsInput is the input schema for the similar_snippets tool
type SimilarSnippetsInput struct {
	Query  string `json:"query" jsonschema_description:"Text to compare against, typically the code around the cursor."`
	Handle string `json:"handle,omitempty" jsonschema_description:"Restrict the search to one document. Searches every open document when empty."`
}

// SimilarSnippetsTool creates the similar_snippets MCP tool
func SimilarSnippetsTool() *mcp.Tool {
	return &mcp.Tool{
		Name: "similar_snippets",
		Description: `Find 50-line windows of the open documents whose vocabulary is most similar to a query.

Identifiers are split on underscores and case changes, so "parseHTTPRequest" matches "parse_http_request" partially. Imports are ignored. At most ten windows per document are returned; overlapping windows are merged.`,
	}
}

// SimilarSnippetsHandler handles the similar_snippets tool invocation
func SimilarSnippetsHandler(cfg *Config) func(context.Context, *mcp.CallToolRequest, SimilarSnippetsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SimilarSnippetsInput) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(input.Query) == "" {
			return nil, nil, fmt.Errorf("query is required")
		}

		var matches []workspace.Match
		if input.Handle != "" {
			h := workspace.Handle(input.Handle)
			snippets, err := cfg.Workspace.SimilarSnippets(h, input.Query)
			if err != nil {
				return nil, nil, err
			}
			info, err := cfg.Workspace.Info(h)
			if err != nil {
				return nil, nil, err
			}
			for _, s := range document.CoalesceSnippets(snippets) {
				matches = append(matches, workspace.Match{Handle: h, Path: info.Path, Snippet: s})
			}
		} else {
			var err error
			if matches, err = cfg.Workspace.SimilarAcross(input.Query); err != nil {
				return nil, nil, err
			}
		}

		if len(matches) == 0 {
			return textResult("No similar snippets found."), nil, nil
		}
		var sb strings.Builder
		for _, m := range matches {
			fmt.Fprintf(&sb, "## %s (%s) window %d-%d\n", displayPath(m.Path), m.Handle, m.Snippet.StartLine, m.Snippet.EndLine)
			sb.WriteString("```\n")
			sb.WriteString(m.Snippet.Snippet())
			sb.WriteString("\n```\n\n")
		}
		return textResult(sb.String()), nil, nil
	}
}
