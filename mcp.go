package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/roveo/topo-context/tools"
	"github.com/roveo/topo-context/workspace"
)

func runMCPServer(cfg config, skipPatterns []string, lineLimit int) error {
	ws, err := cfg.newWorkspace()
	if err != nil {
		return err
	}
	toolConfig := &tools.Config{
		Workspace:    ws,
		SkipPatterns: skipPatterns,
		LineLimit:    lineLimit,
	}

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "topo-context",
		Version: "1.0.0",
	}, nil)

	// Document lifecycle
	mcp.AddTool(s, tools.OpenDocumentTool(), tools.OpenDocumentHandler(toolConfig))
	mcp.AddTool(s, tools.OpenDirectoryTool(), tools.OpenDirectoryHandler(toolConfig))
	mcp.AddTool(s, tools.ListDocumentsTool(), tools.ListDocumentsHandler(toolConfig))
	mcp.AddTool(s, tools.ReadDocumentTool(), tools.ReadDocumentHandler(toolConfig))
	mcp.AddTool(s, tools.ApplyEditTool(), tools.ApplyEditHandler(toolConfig))
	mcp.AddTool(s, tools.SaveDocumentTool(), tools.SaveDocumentHandler(toolConfig))
	mcp.AddTool(s, tools.CloseDocumentTool(), tools.CloseDocumentHandler(toolConfig))

	// Structure
	mcp.AddTool(s, tools.CodemapTool(), tools.CodemapHandler(toolConfig))
	mcp.AddTool(s, tools.ReadDefinitionTool(), tools.ReadDefinitionHandler(toolConfig))
	mcp.AddTool(s, tools.WriteDefinitionTool(), tools.WriteDefinitionHandler(toolConfig))
	mcp.AddTool(s, tools.FindReferencesTool(), tools.FindReferencesHandler(toolConfig))
	mcp.AddTool(s, tools.FindEnclosingFunctionTool(), tools.FindEnclosingFunctionHandler(toolConfig))
	mcp.AddTool(s, tools.ExpandSelectionTool(), tools.ExpandSelectionHandler(toolConfig))
	mcp.AddTool(s, tools.OutlineTool(), tools.OutlineHandler(toolConfig))

	// Retrieval
	mcp.AddTool(s, tools.SimilarSnippetsTool(), tools.SimilarSnippetsHandler(toolConfig))

	return s.Run(context.Background(), &mcp.StdioTransport{})
}

// openForCommand opens a single file in a fresh workspace
func openForCommand(cfg config, path string) (*workspace.Workspace, workspace.Handle, error) {
	ws, err := cfg.newWorkspace()
	if err != nil {
		return nil, "", err
	}
	h, err := ws.OpenFile(path, "")
	if err != nil {
		return nil, "", err
	}
	return ws, h, nil
}

func runOutline(cfg config, path string) error {
	ws, h, err := openForCommand(cfg, path)
	if err != nil {
		return err
	}
	outlines, err := ws.Outline(h)
	if err != nil {
		return err
	}
	if len(outlines) == 0 {
		fmt.Fprintln(os.Stderr, "No outline available for this file.")
		return nil
	}
	fmt.Println(strings.Join(outlines, "\n\n"))
	return nil
}

func runSymbols(cfg config, paths []string, skipPatterns []string, filter string, lineLimit int) error {
	ws, err := cfg.newWorkspace()
	if err != nil {
		return err
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if info.IsDir() {
			if _, err := ws.OpenDirectory(context.Background(), p, skipPatterns); err != nil {
				return fmt.Errorf("failed to open directory: %w", err)
			}
			continue
		}
		if _, err := ws.OpenFile(p, ""); err != nil {
			return err
		}
	}

	files, err := tools.IndexWorkspace(ws)
	if err != nil {
		return err
	}
	output := tools.FormatCodemap(files, tools.FormatOptions{
		SkipPatterns: skipPatterns,
		Filter:       filter,
		LineLimit:    lineLimit,
	})
	if output == "" {
		output = "No symbols found in the specified paths.\n"
	}
	fmt.Print(output)
	return nil
}

func runSimilar(cfg config, path, query string) error {
	ws, err := cfg.newWorkspace()
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		_, err = ws.OpenDirectory(context.Background(), path, nil)
	} else {
		_, err = ws.OpenFile(path, "")
	}
	if err != nil {
		return err
	}

	matches, err := ws.SimilarAcross(query)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stderr, "No similar snippets found.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("## %s window %d-%d\n%s\n\n", m.Path, m.Snippet.StartLine, m.Snippet.EndLine, m.Snippet.Snippet())
	}
	return nil
}
