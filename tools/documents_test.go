package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roveo/topo-context/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDocumentFromDisk(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "hello.go")
	require.NoError(t, os.WriteFile(file, []byte(helloGo), 0o644))

	cfg := newConfig(t)
	out := call(t, OpenDocumentHandler(cfg), OpenDocumentInput{Path: file})
	assert.Contains(t, out, "(go, 23 lines, version 0)")

	handles := cfg.Workspace.Handles()
	require.Len(t, handles, 1)
	assert.True(t, strings.HasPrefix(out, string(handles[0])))

	err := callErr(t, OpenDocumentHandler(cfg), OpenDocumentInput{Path: filepath.Join(tmpDir, "missing.go")})
	assert.ErrorContains(t, err, "failed to read file")

	err = callErr(t, OpenDocumentHandler(cfg), OpenDocumentInput{})
	assert.ErrorContains(t, err, "file path is required")
}

func TestOpenDocumentWithContent(t *testing.T) {
	cfg := newConfig(t)
	out := call(t, OpenDocumentHandler(cfg), OpenDocumentInput{Path: "notes.txt", Content: "one\ntwo"})
	assert.Contains(t, out, "notes.txt (plain text, 2 lines, version 0)")
}

func TestOpenDirectoryAndList(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "hello.go"), []byte(helloGo), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "gen"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "gen", "gen.go"), []byte("package gen\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("notes\n"), 0o644))

	cfg := newConfig(t)
	cfg.SkipPatterns = []string{"gen"}

	out := call(t, OpenDirectoryHandler(cfg), OpenDirectoryInput{Path: tmpDir})
	assert.Contains(t, out, "# Opened 1 documents")
	assert.Contains(t, out, "hello.go (go, 23 lines, version 0)")

	list := call(t, ListDocumentsHandler(cfg), ListDocumentsInput{})
	assert.Equal(t, 1, strings.Count(list, "\n"))
	assert.Contains(t, list, "hello.go")

	empty := t.TempDir()
	out = call(t, OpenDirectoryHandler(cfg), OpenDirectoryInput{Path: empty})
	assert.Equal(t, "No supported files found in the specified directory.", out)
}

func TestReadDocument(t *testing.T) {
	cfg := newConfig(t)
	h := openHello(t, cfg)

	out := call(t, ReadDocumentHandler(cfg), ReadDocumentInput{Handle: h, StartLine: 6, EndLine: 7})
	assert.Equal(t, "# hello.go [6-7] version 0\n\n```\n"+
		"   6 | func Hello(name string) string {\n"+
		"   7 | \tmsg := \"Hello, \" + name\n"+
		"```\n", out)

	out = call(t, ReadDocumentHandler(cfg), ReadDocumentInput{Handle: h})
	assert.Contains(t, out, "[1-23]")
	assert.Contains(t, out, "  23 | \n")

	err := callErr(t, ReadDocumentHandler(cfg), ReadDocumentInput{Handle: h, StartLine: 9, EndLine: 3})
	assert.ErrorContains(t, err, "start line 9 is after end line 3")
}

func TestSaveAndCloseDocument(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(file, []byte("draft"), 0o644))

	cfg := newConfig(t)
	h, err := cfg.Workspace.OpenFile(file, "")
	require.NoError(t, err)

	call(t, ApplyEditHandler(cfg), ApplyEditInput{
		Handle: string(h), StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 6, Text: "final",
	})
	out := call(t, SaveDocumentHandler(cfg), SaveDocumentInput{Handle: string(h)})
	assert.Contains(t, out, "(version 1)")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "final", string(data))

	out = call(t, CloseDocumentHandler(cfg), CloseDocumentInput{Handle: string(h)})
	assert.Equal(t, "Closed "+string(h), out)

	err = callErr(t, CloseDocumentHandler(cfg), CloseDocumentInput{Handle: string(h)})
	assert.ErrorIs(t, err, workspace.ErrUnknownHandle)
	assert.Equal(t, "No open documents.", call(t, ListDocumentsHandler(cfg), ListDocumentsInput{}))
}
