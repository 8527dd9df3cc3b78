package typescript

import (
	"context"
	"testing"

	"github.com/roveo/topo-context/languages"
)

func TestLanguageMetadata(t *testing.T) {
	tests := []struct {
		lang     languages.Language
		wantName string
		wantExts []string
	}{
		{&TSLanguage{}, "typescript", []string{".ts"}},
		{&TSXLanguage{}, "tsx", []string{".tsx"}},
		{&JSLanguage{}, "javascript", []string{".js", ".mjs", ".cjs"}},
		{&JSXLanguage{}, "jsx", []string{".jsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			if tt.lang.Name() != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, tt.lang.Name())
			}
			exts := tt.lang.Extensions()
			if len(exts) != len(tt.wantExts) {
				t.Fatalf("expected %v, got %v", tt.wantExts, exts)
			}
			for i := range exts {
				if exts[i] != tt.wantExts[i] {
					t.Errorf("expected %q, got %q", tt.wantExts[i], exts[i])
				}
			}
			if tt.lang.OutlineStyle() != languages.OutlineNone {
				t.Errorf("expected OutlineNone")
			}
		})
	}
}

func names(t *testing.T, tree *languages.Tree, query, capture string) []string {
	t.Helper()
	matches, err := tree.Captures(query)
	if err != nil {
		t.Fatalf("Captures failed: %v", err)
	}
	var out []string
	for _, m := range matches {
		if c, ok := m.First(capture); ok {
			out = append(out, c.Text)
		}
	}
	return out
}

func TestTypeScriptCaptures(t *testing.T) {
	src := `import { readFile } from "fs";

interface Reader {
  read(): string;
}

type ID = number;

// Service does things
class Service {
  run(id: ID): void {
    const result = id + 1;
  }
}

function helper(x: number): number {
  return x;
}
`
	tree, err := languages.Parse(context.Background(), &TSLanguage{}, []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	if got := names(t, tree, tsQueries.Imports, "import"); len(got) != 1 {
		t.Errorf("expected 1 import, got %v", got)
	}
	if got := names(t, tree, tsQueries.Classes, "identifier"); len(got) != 1 || got[0] != "Service" {
		t.Errorf("expected [Service], got %v", got)
	}
	if got := names(t, tree, tsQueries.Types, "identifier"); len(got) != 2 || got[0] != "Reader" || got[1] != "ID" {
		t.Errorf("expected [Reader ID], got %v", got)
	}
	if got := names(t, tree, tsQueries.Functions, "identifier"); len(got) != 2 || got[0] != "run" || got[1] != "helper" {
		t.Errorf("expected [run helper], got %v", got)
	}
	if got := names(t, tree, tsQueries.Identifiers, "identifier"); len(got) != 3 {
		t.Errorf("expected id, result and x, got %v", got)
	}
}

func TestJavaScriptCaptures(t *testing.T) {
	src := `class Counter {
  inc(n) { return n + 1; }
}

const double = (v) => v * 2;
`
	tree, err := languages.Parse(context.Background(), &JSLanguage{}, []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	if got := names(t, tree, jsQueries.Classes, "identifier"); len(got) != 1 || got[0] != "Counter" {
		t.Errorf("expected [Counter], got %v", got)
	}
	if got := names(t, tree, jsQueries.Functions, "function"); len(got) != 2 {
		t.Errorf("expected method and arrow function, got %v", got)
	}
}
