package languages_test

import (
	"context"
	"testing"

	"github.com/roveo/topo-context/languages"
	"github.com/roveo/topo-context/languages/golang"
)

func TestQueriesAreCompiledOnce(t *testing.T) {
	lang := &golang.Language{}
	query := lang.Queries().Functions

	first, err := languages.CompiledQuery(lang, query)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	second, err := languages.CompiledQuery(lang, query)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if first != second {
		t.Error("expected the compiled query to be reused")
	}

	if _, err := languages.CompiledQuery(lang, "(not_a_node) @x"); err == nil {
		t.Error("expected an error for an invalid query")
	}
}

func TestCapturesReuseQueryAcrossTrees(t *testing.T) {
	lang := &golang.Language{}
	for _, src := range []string{"package a\n\nfunc A() {}\n", "package b\n\nfunc B() {}\nfunc C() {}\n"} {
		tree, err := languages.Parse(context.Background(), lang, []byte(src))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		matches, err := tree.Captures(lang.Queries().Functions)
		tree.Close()
		if err != nil {
			t.Fatalf("Captures failed: %v", err)
		}
		if len(matches) == 0 {
			t.Errorf("expected function matches in %q", src)
		}
	}
}
