package python

import (
	"context"
	"testing"

	"github.com/roveo/topo-context/languages"
)

func TestLanguageMetadata(t *testing.T) {
	lang := &Language{}

	if lang.Name() != "python" {
		t.Errorf("expected name 'python', got %q", lang.Name())
	}

	exts := lang.Extensions()
	if len(exts) != 1 || exts[0] != ".py" {
		t.Errorf("expected extensions [.py], got %v", exts)
	}

	if lang.Queries().Types != "" {
		t.Error("expected python to have no type query")
	}
}

func TestCaptures(t *testing.T) {
	src := `import os
from typing import List

# Greeter says hello
class Greeter:
    def greet(self, name: str) -> str:
        message = "hi " + name
        return message

def main():
    Greeter().greet("x")
`
	tree, err := languages.Parse(context.Background(), &Language{}, []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	tests := []struct {
		name    string
		query   string
		capture string
		want    []string
	}{
		{"imports", queries.Imports, "import", []string{"import os", "from typing import List"}},
		{"classes", queries.Classes, "identifier", []string{"Greeter"}},
		{"functions", queries.Functions, "identifier", []string{"greet", "main"}},
		{"comments", queries.Comments, "comment", []string{"# Greeter says hello"}},
		{"identifiers", queries.Identifiers, "identifier", []string{"self", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := tree.Captures(tt.query)
			if err != nil {
				t.Fatalf("Captures failed: %v", err)
			}
			var got []string
			for _, m := range matches {
				if c, ok := m.First(tt.capture); ok {
					got = append(got, c.Text)
				}
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %q at %d, got %q", tt.want[i], i, got[i])
				}
			}
		})
	}
}

func TestReturnTypeCapture(t *testing.T) {
	src := "def add(a, b) -> int:\n    return a + b\n"
	tree, err := languages.Parse(context.Background(), &Language{}, []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer tree.Close()

	matches, err := tree.Captures(queries.Functions)
	if err != nil {
		t.Fatalf("Captures failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	ret, ok := matches[0].First("return_type")
	if !ok || ret.Text != "int" {
		t.Errorf("expected return type 'int', got %q", ret.Text)
	}
	params, _ := matches[0].First("parameters")
	if params.Text != "(a, b)" {
		t.Errorf("expected parameters '(a, b)', got %q", params.Text)
	}
}
