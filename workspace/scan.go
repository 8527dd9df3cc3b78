package workspace

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/roveo/topo-context/document"
	"golang.org/x/sync/errgroup"
)

// ignoreRule is one line of a .gitignore file
type ignoreRule struct {
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool
	base     string // directory of the .gitignore, relative to the scan root
}

func parseIgnoreLine(line, base string) (ignoreRule, bool) {
	if strings.HasSuffix(line, `\ `) {
		line = line[:len(line)-2] + " "
	} else {
		line = strings.TrimRight(line, " ")
	}
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}

	r := ignoreRule{base: base}
	if rest, ok := strings.CutPrefix(line, "!"); ok {
		r.negate, line = true, rest
	}
	if rest, ok := strings.CutSuffix(line, "/"); ok {
		r.dirOnly, line = true, rest
	}
	if rest, ok := strings.CutPrefix(line, "/"); ok {
		r.anchored, line = true, rest
	} else {
		r.anchored = strings.Contains(line, "/")
	}
	r.glob = line
	return r, true
}

func globMatch(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

func (r ignoreRule) matches(rel string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}
	if r.base != "" {
		var ok bool
		if rel, ok = strings.CutPrefix(rel, r.base+"/"); !ok {
			return false
		}
	}
	if r.anchored {
		return globMatch(r.glob, rel)
	}
	segments := strings.Split(rel, "/")
	for i := range segments {
		if globMatch(r.glob, strings.Join(segments[i:], "/")) {
			return true
		}
	}
	return false
}

// ignoreRules holds every .gitignore rule found under a root. Later rules
// override earlier ones.
type ignoreRules []ignoreRule

func loadIgnoreRules(root string) ignoreRules {
	var rules ignoreRules
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if d.Name() != ".gitignore" {
			return nil
		}
		base, _ := filepath.Rel(root, filepath.Dir(path))
		if base == "." {
			base = ""
		}
		rules = append(rules, readIgnoreFile(path, filepath.ToSlash(base))...)
		return nil
	})
	return rules
}

func readIgnoreFile(path, base string) []ignoreRule {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var rules []ignoreRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if r, ok := parseIgnoreLine(scanner.Text(), base); ok {
			rules = append(rules, r)
		}
	}
	return rules
}

// ignored reports whether rel, or any directory above it, is ignored.
func (rules ignoreRules) ignored(rel string, isDir bool) bool {
	if len(rules) == 0 {
		return false
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if rules.last(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return rules.last(rel, isDir)
}

func (rules ignoreRules) last(rel string, isDir bool) bool {
	ignored := false
	for _, r := range rules {
		if r.matches(rel, isDir) {
			ignored = !r.negate
		}
	}
	return ignored
}

// isSkipped reports whether rel equals or lies under one of the prefixes.
func isSkipped(rel string, prefixes []string) bool {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	for _, p := range prefixes {
		p = strings.TrimSuffix(strings.TrimPrefix(p, "./"), "/")
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// OpenDirectory opens every supported source file under root. Hidden
// directories, vendor, node_modules, .gitignore'd paths and paths under a
// skip prefix are left out. Files are read and parsed concurrently; handles
// come back in walk order.
func (w *Workspace) OpenDirectory(ctx context.Context, root string, skip []string) ([]Handle, error) {
	rules := loadIgnoreRules(root)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules" ||
				rules.ignored(rel, true) || isSkipped(rel, skip) {
				return filepath.SkipDir
			}
			return nil
		}
		if rules.ignored(rel, false) || isSkipped(rel, skip) {
			return nil
		}
		if w.provider.ForFile(path) != nil {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	docs := make([]*document.EditLines, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				log.Warningf("skipping %s: %v", path, err)
				return nil
			}
			docs[i] = document.New(path, string(content), "", w.provider)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, d := range docs {
			if d != nil {
				d.Close()
			}
		}
		return nil, err
	}

	var handles []Handle
	for _, d := range docs {
		if d != nil {
			handles = append(handles, w.add(d))
		}
	}
	return handles, nil
}
