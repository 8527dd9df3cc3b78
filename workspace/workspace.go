// Package workspace owns the open documents and serializes access to each.
//
// Every document has its own lock: edits take it exclusively, queries share
// it. Operations on different documents never wait on each other.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/roveo/topo-context/chunking"
	"github.com/roveo/topo-context/document"
	"github.com/roveo/topo-context/languages"
	"github.com/tliron/commonlog"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var log = commonlog.GetLogger("topo.workspace")

// ErrUnknownHandle is returned for handles that were never opened or are closed.
var ErrUnknownHandle = errors.New("unknown document handle")

// DefaultCacheSize is the number of similar-snippet results kept in memory.
const DefaultCacheSize = 256

// Handle identifies an open document
type Handle string

// Options configures a Workspace
type Options struct {
	// Provider resolves languages; languages.Default() when nil.
	Provider languages.Provider
	// CacheSize bounds the similar-snippet cache; DefaultCacheSize when <= 0.
	CacheSize int
}

type entry struct {
	mu     sync.RWMutex
	doc    *document.EditLines
	closed bool
}

type cacheKey struct {
	handle  Handle
	version int
	query   string
}

// Workspace is the set of open documents.
type Workspace struct {
	mu       sync.RWMutex
	docs     *orderedmap.OrderedMap[Handle, *entry]
	provider languages.Provider
	similar  *lru.Cache[cacheKey, []document.SnippetInformation]
}

// New creates an empty workspace
func New(opts Options) (*Workspace, error) {
	if opts.Provider == nil {
		opts.Provider = languages.Default()
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, []document.SnippetInformation](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create similar-snippet cache: %w", err)
	}
	return &Workspace{
		docs:     orderedmap.New[Handle, *entry](),
		provider: opts.Provider,
		similar:  cache,
	}, nil
}

// Open creates a document for content and returns its handle. An unknown
// language is not an error; structural queries on it return nothing.
func (w *Workspace) Open(path, content, language string) Handle {
	return w.add(document.New(path, content, language, w.provider))
}

// OpenFile reads path from disk and opens it.
func (w *Workspace) OpenFile(path, language string) (Handle, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return w.Open(path, string(content), language), nil
}

func (w *Workspace) add(doc *document.EditLines) Handle {
	h := Handle(uuid.NewString())
	w.mu.Lock()
	w.docs.Set(h, &entry{doc: doc})
	w.mu.Unlock()
	log.Infof("opened %s as %s (%s, %d lines)", doc.FilePath(), h, doc.Language(), doc.LineCount())
	return h
}

// Handles returns the open handles in the order they were opened
func (w *Workspace) Handles() []Handle {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Handle, 0, w.docs.Len())
	for pair := w.docs.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func (w *Workspace) lookup(h Handle) (*entry, error) {
	w.mu.RLock()
	e, ok := w.docs.Get(h)
	w.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return e, nil
}

// read runs fn while holding the document's shared lock.
func (w *Workspace) read(h Handle, fn func(*document.EditLines) error) error {
	e, err := w.lookup(h)
	if err != nil {
		return err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return fn(e.doc)
}

// write runs fn while holding the document's exclusive lock.
func (w *Workspace) write(h Handle, fn func(*document.EditLines) error) error {
	e, err := w.lookup(h)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return fn(e.doc)
}

// Close drops the document and frees its syntax tree.
func (w *Workspace) Close(h Handle) error {
	w.mu.Lock()
	e, ok := w.docs.Delete(h)
	w.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}

	e.mu.Lock()
	e.closed = true
	e.doc.Close()
	e.mu.Unlock()

	for _, key := range w.similar.Keys() {
		if key.handle == h {
			w.similar.Remove(key)
		}
	}
	log.Infof("closed %s", h)
	return nil
}

// Info describes an open document
type Info struct {
	Handle   Handle `json:"handle"`
	Path     string `json:"path"`
	Language string `json:"language"`
	Version  int    `json:"version"`
	Lines    int    `json:"lines"`
}

// Info returns the document's metadata
func (w *Workspace) Info(h Handle) (Info, error) {
	var info Info
	err := w.read(h, func(d *document.EditLines) error {
		info = Info{
			Handle:   h,
			Path:     d.FilePath(),
			Language: d.Language(),
			Version:  d.Version(),
			Lines:    d.LineCount(),
		}
		return nil
	})
	return info, err
}

// EditResult is the document text around an applied edit
type EditResult struct {
	Before  string
	After   string
	Version int
}

// ApplyEdit replaces r with text. A rejected edit leaves the document as it was.
func (w *Workspace) ApplyEdit(h Handle, r languages.Range, text string) (EditResult, error) {
	var res EditResult
	err := w.write(h, func(d *document.EditLines) error {
		res.Before = d.Content()
		if err := d.ContentChange(r, text); err != nil {
			return err
		}
		res.After = d.Content()
		res.Version = d.Version()
		return nil
	})
	if err != nil {
		log.Debugf("edit %s on %s rejected: %v", r, h, err)
	}
	return res, err
}

// Read returns the current text of the document
func (w *Workspace) Read(h Handle) (string, error) {
	var content string
	err := w.read(h, func(d *document.EditLines) error {
		content = d.Content()
		return nil
	})
	return content, err
}

// ExtractFunctions returns the document's folded, documented functions
func (w *Workspace) ExtractFunctions(h Handle) ([]chunking.FunctionInformation, error) {
	var out []chunking.FunctionInformation
	err := w.read(h, func(d *document.EditLines) error {
		out = d.Functions()
		return nil
	})
	return out, err
}

// ExtractClasses returns the document's folded, documented classes
func (w *Workspace) ExtractClasses(h Handle) ([]chunking.ClassInformation, error) {
	var out []chunking.ClassInformation
	err := w.read(h, func(d *document.EditLines) error {
		out = d.Classes()
		return nil
	})
	return out, err
}

// ExtractTypes returns the document's folded, documented type declarations
func (w *Workspace) ExtractTypes(h Handle) ([]chunking.TypeInformation, error) {
	var out []chunking.TypeInformation
	err := w.read(h, func(d *document.EditLines) error {
		out = d.Types()
		return nil
	})
	return out, err
}

// FindEnclosingFunction returns the function containing the byte offset.
func (w *Workspace) FindEnclosingFunction(h Handle, offset int) (chunking.FunctionInformation, bool, error) {
	var (
		fn    chunking.FunctionInformation
		found bool
	)
	err := w.read(h, func(d *document.EditLines) error {
		fn, found = d.FindEnclosingFunction(offset)
		return nil
	})
	return fn, found, err
}

// ExpandSelection widens r to the functions its ends fall into
func (w *Workspace) ExpandSelection(h Handle, r languages.Range) (languages.Range, error) {
	var out languages.Range
	err := w.read(h, func(d *document.EditLines) error {
		var err error
		out, err = d.ExpandSelection(r)
		return err
	})
	return out, err
}

// Outline returns the rendered class outlines of the document
func (w *Workspace) Outline(h Handle) ([]string, error) {
	var out []string
	err := w.read(h, func(d *document.EditLines) error {
		out = d.Outline()
		return nil
	})
	return out, err
}

// SimilarSnippets returns at most ten windows of the document similar to
// query. Results are cached per document version.
func (w *Workspace) SimilarSnippets(h Handle, query string) ([]document.SnippetInformation, error) {
	var out []document.SnippetInformation
	err := w.read(h, func(d *document.EditLines) error {
		key := cacheKey{handle: h, version: d.Version(), query: query}
		if cached, ok := w.similar.Get(key); ok {
			out = document.CloneSnippets(cached)
			return nil
		}
		out = d.SimilarSnippets(query)
		w.similar.Add(key, document.CloneSnippets(out))
		return nil
	})
	return out, err
}

// Match is a similar snippet found in one of the open documents
type Match struct {
	Handle  Handle                      `json:"handle"`
	Path    string                      `json:"path"`
	Snippet document.SnippetInformation `json:"snippet"`
}

// SimilarAcross queries every open document. Each document contributes at
// most ten snippets, and overlapping snippets of a document are coalesced.
func (w *Workspace) SimilarAcross(query string) ([]Match, error) {
	var out []Match
	for _, h := range w.Handles() {
		snippets, err := w.SimilarSnippets(h, query)
		if errors.Is(err, ErrUnknownHandle) {
			continue // closed concurrently
		}
		if err != nil {
			return nil, err
		}
		info, err := w.Info(h)
		if err != nil {
			continue
		}
		for _, s := range document.CoalesceSnippets(snippets) {
			out = append(out, Match{Handle: h, Path: info.Path, Snippet: s})
		}
	}
	return out, nil
}
