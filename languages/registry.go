package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// Registry maps file extensions and names to languages
type Registry struct {
	byExt  map[string]Language
	byName map[string]Language
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byExt:  make(map[string]Language),
		byName: make(map[string]Language),
	}
}

var registry = NewRegistry()

// Default returns the registry populated by the language packages' init functions.
func Default() *Registry {
	return registry
}

// Register adds a language to the default registry
func Register(lang Language) {
	registry.Register(lang)
}

// Register adds a language under its name and each of its extensions
func (r *Registry) Register(lang Language) {
	for _, ext := range lang.Extensions() {
		r.byExt[strings.ToLower(ext)] = lang
	}
	r.byName[lang.Name()] = lang
}

// ForFile returns the Language for a file based on its extension.
// Returns nil if the file type is not supported.
func (r *Registry) ForFile(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	return r.byExt[ext]
}

// ByName returns the Language registered under name, or nil.
func (r *Registry) ByName(name string) Language {
	return r.byName[name]
}

// SupportedExtensions returns all registered file extensions
func (r *Registry) SupportedExtensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Names returns the names of all registered languages
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetLanguageForFile looks up path in the default registry.
func GetLanguageForFile(path string) Language {
	return registry.ForFile(path)
}
