package lang

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry owns the plugin set for one engine instance. Construction is
// lazy and idempotent: the first lookup builds every plugin exactly once,
// no matter how many goroutines race to get there, and no module-level
// state is involved.
type Registry struct {
	once  sync.Once
	byID  map[string]*Plugin
	byExt map[string]*Plugin

	// knownExts maps extensions of recognized-but-grammarless languages
	// (no Go bindings published) so language detection can still name them.
	knownExts map[string]string
}

// NewRegistry returns an empty registry; plugins are built on first use.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) init() {
	r.once.Do(func() {
		plugins := []*Plugin{
			newPython(),
			newGo(),
			newJavaScript(),
			newTypeScript(),
			newTSX(),
			newRust(),
			newJava(),
			newC(),
			newCpp(),
			newCSharp(),
			newRuby(),
			newPHP(),
			newKotlin(),
			newBash(),
			newLua(),
			newZig(),
			newHTML(),
			newCSS(),
			newYAML(),
			newJSON(),
			newTOML(),
		}
		r.byID = make(map[string]*Plugin, len(plugins))
		r.byExt = make(map[string]*Plugin)
		for _, p := range plugins {
			r.byID[p.ID] = p
			for _, ext := range p.Extensions {
				r.byExt[ext] = p
			}
		}
		// Markdown has no published Go grammar bindings; the extension is
		// recognized so requests fail with a named language rather than a
		// blank one.
		r.knownExts = map[string]string{
			".md":  "markdown",
			".mdx": "markdown",
		}
	})
}

// ByID returns the plugin registered under id.
func (r *Registry) ByID(id string) (*Plugin, bool) {
	r.init()
	p, ok := r.byID[strings.ToLower(id)]
	return p, ok
}

// ByExtension returns the plugin handling a file extension (".py", ".go").
func (r *Registry) ByExtension(ext string) (*Plugin, bool) {
	r.init()
	p, ok := r.byExt[strings.ToLower(ext)]
	return p, ok
}

// DetectLanguage names the language for a path from its extension. The
// second return is false when the extension maps to no known language at
// all; a known language without a registered plugin still returns true.
func (r *Registry) DetectLanguage(path string) (string, bool) {
	r.init()
	ext := strings.ToLower(filepath.Ext(path))
	if p, ok := r.byExt[ext]; ok {
		return p.ID, true
	}
	if id, ok := r.knownExts[ext]; ok {
		return id, true
	}
	return "", false
}

// RecognizedOnly reports whether id names a language the registry knows of
// but has no grammar for.
func (r *Registry) RecognizedOnly(id string) bool {
	r.init()
	id = strings.ToLower(id)
	for _, known := range r.knownExts {
		if known == id {
			return true
		}
	}
	return false
}

// IDs returns all registered language IDs, sorted.
func (r *Registry) IDs() []string {
	r.init()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
