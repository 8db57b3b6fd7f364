// Package parser wraps tree-sitter parsing and the cross-request parse-tree
// cache.
package parser

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/treescope/internal/lang"
	"github.com/mvp-joe/treescope/internal/loader"
)

// ErrParse is returned when the grammar rejects the input outright.
var ErrParse = errors.New("parser rejected input")

// Tree is one parsed source file. It may be shared read-only between the
// extractor and the query service, and across requests via the cache. Trees
// are reference counted: Parse hands the caller one reference, the cache
// holds its own, and the underlying tree-sitter tree is freed only when the
// last holder calls Close.
type Tree struct {
	tree   *sitter.Tree
	Source *loader.SourceUnit

	mu   sync.Mutex
	refs int
}

// Root returns the root node, or nil once the tree has been freed.
func (t *Tree) Root() *sitter.Node {
	if t.tree == nil {
		return nil
	}
	return t.tree.RootNode()
}

// retain adds a holder. It fails when the tree was already freed, which a
// cache reader can hit if eviction lands between lookup and retain.
func (t *Tree) retain() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tree == nil {
		return false
	}
	t.refs++
	return true
}

// Close drops one holder and frees the underlying tree-sitter tree when the
// last one lets go. Further calls are no-ops.
func (t *Tree) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.refs > 0 {
		t.refs--
	}
	if t.refs == 0 && t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// Parser builds concrete syntax trees using a plugin's grammar.
type Parser struct{}

// New returns a Parser.
func New() *Parser { return &Parser{} }

// Parse parses the source unit with the plugin's grammar. The input is
// never mutated: tree-sitter works on a defensive copy of the text.
func (p *Parser) Parse(ctx context.Context, pl *lang.Plugin, src *loader.SourceUnit) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(pl.Language())

	// The tree-sitter C library reads the buffer via CGO; copy so the
	// SourceUnit text stays immutable.
	buf := make([]byte, len(src.Text))
	copy(buf, src.Text)

	tree := sp.Parse(buf, nil)
	if tree == nil {
		return nil, fmt.Errorf("%w: %s (%s)", ErrParse, src.Path, pl.ID)
	}
	return &Tree{tree: tree, Source: src, refs: 1}, nil
}
