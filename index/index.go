// Package index is the external-facing wrapper around btree.Tree: it
// adds the closed-after-Close guard and the single-writer mutex the
// engine itself does not bother with, the same shape conuredb's db
// package puts around its btree.BTree.
package index

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/indexdb/b4348/btree"
)

// ErrClosed is returned by any operation on an Index after Close.
var ErrClosed = errors.New("index: already closed")

// Index is a single-writer handle on one on-disk B-tree index file.
type Index struct {
	mu       sync.Mutex
	tree     *btree.Tree
	path     string
	isClosed bool
}

// Option configures an Index at Create/Open time.
type Option func(*btree.Tree)

// WithLogger attaches a logger to the underlying engine.
func WithLogger(l hclog.Logger) Option {
	return Option(btree.WithLogger(l))
}

// Create makes a fresh index file at path. It fails if path already
// exists.
func Create(path string, opts ...Option) (*Index, error) {
	tree, err := btree.Create(path, toTreeOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &Index{tree: tree, path: path}, nil
}

// Open opens an existing index file at path.
func Open(path string, opts ...Option) (*Index, error) {
	tree, err := btree.Open(path, toTreeOpts(opts)...)
	if err != nil {
		return nil, err
	}
	return &Index{tree: tree, path: path}, nil
}

func toTreeOpts(opts []Option) []btree.Option {
	out := make([]btree.Option, len(opts))
	for i, o := range opts {
		out[i] = btree.Option(o)
	}
	return out
}

// Path returns the backing file path.
func (idx *Index) Path() string {
	return idx.path
}

// Close flushes and closes the backing file. It is an error to call
// any other method afterward.
func (idx *Index) Close() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isClosed {
		return ErrClosed
	}
	idx.isClosed = true
	return idx.tree.Close()
}

// Insert adds key/value, or updates the value of an existing key.
func (idx *Index) Insert(key, value uint64) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isClosed {
		return ErrClosed
	}
	return idx.tree.Insert(key, value)
}

// Search looks up key, returning btree.ErrKeyNotFound if absent.
func (idx *Index) Search(key uint64) (uint64, error) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isClosed {
		return 0, ErrClosed
	}
	return idx.tree.Search(key)
}

// Load repeatedly inserts the pairs src yields.
func (idx *Index) Load(src btree.Source) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isClosed {
		return ErrClosed
	}
	return idx.tree.Load(src)
}

// Traverse delivers every (key, value) pair to sink in ascending key
// order.
func (idx *Index) Traverse(sink btree.Sink) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.isClosed {
		return ErrClosed
	}
	return idx.tree.Traverse(sink)
}
