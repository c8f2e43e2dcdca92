// Package btree implements the disk-resident B-tree index: the
// 512-byte block format, the minimum-degree-10 split/insert algorithm
// with parent back-pointers, and the bounded three-node page cache
// that mediates every read and write of the backing file.
package btree

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/indexdb/b4348/internal/filelock"
)

// Tree owns the backing file, the header fields, and the page cache.
// It is not safe for concurrent use by multiple goroutines — the
// design is single-writer, no locking beyond the advisory file lock
// taken for the process as a whole.
type Tree struct {
	file   *os.File
	header header
	cache  *pageCache
	log    hclog.Logger
}

// Option configures a Tree at Create/Open time.
type Option func(*Tree)

// WithLogger overrides the default discard logger.
func WithLogger(l hclog.Logger) Option {
	return func(t *Tree) { t.log = l }
}

// Create makes a fresh index file at path. It fails if path already
// exists.
func Create(path string, opts ...Option) (*Tree, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("btree: create %s: %w", path, ErrExists)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("btree: create %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("btree: create %s: %w", path, err)
	}
	if err := filelock.Lock(f); err != nil {
		f.Close()
		return nil, err
	}

	t := newTree(f, opts...)
	t.header = newHeader()
	if err := t.writeHeader(); err != nil {
		f.Close()
		return nil, err
	}
	t.log.Debug("created index", "path", path)
	return t, nil
}

// Open opens an existing index file at path. It fails if the path is
// missing or the file does not start with the magic.
func Open(path string, opts ...Option) (*Tree, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("btree: open %s: %w", path, ErrMissing)
	} else if err != nil {
		return nil, fmt.Errorf("btree: open %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("btree: open %s: %w", path, err)
	}
	if err := filelock.Lock(f); err != nil {
		f.Close()
		return nil, err
	}

	t := newTree(f, opts...)
	if err := t.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	t.log.Debug("opened index", "path", path, "root_id", t.header.rootID, "next_block_id", t.header.nextBlockID)
	return t, nil
}

func newTree(f *os.File, opts ...Option) *Tree {
	t := &Tree{
		file: f,
		log:  hclog.NewNullLogger(),
	}
	t.cache = newPageCache(f)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tree) readHeader() error {
	data := make([]byte, BlockSize)
	n, err := t.file.ReadAt(data, 0)
	if err != nil {
		return fmt.Errorf("btree: read header: %w", err)
	}
	if n != BlockSize {
		return fmt.Errorf("btree: read header: %w (got %d bytes)", ErrShortIO, n)
	}
	h, err := decodeHeader(data)
	if err != nil {
		return err
	}
	t.header = h
	return nil
}

func (t *Tree) writeHeader() error {
	data := t.header.encode()
	n, err := t.file.WriteAt(data, 0)
	if err != nil {
		return fmt.Errorf("btree: write header: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("btree: write header: %w (wrote %d of %d bytes)", ErrShortIO, n, len(data))
	}
	return nil
}

// Close flushes the cache, rewrites the header, releases the file
// lock, and closes the file. It always attempts every step, returning
// the first error encountered, so a caller retains as much durability
// as the underlying I/O allows even on a failure path.
func (t *Tree) Close() error {
	flushErr := t.cache.flushAll()
	headerErr := t.writeHeader()
	unlockErr := filelock.Unlock(t.file)
	closeErr := t.file.Close()

	for _, err := range []error{flushErr, headerErr, unlockErr, closeErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

// allocateNode reserves the next block id, builds an empty leaf node
// (one zero child slot) there, marks it dirty, and returns it.
func (t *Tree) allocateNode(parentID NodeID) (*Node, error) {
	node := &Node{
		BlockID:  t.header.nextBlockID,
		ParentID: parentID,
		Keys:     nil,
		Values:   nil,
		Children: []NodeID{0},
	}
	t.header.nextBlockID++
	if err := t.cache.markDirty(node); err != nil {
		return nil, err
	}
	return node, nil
}
