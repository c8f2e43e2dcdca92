package btree

import (
	"fmt"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru"
)

// cacheCapacity is the hard cap on resident nodes. The design is
// deliberately tiny: just enough to hold a root, a current internal
// node, and a child at once — the working set of one descend-and-split
// — while still forcing eviction-driven write-back to happen at
// arbitrary points between node accesses.
const cacheCapacity = 3

// pageCache is a bounded, strictly-LRU cache of decoded nodes sitting
// over the backing file. It owns every read and write of node-bearing
// blocks; the engine never touches node bytes directly.
//
// Eviction is delegated to golang-lru: its OnEvicted callback is where
// write-back happens, so capacity enforcement and write-back are one
// atomic step instead of two the engine has to sequence itself.
type pageCache struct {
	file     *os.File
	lru      *lru.Cache
	evictErr error
}

func newPageCache(file *os.File) *pageCache {
	c := &pageCache{file: file}
	l, err := lru.NewWithEvict(cacheCapacity, c.onEvict)
	if err != nil {
		// NewWithEvict only fails for size <= 0, which cacheCapacity
		// never is.
		panic(fmt.Sprintf("btree: page cache: %v", err))
	}
	c.lru = l
	return c
}

// onEvict is golang-lru's eviction hook. It fires synchronously from
// inside Add, before Add returns, which is exactly the write-before-
// making-room ordering the page cache must provide.
func (c *pageCache) onEvict(key, value interface{}) {
	node := value.(*Node)
	if !node.dirty {
		return
	}
	if err := c.writeBlock(node); err != nil {
		// Add()/mark-dirty callers check evictErr after the call that
		// may have triggered this eviction and surface it as their
		// own return value.
		c.evictErr = err
	}
}

// get returns the node for blockID, reading through to the backing
// file and evicting the least-recently-used resident node (writing it
// back first if dirty) when the cache is already full.
func (c *pageCache) get(blockID NodeID) (*Node, error) {
	if v, ok := c.lru.Get(blockID); ok {
		return v.(*Node), nil
	}

	node, err := c.readBlock(blockID)
	if err != nil {
		return nil, err
	}

	c.evictErr = nil
	c.lru.Add(blockID, node)
	if c.evictErr != nil {
		err, c.evictErr = c.evictErr, nil
		return nil, err
	}

	return node, nil
}

// markDirty flags node as needing write-back, inserts it if it is not
// already resident (the path a freshly allocated node takes), and
// promotes it to most-recently-used.
func (c *pageCache) markDirty(node *Node) error {
	node.dirty = true

	c.evictErr = nil
	c.lru.Add(node.BlockID, node)
	if c.evictErr != nil {
		err, c.evictErr = c.evictErr, nil
		return err
	}
	return nil
}

// flushAll writes every dirty resident node back to its block, then
// drops all residents from the cache.
func (c *pageCache) flushAll() error {
	for _, key := range c.lru.Keys() {
		v, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		node := v.(*Node)
		if node.dirty {
			if err := c.writeBlock(node); err != nil {
				return err
			}
		}
	}
	c.lru.Purge()
	return nil
}

func (c *pageCache) readBlock(blockID NodeID) (*Node, error) {
	data := make([]byte, BlockSize)
	n, err := c.file.ReadAt(data, int64(blockID)*BlockSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("btree: read block %d: %w", blockID, err)
	}
	if n != BlockSize {
		return nil, fmt.Errorf("btree: read block %d: %w (got %d bytes)", blockID, ErrShortIO, n)
	}
	return decodeNode(blockID, data)
}

func (c *pageCache) writeBlock(node *Node) error {
	data := node.encode()
	n, err := c.file.WriteAt(data, int64(node.BlockID)*BlockSize)
	if err != nil {
		return fmt.Errorf("btree: write block %d: %w", node.BlockID, err)
	}
	if n != len(data) {
		return fmt.Errorf("btree: write block %d: %w (wrote %d of %d bytes)", node.BlockID, ErrShortIO, n, len(data))
	}
	node.dirty = false
	return nil
}
