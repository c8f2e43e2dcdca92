package btree

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestFile(t *testing.T) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.dat")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func putBlock(t *testing.T, f *os.File, id NodeID, keys ...uint64) *Node {
	t.Helper()
	n := &Node{BlockID: id, Keys: keys, Values: keys, Children: make([]NodeID, len(keys)+1)}
	data := n.encode()
	if _, err := f.WriteAt(data, int64(id)*BlockSize); err != nil {
		t.Fatalf("seed block %d: %v", id, err)
	}
	return n
}

func TestCacheReadThroughAndPromote(t *testing.T) {
	f := openTestFile(t)
	for id := NodeID(1); id <= 3; id++ {
		putBlock(t, f, id, id*10)
	}

	c := newPageCache(f)
	for id := NodeID(1); id <= 3; id++ {
		n, err := c.get(id)
		if err != nil {
			t.Fatalf("get %d: %v", id, err)
		}
		if n.BlockID != id {
			t.Fatalf("get %d: got block %d", id, n.BlockID)
		}
	}
	if c.lru.Len() != cacheCapacity {
		t.Fatalf("expected %d resident, got %d", cacheCapacity, c.lru.Len())
	}

	// A hit on block 1 must promote it to most-recently-used.
	if _, err := c.get(1); err != nil {
		t.Fatalf("get 1 again: %v", err)
	}
	keys := c.lru.Keys()
	if keys[len(keys)-1] != NodeID(1) {
		t.Fatalf("block 1 not promoted to most-recently-used: order %v", keys)
	}
}

func TestCacheEvictsLRUAndWritesBackDirty(t *testing.T) {
	f := openTestFile(t)
	for id := NodeID(1); id <= 4; id++ {
		putBlock(t, f, id, id*10)
	}

	c := newPageCache(f)

	// Load 1, 2, 3 — cache now full.
	n1, err := c.get(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(3); err != nil {
		t.Fatal(err)
	}

	// Dirty node 1, then touch 2 and 3 so 1 becomes the LRU entry.
	n1.Keys = []uint64{999}
	n1.Values = []uint64{999}
	if err := c.markDirty(n1); err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(2); err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(3); err != nil {
		t.Fatal(err)
	}

	// Loading block 4 must evict 1 (now LRU) and write it back first.
	if _, err := c.get(4); err != nil {
		t.Fatal(err)
	}

	raw := make([]byte, BlockSize)
	if _, err := f.ReadAt(raw, int64(1)*BlockSize); err != nil {
		t.Fatalf("read back block 1: %v", err)
	}
	got, err := decodeNode(1, raw)
	if err != nil {
		t.Fatalf("decode block 1: %v", err)
	}
	if len(got.Keys) != 1 || got.Keys[0] != 999 {
		t.Fatalf("evicted block 1 was not written back with the dirty content: %+v", got)
	}

	if c.lru.Len() != cacheCapacity {
		t.Fatalf("expected %d resident after eviction, got %d", cacheCapacity, c.lru.Len())
	}
	if _, ok := c.lru.Peek(NodeID(1)); ok {
		t.Fatal("block 1 should have been evicted")
	}
}

func TestCacheFlushAllWritesAndClears(t *testing.T) {
	f := openTestFile(t)
	c := newPageCache(f)

	n := &Node{BlockID: 1, Keys: []uint64{1}, Values: []uint64{2}, Children: []NodeID{0, 0}}
	if err := c.markDirty(n); err != nil {
		t.Fatal(err)
	}

	if err := c.flushAll(); err != nil {
		t.Fatalf("flushAll: %v", err)
	}
	if c.lru.Len() != 0 {
		t.Fatalf("expected empty cache after flushAll, got %d", c.lru.Len())
	}

	raw := make([]byte, BlockSize)
	if _, err := f.ReadAt(raw, BlockSize); err != nil {
		t.Fatalf("read back block 1: %v", err)
	}
	got, err := decodeNode(1, raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Keys) != 1 || got.Keys[0] != 1 {
		t.Fatalf("flushAll did not persist dirty node: %+v", got)
	}
}
