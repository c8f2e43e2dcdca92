package btree

import (
	"bytes"
	"testing"
)

func TestNodeEncodeDecodeRoundTrip(t *testing.T) {
	n := &Node{
		BlockID:  3,
		ParentID: 1,
		Keys:     []uint64{10, 20, 30},
		Values:   []uint64{100, 200, 300},
		Children: []NodeID{5, 6, 7, 8},
	}

	data := n.encode()
	if len(data) != BlockSize {
		t.Fatalf("encode: got %d bytes, want %d", len(data), BlockSize)
	}

	got, err := decodeNode(3, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.BlockID != n.BlockID || got.ParentID != n.ParentID {
		t.Fatalf("decode: id mismatch: got %+v", got)
	}
	if !equalUint64(got.Keys, n.Keys) || !equalUint64(got.Values, n.Values) {
		t.Fatalf("decode: keys/values mismatch: got %+v", got)
	}
	if !equalUint64(got.Children, n.Children) {
		t.Fatalf("decode: children mismatch: got %+v", got)
	}

	// Re-encoding the decoded node must reproduce the exact same bytes,
	// including the zero-padding of unused slots.
	again := got.encode()
	if !bytes.Equal(again, data) {
		t.Fatalf("encode(decode(bytes)) != bytes")
	}
}

func TestNodeEncodePadsUnusedSlots(t *testing.T) {
	n := &Node{BlockID: 1, Keys: []uint64{7}, Values: []uint64{70}, Children: []NodeID{0, 0}}
	data := n.encode()

	// Every key slot past the first (indexes 1..MaxKeys-1) must be zero.
	for i := 1; i < MaxKeys; i++ {
		off := keysOffset + i*8
		for _, b := range data[off : off+8] {
			if b != 0 {
				t.Fatalf("key slot %d not zero-padded", i)
			}
		}
	}
}

func TestNodeIsLeaf(t *testing.T) {
	leaf := &Node{Children: []NodeID{0, 0}}
	if !leaf.IsLeaf() {
		t.Fatal("expected leaf")
	}
	internal := &Node{Children: []NodeID{0, 5}}
	if internal.IsLeaf() {
		t.Fatal("expected non-leaf")
	}
}

func TestDecodeRejectsWrongSize(t *testing.T) {
	if _, err := decodeNode(1, make([]byte, BlockSize-1)); err == nil {
		t.Fatal("expected error for short block")
	}
}

func equalUint64(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
