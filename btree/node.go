package btree

import (
	"encoding/binary"
	"fmt"
)

const (
	// BlockSize is the size of a block in bytes. Every block in the
	// backing file — header and nodes alike — is exactly this size.
	BlockSize = 512

	// T is the minimum degree of the tree. A node holds at most
	// 2T-1 keys and at most 2T children.
	T = 10

	// MaxKeys is the maximum number of keys a node may carry.
	MaxKeys = 2*T - 1

	// MaxChildren is the maximum number of children a node may carry.
	MaxChildren = 2 * T

	// MinKeys is the minimum number of keys a non-root node may carry.
	MinKeys = T - 1

	nodeHeaderSize = 24 // own id + parent id + count, 8 bytes each
	keysOffset     = nodeHeaderSize
	valuesOffset   = keysOffset + MaxKeys*8
	childrenOffset = valuesOffset + MaxKeys*8
	encodedSize    = childrenOffset + MaxChildren*8 // 488, rest is reserved padding
)

// NodeID identifies a block holding a node. 0 is reserved for "no
// block" (the header occupies block 0, so it can never be a node).
type NodeID = uint64

// Node is the in-memory form of a B-tree node. Key/value vectors are
// always the same length. Decode yields a child vector of len(keys)+1
// for every node, leaf or internal, and internal nodes keep that
// length; leaves carry all-zero child slots rather than a nil slice,
// but inserting into or splitting a leaf does not resize its child
// vector, so a leaf's length may differ from len(keys)+1 until it is
// next decoded.
type Node struct {
	BlockID  NodeID
	ParentID NodeID
	Keys     []uint64
	Values   []uint64
	Children []NodeID

	dirty bool
}

// IsLeaf reports whether n has no non-zero child id.
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of keys currently held by n.
func (n *Node) Count() int {
	return len(n.Keys)
}

// encode serializes n into a fresh BlockSize-byte block. It panics on
// oversized vectors — that is a programmer error, never a user one;
// the engine never constructs a node beyond MaxKeys/MaxChildren.
func (n *Node) encode() []byte {
	if len(n.Keys) != len(n.Values) {
		panic(fmt.Sprintf("btree: node %d has %d keys but %d values", n.BlockID, len(n.Keys), len(n.Values)))
	}
	if len(n.Keys) > MaxKeys {
		panic(fmt.Sprintf("btree: node %d has %d keys, max is %d", n.BlockID, len(n.Keys), MaxKeys))
	}
	if len(n.Children) > MaxChildren {
		panic(fmt.Sprintf("btree: node %d has %d children, max is %d", n.BlockID, len(n.Children), MaxChildren))
	}

	buf := make([]byte, BlockSize)
	binary.BigEndian.PutUint64(buf[0:8], n.BlockID)
	binary.BigEndian.PutUint64(buf[8:16], n.ParentID)
	binary.BigEndian.PutUint64(buf[16:24], uint64(len(n.Keys)))

	for i, k := range n.Keys {
		binary.BigEndian.PutUint64(buf[keysOffset+i*8:], k)
	}
	for i, v := range n.Values {
		binary.BigEndian.PutUint64(buf[valuesOffset+i*8:], v)
	}
	for i, c := range n.Children {
		binary.BigEndian.PutUint64(buf[childrenOffset+i*8:], c)
	}
	// Remaining key/value/child slots and the trailing reserved region
	// are already zero from make([]byte, BlockSize).

	return buf
}

// decodeNode parses a BlockSize-byte block into a Node. blockID is the
// position the block was read from; it is recorded on the returned
// node as-is. The codec does not cross-check it against the encoded
// own-id field — that is the cache's job, if it wants it.
func decodeNode(blockID NodeID, data []byte) (*Node, error) {
	if len(data) != BlockSize {
		return nil, fmt.Errorf("btree: decode block %d: %w (got %d bytes, want %d)", blockID, ErrFormat, len(data), BlockSize)
	}

	parentID := binary.BigEndian.Uint64(data[8:16])
	count := binary.BigEndian.Uint64(data[16:24])
	if count > MaxKeys {
		return nil, fmt.Errorf("btree: decode block %d: %w (key count %d exceeds %d)", blockID, ErrFormat, count, MaxKeys)
	}

	keys := make([]uint64, count)
	for i := range keys {
		keys[i] = binary.BigEndian.Uint64(data[keysOffset+i*8:])
	}
	values := make([]uint64, count)
	for i := range values {
		values[i] = binary.BigEndian.Uint64(data[valuesOffset+i*8:])
	}
	children := make([]NodeID, count+1)
	for i := range children {
		children[i] = binary.BigEndian.Uint64(data[childrenOffset+i*8:])
	}

	return &Node{
		BlockID:  blockID,
		ParentID: parentID,
		Keys:     keys,
		Values:   values,
		Children: children,
		dirty:    false,
	}, nil
}
