package btree

// Search looks up key and returns its value. If the tree is empty or
// key is absent, it returns ErrKeyNotFound.
func (t *Tree) Search(key uint64) (uint64, error) {
	if t.header.rootID == 0 {
		return 0, ErrKeyNotFound
	}
	return t.searchNode(t.header.rootID, key)
}

func (t *Tree) searchNode(blockID NodeID, key uint64) (uint64, error) {
	node, err := t.cache.get(blockID)
	if err != nil {
		return 0, err
	}

	i := 0
	for i < node.Count() && key > node.Keys[i] {
		i++
	}
	if i < node.Count() && key == node.Keys[i] {
		return node.Values[i], nil
	}
	if node.IsLeaf() {
		return 0, ErrKeyNotFound
	}

	childID := node.Children[i]
	if childID == 0 {
		// A zero-padded slot that should not be reachable on a
		// well-formed tree; treat it the same as not-found rather
		// than panicking on a corrupt file.
		return 0, ErrKeyNotFound
	}
	return t.searchNode(childID, key)
}
