package btree

// Sink receives one (key, value) pair at a time during traversal, in
// strictly increasing key order. Returning a non-nil error aborts the
// traversal early and that error is returned from Traverse.
type Sink func(key, value uint64) error

// Traverse delivers every (key, value) pair in the tree to sink, in
// ascending key order.
func (t *Tree) Traverse(sink Sink) error {
	if t.header.rootID == 0 {
		return nil
	}
	return t.traverseNode(t.header.rootID, sink)
}

func (t *Tree) traverseNode(blockID NodeID, sink Sink) error {
	node, err := t.cache.get(blockID)
	if err != nil {
		return err
	}

	leaf := node.IsLeaf()
	count := node.Count()
	for i := 0; i < count; i++ {
		if !leaf && node.Children[i] != 0 {
			if err := t.traverseNode(node.Children[i], sink); err != nil {
				return err
			}
		}
		if err := sink(node.Keys[i], node.Values[i]); err != nil {
			return err
		}
	}
	if !leaf && node.Children[count] != 0 {
		return t.traverseNode(node.Children[count], sink)
	}
	return nil
}

// Source supplies a sequence of (key, value) pairs to Load, e.g. read
// from a delimited text file by an external collaborator. Next
// returns ok=false once exhausted; a non-nil error aborts the load
// without rolling back pairs already inserted — the engine has no
// transaction.
type Source interface {
	Next() (key, value uint64, ok bool, err error)
}

// Load repeatedly calls Insert over the pairs src yields.
func (t *Tree) Load(src Source) error {
	for {
		key, value, ok, err := src.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := t.Insert(key, value); err != nil {
			return err
		}
	}
}
