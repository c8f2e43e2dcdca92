package btree

// insertAt returns s with v inserted at position i, shifting
// everything from i onward right by one. i must be in [0, len(s)].
func insertAt(s []uint64, i int, v uint64) []uint64 {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
