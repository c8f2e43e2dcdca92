package main

import (
	"fmt"
	"strconv"

	"github.com/indexdb/b4348/btree"
)

// parseU64 parses s as a decimal unsigned 64-bit integer. A value that
// over/underflows (including the classic off-by-one "2^64" boundary
// case) is reported as a range error, the same kind Insert itself
// would raise if it could see past the type system.
func parseU64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, btree.ErrRange)
	}
	return v, nil
}
