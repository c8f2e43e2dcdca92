package btree

import (
	"encoding/binary"
	"fmt"
)

// Magic is the 8-byte literal every index file must begin with.
const Magic = "4348PRJ3"

// header is the decoded form of block 0.
type header struct {
	rootID      NodeID
	nextBlockID NodeID
}

func newHeader() header {
	return header{rootID: 0, nextBlockID: 1}
}

func (h header) encode() []byte {
	buf := make([]byte, BlockSize)
	copy(buf[0:8], Magic)
	binary.BigEndian.PutUint64(buf[8:16], h.rootID)
	binary.BigEndian.PutUint64(buf[16:24], h.nextBlockID)
	return buf
}

func decodeHeader(data []byte) (header, error) {
	if len(data) != BlockSize {
		return header{}, fmt.Errorf("btree: decode header: %w (got %d bytes, want %d)", ErrFormat, len(data), BlockSize)
	}
	if string(data[0:8]) != Magic {
		return header{}, fmt.Errorf("btree: decode header: %w (bad magic)", ErrFormat)
	}
	return header{
		rootID:      binary.BigEndian.Uint64(data[8:16]),
		nextBlockID: binary.BigEndian.Uint64(data[16:24]),
	}, nil
}
