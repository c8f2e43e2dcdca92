package btree

import "errors"

// Sentinel errors for the error kinds of the on-disk B-tree. Callers
// should use errors.Is against these, not string matching.
var (
	// ErrRange is returned when a key or value falls outside
	// [0, 2^64-1] — which, for a uint64 parameter, only happens for
	// callers coming in through an API that accepts a wider type.
	ErrRange = errors.New("btree: key or value out of range")

	// ErrFormat covers a missing/mismatched magic number, a block of
	// the wrong size handed to a decoder, or a decoded node that fails
	// a structural check. Short reads of the file are ErrShortIO.
	ErrFormat = errors.New("btree: malformed index file")

	// ErrExists is returned by Create when the path already exists.
	ErrExists = errors.New("btree: index file already exists")

	// ErrMissing is returned by Open when the path does not exist.
	ErrMissing = errors.New("btree: index file does not exist")

	// ErrKeyNotFound is returned by Search when the key is absent.
	ErrKeyNotFound = errors.New("btree: key not found")

	// ErrShortIO is returned when a read or write completes with
	// fewer bytes than requested, with no underlying error.
	ErrShortIO = errors.New("btree: short read or write")
)
