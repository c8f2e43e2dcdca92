package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/indexdb/b4348/btree"
)

// csvSource implements btree.Source over a "key,value" per line text
// file — the delimited key/value list spec.md scopes out of the core
// and hands to the caller as a plain (key, value) sequence.
type csvSource struct {
	f       *os.File
	scanner *bufio.Scanner
	line    int
}

func newCSVSource(path string) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &csvSource{f: f, scanner: bufio.NewScanner(f)}, nil
}

func (s *csvSource) Close() error {
	return s.f.Close()
}

// Next returns the next (key, value) pair, skipping blank lines. A
// line that is not exactly "key,value" aborts the load with a format
// error, matching the original's "Bad CSV row" behavior.
func (s *csvSource) Next() (key, value uint64, ok bool, err error) {
	for s.scanner.Scan() {
		s.line++
		row := strings.TrimSpace(s.scanner.Text())
		if row == "" {
			continue
		}
		fields := strings.Split(row, ",")
		if len(fields) != 2 {
			return 0, 0, false, fmt.Errorf("line %d: expected \"key,value\", got %q: %w", s.line, row, btree.ErrFormat)
		}
		key, err = parseU64(strings.TrimSpace(fields[0]))
		if err != nil {
			return 0, 0, false, fmt.Errorf("line %d: %w", s.line, err)
		}
		value, err = parseU64(strings.TrimSpace(fields[1]))
		if err != nil {
			return 0, 0, false, fmt.Errorf("line %d: %w", s.line, err)
		}
		return key, value, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return 0, 0, false, err
	}
	return 0, 0, false, nil
}
