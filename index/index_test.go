package index

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/indexdb/b4348/btree"
)

func TestIndexClosedGuard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.db")
	idx, err := Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := idx.Insert(1, 2); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := idx.Close(); !errors.Is(err, ErrClosed) {
		t.Fatalf("double close = %v; want ErrClosed", err)
	}
	if _, err := idx.Search(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("search after close = %v; want ErrClosed", err)
	}
	if err := idx.Insert(2, 3); !errors.Is(err, ErrClosed) {
		t.Fatalf("insert after close = %v; want ErrClosed", err)
	}
}

type pairSource struct {
	pairs [][2]uint64
	i     int
}

func (s *pairSource) Next() (uint64, uint64, bool, error) {
	if s.i >= len(s.pairs) {
		return 0, 0, false, nil
	}
	p := s.pairs[s.i]
	s.i++
	return p[0], p[1], true, nil
}

func TestIndexRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx.db")
	idx, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}

	src := &pairSource{pairs: [][2]uint64{{3, 30}, {1, 10}, {2, 20}}}
	if err := idx.Load(src); err != nil {
		t.Fatal(err)
	}

	var got []uint64
	err = idx.Traverse(func(k, v uint64) error {
		got = append(got, k)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("traverse order = %v", got)
	}
	if err := idx.Close(); err != nil {
		t.Fatal(err)
	}

	idx, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()
	v, err := idx.Search(2)
	if err != nil || v != 20 {
		t.Fatalf("search(2) = %d, %v", v, err)
	}
	if _, err := idx.Search(99); !errors.Is(err, btree.ErrKeyNotFound) {
		t.Fatalf("search(99) = %v; want ErrKeyNotFound", err)
	}
}
