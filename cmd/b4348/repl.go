package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/hashicorp/go-hclog"

	"github.com/indexdb/b4348/index"
)

// cmdShell opens idxPath once and runs an interactive session against
// it, so a user exploring an index doesn't pay the open/close cost of
// a full header flush per lookup the way the one-shot commands do.
func cmdShell(idxPath string, logger hclog.Logger, out *printer) error {
	idx, err := index.Open(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	defer idx.Close()

	rl, err := readline.New("b4348> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "b4348 shell — commands: insert <k> <v>, search <k>, print, help, exit")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := runShellLine(idx, line, out); err != nil {
			if err == errShellExit {
				return nil
			}
			fmt.Fprintf(rl.Stderr(), "error: %v\n", err)
		}
	}
}

var errShellExit = errors.New("exit")

func runShellLine(idx *index.Index, line string, out *printer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "exit", "quit":
		return errShellExit
	case "help":
		fmt.Println("insert <k> <v>, search <k>, print, help, exit")
		return nil
	case "insert":
		if len(fields) != 3 {
			return errors.New("usage: insert <k> <v>")
		}
		key, err := parseU64(fields[1])
		if err != nil {
			return err
		}
		value, err := parseU64(fields[2])
		if err != nil {
			return err
		}
		return idx.Insert(key, value)
	case "search":
		if len(fields) != 2 {
			return errors.New("usage: search <k>")
		}
		key, err := parseU64(fields[1])
		if err != nil {
			return err
		}
		value, err := idx.Search(key)
		if err != nil {
			return err
		}
		out.pair(key, value)
		return nil
	case "print":
		return idx.Traverse(func(key, value uint64) error {
			out.pair(key, value)
			return nil
		})
	default:
		return fmt.Errorf("unknown command %q (try 'help')", fields[0])
	}
}
