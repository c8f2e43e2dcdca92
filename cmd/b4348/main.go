// Command b4348 is the CLI shim around package index: argument
// parsing, CSV bulk-load reading, and human-readable output — the
// collaborators the on-disk B-tree engine itself never touches.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/indexdb/b4348/btree"
	"github.com/indexdb/b4348/index"
	"github.com/indexdb/b4348/pkg/config"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("b4348", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional YAML config file for CLI preferences")
	noColor := fs.Bool("no-color", false, "disable colorized output")
	logLevel := fs.String("log-level", "", "engine log level: trace, debug, info, warn, error (default: warn)")
	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return 2
	}

	rest := fs.Args()
	if len(rest) < 2 {
		printUsage()
		return 2
	}
	cmd, idxPath, rest := rest[0], rest[1], rest[2:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "b4348: load config: %v\n", err)
		return 1
	}

	level := hclog.Warn
	if *logLevel != "" {
		level = hclog.LevelFromString(*logLevel)
	} else if cfg.LogLevel != "" {
		level = hclog.LevelFromString(cfg.LogLevel)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "b4348",
		Level:  level,
		Output: os.Stderr,
	})

	out := newPrinter(cfg, *noColor)

	if err := dispatch(cmd, idxPath, rest, logger, out); err != nil {
		fmt.Fprintf(os.Stderr, "b4348: %v\n", diagnose(err))
		return 1
	}
	return 0
}

func dispatch(cmd, idxPath string, rest []string, logger hclog.Logger, out *printer) error {
	switch cmd {
	case "create":
		return cmdCreate(idxPath, logger)
	case "insert":
		if len(rest) != 2 {
			return errors.New("usage: b4348 insert <path> <key> <value>")
		}
		return cmdInsert(idxPath, rest[0], rest[1], logger)
	case "search":
		if len(rest) != 1 {
			return errors.New("usage: b4348 search <path> <key>")
		}
		return cmdSearch(idxPath, rest[0], logger, out)
	case "load":
		if len(rest) != 1 {
			return errors.New("usage: b4348 load <path> <csv-file>")
		}
		return cmdLoad(idxPath, rest[0], logger)
	case "print":
		return cmdPrint(idxPath, logger, out)
	case "shell":
		return cmdShell(idxPath, logger, out)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdCreate(idxPath string, logger hclog.Logger) error {
	idx, err := index.Create(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	return idx.Close()
}

func cmdInsert(idxPath, keyStr, valueStr string, logger hclog.Logger) error {
	key, err := parseU64(keyStr)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}
	value, err := parseU64(valueStr)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}

	idx, err := index.Open(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	defer idx.Close()
	return idx.Insert(key, value)
}

func cmdSearch(idxPath, keyStr string, logger hclog.Logger, out *printer) error {
	key, err := parseU64(keyStr)
	if err != nil {
		return fmt.Errorf("key: %w", err)
	}

	idx, err := index.Open(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	defer idx.Close()

	value, err := idx.Search(key)
	if err != nil {
		return err
	}
	out.pair(key, value)
	return nil
}

func cmdLoad(idxPath, csvPath string, logger hclog.Logger) error {
	idx, err := index.Open(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	defer idx.Close()

	src, err := newCSVSource(csvPath)
	if err != nil {
		return err
	}
	defer src.Close()

	return idx.Load(src)
}

func cmdPrint(idxPath string, logger hclog.Logger, out *printer) error {
	idx, err := index.Open(idxPath, index.WithLogger(logger))
	if err != nil {
		return err
	}
	defer idx.Close()

	return idx.Traverse(func(key, value uint64) error {
		out.pair(key, value)
		return nil
	})
}

// diagnose maps an engine/index error to the CLI diagnostic text;
// every error kind in spec §7 gets a distinct message here.
func diagnose(err error) string {
	switch {
	case errors.Is(err, btree.ErrExists):
		return "index already exists"
	case errors.Is(err, btree.ErrMissing):
		return "index file does not exist"
	case errors.Is(err, btree.ErrFormat):
		return fmt.Sprintf("malformed index file: %v", err)
	case errors.Is(err, btree.ErrKeyNotFound):
		return "key not found"
	case errors.Is(err, btree.ErrRange):
		return fmt.Sprintf("value out of range: %v", err)
	case errors.Is(err, btree.ErrShortIO):
		return fmt.Sprintf("I/O error: %v", err)
	default:
		return err.Error()
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: b4348 [-config file] [-no-color] [-log-level level] <command> <path> [args...]

commands:
  create <path>              create a new, empty index file
  insert <path> <key> <val>  insert or update a key/value pair
  search <path> <key>        look up a key
  load <path> <csv-file>     bulk-insert "key,value" lines from a file
  print <path>               print every pair in ascending key order
  shell <path>                interactive session over one open index`)
}
