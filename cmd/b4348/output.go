package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/indexdb/b4348/pkg/config"
)

// printer formats (key, value) pairs for search/print/shell output.
// Colorization is skipped when stdout is not a terminal, mirroring how
// most CLIs in the pack gate color output on isatty rather than always
// emitting escape codes.
type printer struct {
	key   *color.Color
	value *color.Color
	w     *os.File
}

func newPrinter(cfg config.Config, noColorFlag bool) *printer {
	enabled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if cfg.Color != nil {
		enabled = *cfg.Color
	}
	if noColorFlag {
		enabled = false
	}

	key := color.New(color.FgCyan, color.Bold)
	value := color.New(color.FgGreen)
	if !enabled {
		key.DisableColor()
		value.DisableColor()
	}

	return &printer{
		key:   key,
		value: value,
		w:     os.Stdout,
	}
}

// pair writes one "key value" line, colorizing each field separately.
func (p *printer) pair(key, value uint64) {
	w := colorable.NewColorable(p.w)
	p.key.Fprintf(w, "%d", key)
	fmt.Fprint(w, " ")
	p.value.Fprintf(w, "%d", value)
	fmt.Fprintln(w)
}
