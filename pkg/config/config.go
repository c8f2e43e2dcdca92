// Package config loads optional CLI preferences for the b4348 shim.
// It has no bearing on the index file format or engine behavior —
// everything here is display/ergonomics for the command-line tool.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds CLI preferences loaded from YAML.
type Config struct {
	// Color controls whether search/print/shell output is colorized.
	// Defaults to auto-detecting a terminal when unset.
	Color *bool `yaml:"color"`

	// Prompt is parsed from the YAML file but not used: the shell
	// subcommand always prompts with "b4348> ".
	Prompt string `yaml:"prompt"`

	// LogLevel is parsed by github.com/hashicorp/go-hclog
	// (e.g. "debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// Load reads a YAML config file from path. If path is empty or the
// file does not exist, it returns a zero-value Config and no error —
// the CLI falls back to built-in defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close config file %q: %v\n", path, closeErr)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
