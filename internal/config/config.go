// Package config loads largenum.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// FileName is the name searched for when no explicit path is given.
const FileName = "largenum.toml"

// Config mirrors largenum.toml. Zero fields mean "not set".
type Config struct {
	Search Search `toml:"search"`
	Format Format `toml:"format"`
	Trace  Trace  `toml:"trace"`

	// Path is the file the values came from, empty for defaults.
	Path string `toml:"-"`
	meta toml.MetaData
}

type Search struct {
	Digits int    `toml:"digits"`
	Start  uint64 `toml:"start"`
	Jobs   int    `toml:"jobs"`
	Mode   string `toml:"mode"`
	Cache  bool   `toml:"cache"`
}

type Format struct {
	Width int    `toml:"width"`
	Pad   string `toml:"pad"`
}

type Trace struct {
	Level     string   `toml:"level"`
	Output    string   `toml:"output"`
	Format    string   `toml:"format"`
	Heartbeat Duration `toml:"heartbeat"`
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Search: Search{Digits: 1000, Start: 12, Mode: "window", Cache: true},
		Format: Format{Pad: "0"},
		Trace:  Trace{Level: "off"},
	}
}

// IsDefined reports whether key was present in the loaded file.
func (c *Config) IsDefined(key ...string) bool {
	return c != nil && c.Path != "" && c.meta.IsDefined(key...)
}

// PadRune returns the configured pad character.
func (c *Config) PadRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Format.Pad)
	if r == utf8.RuneError {
		return '0'
	}
	return r
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Resolve loads path when it is non-empty; otherwise it looks for
// largenum.toml from startDir upwards and falls back to Default.
func Resolve(path, startDir string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	found, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(found)
}

// Load decodes path on top of Default and validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.meta = meta
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.IsDefined("search", "digits") && c.Search.Digits <= 0 {
		return fmt.Errorf("[search].digits must be positive, got %d", c.Search.Digits)
	}
	if c.IsDefined("search", "jobs") && c.Search.Jobs < 0 {
		return fmt.Errorf("[search].jobs must not be negative, got %d", c.Search.Jobs)
	}
	switch strings.ToLower(c.Search.Mode) {
	case "window", "brute":
	default:
		return fmt.Errorf("[search].mode must be window or brute, got %q", c.Search.Mode)
	}
	if c.Format.Width < 0 {
		return fmt.Errorf("[format].width must not be negative, got %d", c.Format.Width)
	}
	if c.IsDefined("format", "pad") && utf8.RuneCountInString(c.Format.Pad) != 1 {
		return fmt.Errorf("[format].pad must be a single character, got %q", c.Format.Pad)
	}
	return nil
}
