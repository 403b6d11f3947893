// Package seed loads the initial dashboard layout. The built-in layout is
// compiled in; a file path may point at a TOML, YAML or JSON replacement.
package seed

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/jask/widgetboard/internal/board"
)

//go:embed default.toml
var defaultTOML []byte

// ErrUnknownFormat is returned for seed files with an unsupported extension.
var ErrUnknownFormat = errors.New("unknown seed format")

type file struct {
	Categories []category `toml:"category" yaml:"categories" json:"categories"`
}

type category struct {
	Title   string   `toml:"title" yaml:"title" json:"title"`
	Widgets []widget `toml:"widget" yaml:"widgets" json:"widgets"`
}

type widget struct {
	Key     int64  `toml:"key" yaml:"key" json:"key"`
	Title   string `toml:"title" yaml:"title" json:"title"`
	Content string `toml:"content" yaml:"content" json:"content"`
}

// Validate checks a single category record.
func (c category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Widgets),
	)
}

// Validate checks a single widget record.
func (w widget) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.Key, validation.Required, validation.Min(int64(1))),
		validation.Field(&w.Title, validation.Required),
	)
}

// Default returns the built-in layout.
func Default() []board.CategorySeed {
	out, err := Parse(defaultTOML, ".toml")
	if err != nil {
		panic(fmt.Sprintf("seed: built-in layout: %v", err))
	}
	return out
}

// Load reads the seed at path. An empty path yields Default.
func Load(path string) ([]board.CategorySeed, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	out, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", filepath.Base(path), err)
	}
	return out, nil
}

// Parse decodes data according to ext (".toml", ".yaml", ".yml", ".json").
func Parse(data []byte, ext string) ([]board.CategorySeed, error) {
	var f file
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&f); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f.categories(), nil
}

func (f file) check() error {
	titles := make(map[string]bool, len(f.Categories))
	keys := make(map[int64]string)
	for i, c := range f.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("category[%d]: %w", i, err)
		}
		if titles[c.Title] {
			return fmt.Errorf("category[%d]: duplicate title %q", i, c.Title)
		}
		titles[c.Title] = true
		for _, w := range c.Widgets {
			if prev, ok := keys[w.Key]; ok {
				return fmt.Errorf("category %q: widget key %d already used in %q", c.Title, w.Key, prev)
			}
			keys[w.Key] = c.Title
		}
	}
	return nil
}

func (f file) categories() []board.CategorySeed {
	out := make([]board.CategorySeed, 0, len(f.Categories))
	for _, c := range f.Categories {
		ws := make([]board.Widget, 0, len(c.Widgets))
		for _, w := range c.Widgets {
			ws = append(ws, board.Widget{Title: w.Title, Content: w.Content, Key: w.Key})
		}
		out = append(out, board.CategorySeed{Title: c.Title, Widgets: ws})
	}
	return out
}
