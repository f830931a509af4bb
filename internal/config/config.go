// Package config holds the settings of a robotpath run. Values come from
// Default, then an optional YAML file, then command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"robotpath/internal/grid"
)

var ErrInvalid = errors.New("invalid config")

type Point struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
}

type Config struct {
	GridSize int64 `yaml:"grid_size"`
	Start    Point `yaml:"start"`
	// Strict rejects programs with unbalanced parentheses instead of
	// closing them implicitly.
	Strict  bool `yaml:"strict"`
	Workers int  `yaml:"workers"`
}

func Default() Config {
	return Config{
		GridSize: grid.DefaultSize,
		Start:    Point{X: grid.Start.X, Y: grid.Start.Y},
		Workers:  1,
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	g, err := grid.New(c.GridSize)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := g.Check(c.StartPosition()); err != nil {
		return fmt.Errorf("%w: start %v", ErrInvalid, err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	return nil
}

func (c Config) Grid() (grid.Grid, error) {
	return grid.New(c.GridSize)
}

func (c Config) StartPosition() grid.Position {
	return grid.Position{X: c.Start.X, Y: c.Start.Y}
}
