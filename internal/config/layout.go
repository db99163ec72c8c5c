package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_layout.yaml
var defaultLayout []byte

// Layout is the playfield geometry loaded from YAML.
type Layout struct {
	Lanes      []float64 `yaml:"lanes"`      // X of each hen, left to right
	SpawnY     float64   `yaml:"spawnY"`     // Height eggs are laid at
	CatcherY   float64   `yaml:"catcherY"`   // Height of the bucket
	LowerBound float64   `yaml:"lowerBound"` // Eggs below this height break
	Field      Field     `yaml:"field"`      // Visible area
}

// Field is the visible rectangle in world units.
type Field struct {
	MinX float64 `yaml:"minX"`
	MaxX float64 `yaml:"maxX"`
	MinY float64 `yaml:"minY"`
	MaxY float64 `yaml:"maxY"`
}

// DefaultLayout returns the built-in five-lane layout.
func DefaultLayout() Layout {
	layout, err := ParseLayout(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("embedded layout: %v", err))
	}
	return layout
}

// LoadLayout reads a layout file. An empty path yields the default layout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	layout, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout YAML: %w", err)
	}
	if err := validateLayout(&layout); err != nil {
		return Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layout, nil
}

func validateLayout(l *Layout) error {
	if len(l.Lanes) == 0 {
		return errors.New("lanes cannot be empty")
	}
	if l.LowerBound >= l.SpawnY {
		return fmt.Errorf("lowerBound %.0f must be below spawnY %.0f", l.LowerBound, l.SpawnY)
	}
	if l.CatcherY <= l.LowerBound || l.CatcherY >= l.SpawnY {
		return fmt.Errorf("catcherY %.0f must lie between lowerBound and spawnY", l.CatcherY)
	}
	if l.Field.MaxX <= l.Field.MinX || l.Field.MaxY <= l.Field.MinY {
		return errors.New("field must have positive width and height")
	}
	return nil
}
