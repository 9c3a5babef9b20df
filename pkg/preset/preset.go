// Package preset persists rock-cluster configurations. A preset holds only
// the shape configuration and the seed; meshes are always regenerated from
// them.
package preset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/cairn/pkg/rock"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a preset file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatLisp Format = "lisp" // evaluated by the engine, not decoded here
)

// Preset is a named configuration plus seed.
type Preset struct {
	Name   string      `json:"name" toml:"name" yaml:"name"`
	Seed   int64       `json:"seed" toml:"seed" yaml:"seed"`
	Config rock.Config `json:"config" toml:"config" yaml:"config"`
}

// Default returns the default single rock under the given name.
func Default(name string) Preset {
	return Preset{Name: name, Seed: rock.DefaultSeed, Config: rock.DefaultConfig()}
}

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cairn", ".lisp", ".zy":
		return FormatLisp, nil
	}
	return "", fmt.Errorf("preset: unknown file extension %q", filepath.Ext(path))
}

// Decode parses a TOML or YAML preset. Fields missing from data keep their
// defaults, and a missing name falls back to "rock".
func Decode(format Format, data []byte) (Preset, error) {
	p := Default("")
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&p)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&p)
		if err != nil && len(bytes.TrimSpace(data)) == 0 {
			err = nil
		}
	default:
		return Preset{}, fmt.Errorf("preset: cannot decode format %q", format)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("preset: decode %s: %w", format, err)
	}
	if p.Name == "" {
		p.Name = "rock"
	}
	if err := p.Config.Validate(); err != nil {
		return Preset{}, fmt.Errorf("preset: %q: %w", p.Name, err)
	}
	return p, nil
}

// Encode serializes p as TOML or YAML.
func Encode(format Format, p Preset) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(p)
	case FormatYAML:
		return yaml.Marshal(p)
	}
	return nil, fmt.Errorf("preset: cannot encode format %q", format)
}

// Load reads a TOML or YAML preset file.
func Load(path string) (Preset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Preset{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("preset: %w", err)
	}
	p, err := Decode(format, data)
	if err != nil {
		return Preset{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path in the format implied by its extension.
func Save(path string, p Preset) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, p)
	if err != nil {
		return fmt.Errorf("preset: encode %s: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("preset: %w", err)
	}
	return nil
}
