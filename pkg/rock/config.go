package rock

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSeed is the seed used when a preset does not name one.
const DefaultSeed int64 = 12345

// ErrInvalidConfiguration matches any *ConfigError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Config is the shape configuration for one cluster. It is read-only for the
// duration of a generate call.
type Config struct {
	Segments              int     `json:"segments" toml:"segments" yaml:"segments"`
	BottomRadius          float64 `json:"bottom_radius" toml:"bottom_radius" yaml:"bottom_radius"`
	TopRadius             float64 `json:"top_radius" toml:"top_radius" yaml:"top_radius"`
	Height                float64 `json:"height" toml:"height" yaml:"height"`
	DistortionStrength    float64 `json:"distortion_strength" toml:"distortion_strength" yaml:"distortion_strength"`
	TopDistortionStrength float64 `json:"top_distortion_strength" toml:"top_distortion_strength" yaml:"top_distortion_strength"`
	PeakHeight            float64 `json:"peak_height" toml:"peak_height" yaml:"peak_height"`

	AdditionalRockCount        int     `json:"additional_rock_count" toml:"additional_rock_count" yaml:"additional_rock_count"`
	AdditionalRockSpacing      float64 `json:"additional_rock_spacing" toml:"additional_rock_spacing" yaml:"additional_rock_spacing"`
	RockFalloff                float64 `json:"rock_falloff" toml:"rock_falloff" yaml:"rock_falloff"`
	AdditionalRockHeightFactor float64 `json:"additional_rock_height_factor" toml:"additional_rock_height_factor" yaml:"additional_rock_height_factor"`
}

// DefaultConfig returns a single rock with light distortion.
func DefaultConfig() Config {
	return Config{
		Segments:                   6,
		BottomRadius:               1,
		TopRadius:                  0.3,
		Height:                     2,
		DistortionStrength:         0.2,
		TopDistortionStrength:      0.2,
		PeakHeight:                 0,
		AdditionalRockCount:        1,
		AdditionalRockSpacing:      1,
		RockFalloff:                0.01,
		AdditionalRockHeightFactor: 1,
	}
}

// ConfigError reports a configuration field outside its allowed range.
type ConfigError struct {
	Code    string
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

type floatBound struct {
	name   string
	val    float64
	lo, hi float64
}

type intBound struct {
	name   string
	val    int
	lo, hi int
}

const (
	MinSegments = 3
	MaxSegments = 15

	MaxRadius                = 100
	MaxHeight                = 100
	MaxDistortionStrength    = 25
	MaxTopDistortionStrength = 5
	MaxPeakHeight            = 30
	MaxRockCount             = 100
	MaxRockSpacing           = 50
	MinRockFalloff           = 0.01
	MaxRockHeightFactor      = 2
)

func (c Config) intBounds() []intBound {
	return []intBound{
		{"segments", c.Segments, MinSegments, MaxSegments},
		{"additional_rock_count", c.AdditionalRockCount, 1, MaxRockCount},
	}
}

func (c Config) floatBounds() []floatBound {
	return []floatBound{
		{"bottom_radius", c.BottomRadius, 0, MaxRadius},
		{"top_radius", c.TopRadius, 0, MaxRadius},
		{"height", c.Height, 0, MaxHeight},
		{"distortion_strength", c.DistortionStrength, 0, MaxDistortionStrength},
		{"top_distortion_strength", c.TopDistortionStrength, 0, MaxTopDistortionStrength},
		{"peak_height", c.PeakHeight, 0, MaxPeakHeight},
		{"additional_rock_spacing", c.AdditionalRockSpacing, 0, MaxRockSpacing},
		{"rock_falloff", c.RockFalloff, MinRockFalloff, 1},
		{"additional_rock_height_factor", c.AdditionalRockHeightFactor, 0, MaxRockHeightFactor},
	}
}

// Validate returns a *ConfigError for the first field outside its range.
func (c Config) Validate() error {
	for _, b := range c.intBounds() {
		if b.val < b.lo || b.val > b.hi {
			return &ConfigError{
				Code:    "INVALID_CONFIGURATION",
				Field:   b.name,
				Message: fmt.Sprintf("%d is outside [%d,%d]", b.val, b.lo, b.hi),
			}
		}
	}
	for _, b := range c.floatBounds() {
		if math.IsNaN(b.val) || b.val < b.lo || b.val > b.hi {
			return &ConfigError{
				Code:    "INVALID_CONFIGURATION",
				Field:   b.name,
				Message: fmt.Sprintf("%g is outside [%g,%g]", b.val, b.lo, b.hi),
			}
		}
	}
	return nil
}

// Clamp returns c with every field forced into its range. NaN becomes the
// field's lower bound. Hosts call this on user input before Generate.
func (c Config) Clamp() Config {
	ci := func(v, lo, hi int) int { return min(max(v, lo), hi) }
	cf := func(v, lo, hi float64) float64 {
		if math.IsNaN(v) {
			return lo
		}
		return math.Min(math.Max(v, lo), hi)
	}
	c.Segments = ci(c.Segments, MinSegments, MaxSegments)
	c.AdditionalRockCount = ci(c.AdditionalRockCount, 1, MaxRockCount)
	c.BottomRadius = cf(c.BottomRadius, 0, MaxRadius)
	c.TopRadius = cf(c.TopRadius, 0, MaxRadius)
	c.Height = cf(c.Height, 0, MaxHeight)
	c.DistortionStrength = cf(c.DistortionStrength, 0, MaxDistortionStrength)
	c.TopDistortionStrength = cf(c.TopDistortionStrength, 0, MaxTopDistortionStrength)
	c.PeakHeight = cf(c.PeakHeight, 0, MaxPeakHeight)
	c.AdditionalRockSpacing = cf(c.AdditionalRockSpacing, 0, MaxRockSpacing)
	c.RockFalloff = cf(c.RockFalloff, MinRockFalloff, 1)
	c.AdditionalRockHeightFactor = cf(c.AdditionalRockHeightFactor, 0, MaxRockHeightFactor)
	return c
}
