package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chazu/cairn/pkg/preset"
)

// bindPresetFlags registers one flag per preset field on fs, writing into p.
func bindPresetFlags(fs *flag.FlagSet, p *preset.Preset) {
	c := &p.Config
	fs.StringVar(&p.Name, "name", p.Name, "cluster name")
	fs.Int64Var(&p.Seed, "seed", p.Seed, "random seed")
	fs.IntVar(&c.Segments, "segments", c.Segments, "sides per rock [3,15]")
	fs.Float64Var(&c.BottomRadius, "bottom-radius", c.BottomRadius, "base ring radius")
	fs.Float64Var(&c.TopRadius, "top-radius", c.TopRadius, "top ring radius")
	fs.Float64Var(&c.Height, "height", c.Height, "rock height")
	fs.Float64Var(&c.DistortionStrength, "distortion-strength", c.DistortionStrength, "per-vertex jitter")
	fs.Float64Var(&c.TopDistortionStrength, "top-distortion-strength", c.TopDistortionStrength, "extra jitter on the top ring")
	fs.Float64Var(&c.PeakHeight, "peak-height", c.PeakHeight, "apex lift and satellite tilt")
	fs.IntVar(&c.AdditionalRockCount, "additional-rock-count", c.AdditionalRockCount, "rocks in the cluster, anchor included")
	fs.Float64Var(&c.AdditionalRockSpacing, "additional-rock-spacing", c.AdditionalRockSpacing, "max satellite offset per axis")
	fs.Float64Var(&c.RockFalloff, "rock-falloff", c.RockFalloff, "smallest satellite scale")
	fs.Float64Var(&c.AdditionalRockHeightFactor, "additional-rock-height-factor", c.AdditionalRockHeightFactor, "satellite height multiplier")
}

// merge copies fields from a loaded preset into cfg unless the matching
// flag was set explicitly on the command line.
func merge(cfg *preset.Preset, fromFile preset.Preset, explicitFlags map[string]bool) {
	if !explicitFlags["name"] {
		cfg.Name = fromFile.Name
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	c, f := &cfg.Config, fromFile.Config
	if !explicitFlags["segments"] {
		c.Segments = f.Segments
	}
	if !explicitFlags["bottom-radius"] {
		c.BottomRadius = f.BottomRadius
	}
	if !explicitFlags["top-radius"] {
		c.TopRadius = f.TopRadius
	}
	if !explicitFlags["height"] {
		c.Height = f.Height
	}
	if !explicitFlags["distortion-strength"] {
		c.DistortionStrength = f.DistortionStrength
	}
	if !explicitFlags["top-distortion-strength"] {
		c.TopDistortionStrength = f.TopDistortionStrength
	}
	if !explicitFlags["peak-height"] {
		c.PeakHeight = f.PeakHeight
	}
	if !explicitFlags["additional-rock-count"] {
		c.AdditionalRockCount = f.AdditionalRockCount
	}
	if !explicitFlags["additional-rock-spacing"] {
		c.AdditionalRockSpacing = f.AdditionalRockSpacing
	}
	if !explicitFlags["rock-falloff"] {
		c.RockFalloff = f.RockFalloff
	}
	if !explicitFlags["additional-rock-height-factor"] {
		c.AdditionalRockHeightFactor = f.AdditionalRockHeightFactor
	}
}

// explicitFlags returns the names of the flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// outputPath names the file for the i-th of n clusters. A single cluster
// uses out as given; several get the cluster name spliced in before the
// extension.
func outputPath(out, name string, n int) string {
	if n <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(out, ext), name, ext)
}
