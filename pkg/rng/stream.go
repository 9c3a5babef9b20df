// Package rng provides the seeded random stream shared by layout planning
// and rock building. Output is a pure function of the seed and the order of
// calls, so every consumer must draw in a fixed sequence.
//
// A Stream is not safe for concurrent use. Use Derive to give each worker its
// own stream.
package rng

import (
	"math"
	"math/rand/v2"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Stream is a deterministic pseudo-random source.
type Stream struct {
	r *rand.Rand
}

// New returns a stream seeded with seed.
func New(seed int64) *Stream {
	s := &Stream{}
	s.Seed(seed)
	return s
}

// Derive returns an independent stream for the given sub-stream index.
// The same (seed, stream) pair always yields the same sequence.
func Derive(seed int64, stream uint64) *Stream {
	x := uint64(seed) ^ (stream + goldenRatio64)
	return New(int64(mix(x + goldenRatio64)))
}

// Seed resets the stream so that subsequent draws depend only on seed.
func (s *Stream) Seed(seed int64) {
	u := uint64(seed)
	s.r = rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Float returns a float in [lo, hi].
func (s *Stream) Float(lo, hi float64) float64 {
	if lo == hi {
		// Still consume a draw so the sequence does not depend on the bounds.
		s.r.Float64()
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// Int returns an integer in [lo, hi). An empty range returns lo.
func (s *Stream) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo)
}

// UnitSphere returns a point uniformly distributed on the unit sphere.
func (s *Stream) UnitSphere() v3.Vec {
	z := s.Float(-1, 1)
	phi := s.Float(0, 2*math.Pi)
	r := math.Sqrt(math.Max(0, 1-z*z))
	return v3.Vec{X: r * math.Cos(phi), Y: r * math.Sin(phi), Z: z}
}

// SplitMix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
