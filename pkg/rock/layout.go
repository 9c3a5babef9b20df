package rock

import (
	"github.com/chazu/cairn/pkg/rng"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Layout is the placement of one rock in a cluster. Offset lies in the
// horizontal plane: Offset.X is world x and Offset.Y is world z.
type Layout struct {
	Offset   v2.Vec
	Scale    float64
	Yaw      float64 // degrees
	Segments int
}

// Plan computes the layout of every rock in the cluster, drawing from s in
// index order. Index 0 is the anchor: zero offset and scale 1.
func Plan(c Config, s *rng.Stream) []Layout {
	n := c.AdditionalRockCount
	if n < 1 {
		return nil
	}
	layouts := make([]Layout, n)
	maxOffset := c.AdditionalRockSpacing * 2

	for i := range layouts {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		dist := lerp(0, maxOffset, t)

		// Both offset draws are consumed even when dist is zero.
		offset := v2.Vec{
			X: s.Float(-dist, dist),
			Y: s.Float(-dist, dist),
		}
		yaw := s.Float(0, 360)

		segments := c.Segments
		if c.Segments >= 4 {
			segments = max(3, c.Segments+s.Int(-1, 3))
		}

		l := Layout{
			Offset:   offset,
			Scale:    lerp(1, c.RockFalloff, t),
			Yaw:      yaw,
			Segments: segments,
		}
		if i == 0 {
			l.Offset = v2.Vec{}
			l.Scale = 1
		}
		layouts[i] = l
	}
	return layouts
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
