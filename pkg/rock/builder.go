package rock

import (
	"fmt"
	"math"

	"github.com/chazu/cairn/pkg/mesh"
	"github.com/chazu/cairn/pkg/rng"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vertical limits applied to the random displacement of top ring vertices.
const (
	topDistortionMinY = -0.3
	topDistortionMaxY = 0.5
)

// Build creates the mesh of one rock. With S = l.Segments the vertex layout
// is: [0,S) base ring, [S,2S) top ring, 2S base centre, 2S+1 top centre.
// Build draws from s in a fixed order (per segment: radius jitter, then a
// sphere point; finally the top centre's sphere point) and must not be
// reordered without changing every later draw.
func Build(c Config, l Layout, heightMultiplier float64, s *rng.Stream) (mesh.Buffers, error) {
	n := l.Segments
	if n < MinSegments {
		return mesh.Buffers{}, fmt.Errorf("rock: build: %d segments, need at least %d", n, MinSegments)
	}

	vertices := make([]v3.Vec, 2*n+2)
	uvs := make([]v2.Vec, 2*n+2)

	xf := placement(l, c.PeakHeight)

	h := c.Height * l.Scale * heightMultiplier
	crystal := c.PeakHeight * l.Scale
	maxHeight := h + crystal
	topJitter := c.TopDistortionStrength * l.Scale
	angleStep := 2 * math.Pi / float64(n)

	for i := 0; i < n; i++ {
		angle := float64(i) * angleStep
		jitter := s.Float(-c.DistortionStrength, c.DistortionStrength)
		baseRadius := (c.BottomRadius + jitter) * l.Scale
		topRadius := (c.TopRadius + jitter*0.5) * l.Scale

		x, z := math.Cos(angle), math.Sin(angle)
		base := v3.Vec{X: x * baseRadius, Y: 0, Z: z * baseRadius}
		top := v3.Vec{X: x * topRadius, Y: h, Z: z * topRadius}

		d := s.UnitSphere().MulScalar(topJitter)
		d.Y = math.Min(math.Max(d.Y, topDistortionMinY), topDistortionMaxY)
		top = top.Add(d)

		vertices[i] = xf.MulPosition(base)
		vertices[i+n] = xf.MulPosition(top)

		uvs[i] = v2.Vec{X: 0, Y: heightFraction(vertices[i].Y, maxHeight)}
		uvs[i+n] = v2.Vec{X: 0, Y: heightFraction(vertices[i+n].Y, maxHeight)}
	}

	vertices[2*n] = xf.MulPosition(v3.Vec{})

	apex := v3.Vec{X: 0, Y: maxHeight, Z: 0}
	apex = apex.Add(s.UnitSphere().MulScalar(topJitter))
	vertices[2*n+1] = xf.MulPosition(apex)

	uvs[2*n] = v2.Vec{X: 0, Y: 0}
	uvs[2*n+1] = v2.Vec{X: 0, Y: 1}

	return mesh.Buffers{
		Vertices:  vertices,
		UVs:       uvs,
		Triangles: triangles(n),
	}, nil
}

// triangles returns the index buffer for an n-sided rock: side walls, then
// the base fan, then the top fan. The order fixes the winding the renderer
// culls against.
func triangles(n int) []int {
	tris := make([]int, 0, 12*n)
	baseCentre, topCentre := 2*n, 2*n+1

	for i := 0; i < n; i++ {
		next := (i + 1) % n
		tris = append(tris,
			i, i+n, next,
			next, i+n, next+n,
		)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		tris = append(tris, baseCentre, i, next)
	}
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		tris = append(tris, topCentre, next+n, i+n)
	}
	return tris
}

// placement returns the rock's local-to-cluster transform: tilt away from
// the cluster centre, then yaw, then translate to the planar offset.
func placement(l Layout, peakHeight float64) sdf.M44 {
	offset := v3.Vec{X: l.Offset.X, Y: 0, Z: l.Offset.Y}
	yaw := sdf.RotateY(sdf.DtoR(l.Yaw))
	return sdf.Translate3d(offset).Mul(yaw).Mul(tilt(offset, peakHeight))
}

// tilt leans a rock outward along its offset direction by up to angle
// degrees. A rock at the cluster centre is not tilted.
func tilt(offset v3.Vec, angle float64) sdf.M44 {
	length := offset.Length()
	if length == 0 || angle == 0 {
		return sdf.Identity3d()
	}
	dir := offset.DivScalar(length)
	rx := sdf.RotateX(sdf.DtoR(angle * dir.Z))
	rz := sdf.RotateZ(sdf.DtoR(-angle * dir.X))
	return rx.Mul(rz)
}

// heightFraction maps y onto [0,1] over the rock's full height. A flat rock
// maps everything to 0.
func heightFraction(y, maxHeight float64) float64 {
	if maxHeight == 0 {
		return 0
	}
	return y / maxHeight
}
