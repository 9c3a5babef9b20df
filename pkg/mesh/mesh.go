// Package mesh holds indexed triangle buffers and the assembler that merges
// several of them into one.
package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Buffers is an indexed triangle mesh. Vertices and UVs are index-aligned;
// Triangles holds one index triple per face. Normals is either empty or
// aligned with Vertices.
type Buffers struct {
	Vertices  []v3.Vec
	UVs       []v2.Vec
	Triangles []int
	Normals   []v3.Vec
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	return len(b.Vertices)
}

// TriangleCount returns the number of triangles.
func (b *Buffers) TriangleCount() int {
	return len(b.Triangles) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (b *Buffers) IsEmpty() bool {
	return len(b.Vertices) == 0
}

// Validate checks the buffer invariants: aligned UVs (and normals, when
// present), whole triangles, and in-range indices.
func (b *Buffers) Validate() error {
	if len(b.UVs) != len(b.Vertices) {
		return fmt.Errorf("mesh: %d uvs for %d vertices", len(b.UVs), len(b.Vertices))
	}
	if len(b.Normals) != 0 && len(b.Normals) != len(b.Vertices) {
		return fmt.Errorf("mesh: %d normals for %d vertices", len(b.Normals), len(b.Vertices))
	}
	if len(b.Triangles)%3 != 0 {
		return fmt.Errorf("mesh: %d triangle indices is not a multiple of 3", len(b.Triangles))
	}
	for i, idx := range b.Triangles {
		if idx < 0 || idx >= len(b.Vertices) {
			return fmt.Errorf("mesh: triangle index %d at position %d out of range [0,%d)", idx, i, len(b.Vertices))
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh has a zero box.
func (b *Buffers) Bounds() sdf.Box3 {
	if len(b.Vertices) == 0 {
		return sdf.Box3{}
	}
	lo, hi := b.Vertices[0], b.Vertices[0]
	for _, v := range b.Vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	return sdf.Box3{Min: lo, Max: hi}
}

// Triangle returns the three corner positions of face i.
func (b *Buffers) Triangle(i int) sdf.Triangle3 {
	return sdf.Triangle3{
		b.Vertices[b.Triangles[i*3]],
		b.Vertices[b.Triangles[i*3+1]],
		b.Vertices[b.Triangles[i*3+2]],
	}
}
