package mesh

import (
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Merge concatenates parts in order into one mesh. Each part's triangle
// indices are shifted by the number of vertices that precede it. Vertex
// normals are recalculated over the combined mesh.
func Merge(parts ...Buffers) Buffers {
	var nv, ni int
	for _, p := range parts {
		nv += len(p.Vertices)
		ni += len(p.Triangles)
	}

	out := Buffers{
		Vertices:  make([]v3.Vec, 0, nv),
		UVs:       make([]v2.Vec, 0, nv),
		Triangles: make([]int, 0, ni),
	}
	for _, p := range parts {
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, p.Vertices...)
		out.UVs = append(out.UVs, p.UVs...)
		for _, idx := range p.Triangles {
			out.Triangles = append(out.Triangles, idx+base)
		}
	}

	out.RecalculateNormals()
	return out
}

// RecalculateNormals replaces Normals with area-independent smooth normals:
// each face's unit normal, cross(b-a, c-a), is added to its three vertices
// and the sums are normalized. Faces with zero area contribute nothing and a
// vertex with no contributions keeps a zero normal.
func (b *Buffers) RecalculateNormals() {
	normals := make([]v3.Vec, len(b.Vertices))
	for i := 0; i+2 < len(b.Triangles); i += 3 {
		ia, ib, ic := b.Triangles[i], b.Triangles[i+1], b.Triangles[i+2]
		pa, pb, pc := b.Vertices[ia], b.Vertices[ib], b.Vertices[ic]

		n := pb.Sub(pa).Cross(pc.Sub(pa))
		l := n.Length()
		if l == 0 {
			continue
		}
		n = n.DivScalar(l)

		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}
	for i, n := range normals {
		if l := n.Length(); l > 0 {
			normals[i] = n.DivScalar(l)
		}
	}
	b.Normals = normals
}
