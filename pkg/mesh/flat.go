package mesh

// Flat is a triangle mesh suitable for rendering.
// All arrays are flat: vertices and normals have 3 floats per vertex,
// uvs has 2 floats per vertex, indices has 3 uint32s per triangle.
type Flat struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	UVs      []float32 `json:"uvs"`      // [u0,v0, u1,v1, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
}

// Flat converts b into the flat render layout. Missing normals are emitted
// as zeros so the arrays stay aligned.
func (b *Buffers) Flat() Flat {
	f := Flat{
		Vertices: make([]float32, 0, len(b.Vertices)*3),
		Normals:  make([]float32, 0, len(b.Vertices)*3),
		UVs:      make([]float32, 0, len(b.UVs)*2),
		Indices:  make([]uint32, 0, len(b.Triangles)),
	}
	for i, v := range b.Vertices {
		f.Vertices = append(f.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		if i < len(b.Normals) {
			n := b.Normals[i]
			f.Normals = append(f.Normals, float32(n.X), float32(n.Y), float32(n.Z))
		} else {
			f.Normals = append(f.Normals, 0, 0, 0)
		}
	}
	for _, uv := range b.UVs {
		f.UVs = append(f.UVs, float32(uv.X), float32(uv.Y))
	}
	for _, idx := range b.Triangles {
		f.Indices = append(f.Indices, uint32(idx))
	}
	return f
}

// VertexCount returns the number of vertices.
func (f *Flat) VertexCount() int {
	return len(f.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (f *Flat) TriangleCount() int {
	return len(f.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (f *Flat) IsEmpty() bool {
	return len(f.Vertices) == 0
}
