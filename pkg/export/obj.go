package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/chazu/cairn/pkg/mesh"
)

// OBJ writes b as a Wavefront OBJ document. Positions, texture coordinates
// and normals share one index space, so every face corner is written as
// i/i/i. Buffers without normals omit the vn lines.
func OBJ(w io.Writer, b mesh.Buffers) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# cairn rock cluster: %d vertices, %d triangles\n", b.VertexCount(), b.TriangleCount())
	fmt.Fprintln(bw, "o rock_cluster")

	for _, v := range b.Vertices {
		fmt.Fprintf(bw, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, uv := range b.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X, uv.Y)
	}
	hasNormals := len(b.Normals) == len(b.Vertices) && len(b.Normals) > 0
	if hasNormals {
		for _, n := range b.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n.X, n.Y, n.Z)
		}
	}

	for i := 0; i+2 < len(b.Triangles); i += 3 {
		fmt.Fprint(bw, "f")
		for _, idx := range b.Triangles[i : i+3] {
			// OBJ indices are 1-based.
			k := idx + 1
			if hasNormals {
				fmt.Fprintf(bw, " %d/%d/%d", k, k, k)
			} else {
				fmt.Fprintf(bw, " %d/%d", k, k)
			}
		}
		fmt.Fprintln(bw)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("export: obj: %w", err)
	}
	return nil
}
