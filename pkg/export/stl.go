package export

import (
	"fmt"

	"github.com/chazu/cairn/pkg/mesh"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
)

// STL writes b as a binary STL file. Normals are recomputed per face by
// the writer; UVs are dropped.
func STL(path string, b mesh.Buffers) error {
	tris := make([]*sdf.Triangle3, b.TriangleCount())
	for i := range tris {
		t := b.Triangle(i)
		tris[i] = &t
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return fmt.Errorf("export: stl: %w", err)
	}
	return nil
}
