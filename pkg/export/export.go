// Package export writes generated rock meshes to disk in formats other
// tools understand.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/cairn/pkg/mesh"
)

// Write saves b to path, choosing the format from the file extension.
func Write(path string, b mesh.Buffers) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return STL(path, b)
	case ".obj", ".json":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		write := OBJ
		if ext == ".json" {
			write = JSON
		}
		if err := write(f, b); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("export: unsupported file extension %q", ext)
	}
}
