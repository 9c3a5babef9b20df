package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chazu/cairn/pkg/mesh"
)

// JSON writes b in the flat float32 layout used by the frontend bindings.
func JSON(w io.Writer, b mesh.Buffers) error {
	if err := json.NewEncoder(w).Encode(b.Flat()); err != nil {
		return fmt.Errorf("export: json: %w", err)
	}
	return nil
}
