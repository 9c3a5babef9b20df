package rock

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/chazu/cairn/pkg/mesh"
	"github.com/chazu/cairn/pkg/rng"
)

// Generate builds the whole cluster for (c, seed). One stream is seeded and
// shared by the planner and every rock, which are built in index order, so
// the same inputs always give identical buffers.
func Generate(c Config, seed int64) (mesh.Buffers, error) {
	if err := c.Validate(); err != nil {
		return mesh.Buffers{}, fmt.Errorf("rock: generate: %w", err)
	}

	s := rng.New(seed)
	layouts := Plan(c, s)

	parts := make([]mesh.Buffers, len(layouts))
	for i, l := range layouts {
		part, err := Build(c, l, heightMultiplier(c, i), s)
		if err != nil {
			return mesh.Buffers{}, fmt.Errorf("rock: generate: instance %d: %w", i, err)
		}
		parts[i] = part
	}

	return mesh.Merge(parts...), nil
}

// GenerateParallel builds the rocks of a cluster concurrently on a pool of
// workers (runtime.NumCPU() when workers <= 0). Layouts come from the seeded
// stream as in Generate, but rock i draws its shape from rng.Derive(seed, i).
// The result is deterministic for (c, seed) and independent of the worker
// count, but it is not the same mesh Generate returns.
func GenerateParallel(c Config, seed int64, workers int) (mesh.Buffers, error) {
	if err := c.Validate(); err != nil {
		return mesh.Buffers{}, fmt.Errorf("rock: generate: %w", err)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	layouts := Plan(c, rng.New(seed))
	parts := make([]mesh.Buffers, len(layouts))
	errs := make([]error, len(layouts))

	pool := pond.NewPool(workers)
	defer pool.StopAndWait()

	var wg sync.WaitGroup
	for i, l := range layouts {
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			parts[i], errs[i] = Build(c, l, heightMultiplier(c, i), rng.Derive(seed, uint64(i)))
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return mesh.Buffers{}, fmt.Errorf("rock: generate: instance %d: %w", i, err)
		}
	}
	return mesh.Merge(parts...), nil
}

// Instances returns the planned layouts for (c, seed) without building any
// geometry.
func Instances(c Config, seed int64) ([]Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("rock: instances: %w", err)
	}
	return Plan(c, rng.New(seed)), nil
}

// heightMultiplier is 1 for the anchor and the configured factor for every
// satellite.
func heightMultiplier(c Config, i int) float64 {
	if i == 0 {
		return 1
	}
	return c.AdditionalRockHeightFactor
}
