package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"github.com/chazu/cairn/pkg/engine"
	"github.com/chazu/cairn/pkg/mesh"
	"github.com/chazu/cairn/pkg/preset"
	"github.com/chazu/cairn/pkg/rock"
)

// maxRandomSeed bounds the seeds picked by RandomizeSeed.
const maxRandomSeed = 999999

// colorPalette is a default palette used to assign distinct colors to clusters.
var colorPalette = []string{
	"#8C7B6B", "#A39382", "#6E6259", "#B5A898",
	"#7A6F63", "#958675", "#5F554D", "#C2B6A8",
}

// App owns the engine and the per-preset mesh cache. It is what the CLI
// drives, and its Evaluate method returns frontend-ready JSON.
type App struct {
	log    *slog.Logger
	engine *engine.Engine

	// Workers > 0 builds clusters with rock.GenerateParallel.
	Workers int

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	seed   int64
	config rock.Config
	mesh   mesh.Buffers
}

// Result is one generated cluster.
type Result struct {
	Preset preset.Preset
	Mesh   mesh.Buffers
	// Regenerated is false when the mesh came from the cache.
	Regenerated bool
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	UVs      []float32 `json:"uvs"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Color    string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates an App. A nil logger falls back to slog.Default.
func NewApp(log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{
		log:    log,
		engine: engine.NewEngine(),
		cache:  make(map[string]cached),
	}
}

// Generate builds the cluster described by p. The mesh is only rebuilt when
// the seed or configuration differ from the last call with the same name.
func (a *App) Generate(p preset.Preset) (Result, error) {
	a.mu.Lock()
	prev, ok := a.cache[p.Name]
	a.mu.Unlock()
	if ok && prev.seed == p.Seed && prev.config == p.Config {
		return Result{Preset: p, Mesh: prev.mesh}, nil
	}

	var (
		b   mesh.Buffers
		err error
	)
	if a.Workers > 0 {
		b, err = rock.GenerateParallel(p.Config, p.Seed, a.Workers)
	} else {
		b, err = rock.Generate(p.Config, p.Seed)
	}
	if err != nil {
		return Result{}, fmt.Errorf("generate %q: %w", p.Name, err)
	}

	a.mu.Lock()
	a.cache[p.Name] = cached{seed: p.Seed, config: p.Config, mesh: b}
	a.mu.Unlock()

	a.log.Debug("generated cluster",
		"name", p.Name,
		"seed", p.Seed,
		"rocks", p.Config.AdditionalRockCount,
		"vertices", b.VertexCount(),
		"triangles", b.TriangleCount())
	return Result{Preset: p, Mesh: b, Regenerated: true}, nil
}

// RandomizeSeed picks a fresh seed for a previously generated preset and
// rebuilds it.
func (a *App) RandomizeSeed(name string) (Result, error) {
	a.mu.Lock()
	prev, ok := a.cache[name]
	a.mu.Unlock()
	if !ok {
		return Result{}, fmt.Errorf("randomize: no cluster named %q has been generated", name)
	}

	seed := rand.Int64N(maxRandomSeed)
	for seed == prev.seed {
		seed = rand.Int64N(maxRandomSeed)
	}
	a.log.Info("randomized seed", "name", name, "seed", seed)
	return a.Generate(preset.Preset{Name: name, Seed: seed, Config: prev.config})
}

// LoadPresets reads presets from src, which may be a local path or any
// address preset.Fetch understands. Lisp scripts can define several
// clusters; TOML and YAML files hold exactly one.
func (a *App) LoadPresets(ctx context.Context, src string) ([]preset.Preset, error) {
	if preset.IsRemote(src) {
		dir, err := os.MkdirTemp("", "cairn-preset-")
		if err != nil {
			return nil, fmt.Errorf("load presets: %w", err)
		}
		defer os.RemoveAll(dir)

		a.log.Info("fetching preset", "src", src)
		if src, err = preset.Fetch(ctx, src, dir); err != nil {
			return nil, err
		}
	}

	format, err := preset.FormatOf(src)
	if err != nil {
		return nil, err
	}
	if format != preset.FormatLisp {
		p, err := preset.Load(src)
		if err != nil {
			return nil, err
		}
		return []preset.Preset{p}, nil
	}

	source, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	presets, evalErrs, err := a.engine.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("load presets %s: %w", src, err)
	}
	if len(evalErrs) > 0 {
		msgs := make([]string, len(evalErrs))
		for i, e := range evalErrs {
			msgs[i] = e.Error()
		}
		return nil, fmt.Errorf("load presets %s: %s", src, strings.Join(msgs, "; "))
	}
	return presets, nil
}

// Evaluate takes Lisp source and returns mesh data + errors.
// This is the primary binding for an editor frontend.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into cluster presets.
	presets, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	if len(presets) == 0 && strings.TrimSpace(source) != "" {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Message: "script defines no rock clusters",
		})
	}

	// Step 3: Generate each cluster and flatten it for rendering.
	for i, p := range presets {
		res, err := a.Generate(p)
		if err != nil {
			a.log.Error("generate", "name", p.Name, "error", err)
			result.Errors = append(result.Errors, EvalErrorData{
				Message: "generation failed: " + err.Error(),
			})
			continue
		}
		f := res.Mesh.Flat()
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: f.Vertices,
			Normals:  f.Normals,
			UVs:      f.UVs,
			Indices:  f.Indices,
			PartName: p.Name,
			Color:    colorPalette[i%len(colorPalette)],
		})
	}

	return result
}
