package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chazu/cairn/pkg/export"
	"github.com/chazu/cairn/pkg/preset"
)

func main() {
	fs := flag.NewFlagSet("cairn", flag.ExitOnError)

	cfg := preset.Default("rock")
	bindPresetFlags(fs, &cfg)
	src := fs.String("preset", "", "preset file or go-getter address (.toml, .yaml, .cairn)")
	out := fs.String("o", "rock.obj", "output mesh (.obj, .stl, .json)")
	save := fs.String("save", "", "write the effective preset to this .toml or .yaml file")
	randomize := fs.Bool("randomize", false, "pick a random seed after the first build")
	workers := fs.Int("workers", 0, "build rocks on this many workers (0 = sequential)")
	verbose := fs.Bool("v", false, "debug logging")
	_ = fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := NewApp(log)
	app.Workers = *workers

	presets := []preset.Preset{cfg}
	if *src != "" {
		loaded, err := app.LoadPresets(ctx, *src)
		if err != nil {
			log.Error("load presets", "src", *src, "error", err)
			os.Exit(1)
		}
		explicit := explicitFlags(fs)
		presets = presets[:0]
		for _, p := range loaded {
			merged := cfg
			merge(&merged, p, explicit)
			presets = append(presets, merged)
		}
	}
	if len(presets) == 0 {
		log.Warn("no rock clusters defined", "src", *src)
		return
	}

	for _, p := range presets {
		res, err := app.Generate(p)
		if err != nil {
			log.Error("generate", "name", p.Name, "error", err)
			os.Exit(1)
		}
		if *randomize {
			if res, err = app.RandomizeSeed(p.Name); err != nil {
				log.Error("randomize", "name", p.Name, "error", err)
				os.Exit(1)
			}
		}

		path := outputPath(*out, res.Preset.Name, len(presets))
		if err := export.Write(path, res.Mesh); err != nil {
			log.Error("export", "path", path, "error", err)
			os.Exit(1)
		}
		log.Info("wrote cluster",
			"name", res.Preset.Name,
			"seed", res.Preset.Seed,
			"vertices", res.Mesh.VertexCount(),
			"triangles", res.Mesh.TriangleCount(),
			"path", path)

		if *save != "" {
			savePath := outputPath(*save, res.Preset.Name, len(presets))
			if err := preset.Save(savePath, res.Preset); err != nil {
				log.Error("save preset", "path", savePath, "error", err)
				os.Exit(1)
			}
		}
	}
}
