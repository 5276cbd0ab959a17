package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/OCharnyshevich/voxel-core/internal/engine"
	"github.com/OCharnyshevich/voxel-core/internal/engine/config"
	"github.com/OCharnyshevich/voxel-core/internal/engine/player"
	"github.com/OCharnyshevich/voxel-core/internal/engine/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "terrain seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: default or flat")
	flag.IntVar(&cfg.FlatHeight, "flat-height", cfg.FlatHeight, "ground height of the flat generator")
	flag.IntVar(&cfg.WorldRadius, "world-radius", cfg.WorldRadius, "world boundary in chunks")
	flag.StringVar(&cfg.PlaceMaterial, "place-material", cfg.PlaceMaterial, "material placed by the player")
	flag.Float64Var(&cfg.RayStep, "ray-step", cfg.RayStep, "ray march step in blocks")
	flag.Float64Var(&cfg.RayDistance, "ray-distance", cfg.RayDistance, "ray reach in blocks")
	flag.StringVar(&cfg.RayMode, "ray-mode", cfg.RayMode, "ray traversal: march or dda")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "world generation workers (0 = one per CPU)")
	flag.IntVar(&cfg.FrameRate, "frame-rate", cfg.FrameRate, "frames per second of the edit loop")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	var (
		dataDir = flag.String("data", "./data", "data directory holding config.toml or config.json")
		preset  = flag.String("preset", "", "fetch a config preset (path, URL, git:: or s3:: address) into the data directory")
		actions = flag.String("actions", "", "comma-separated player actions: break, place, look:<yaw>:<pitch>")
		runFor  = flag.Duration("run", 0, "run the frame loop for this long, 0 to stop after the actions")
		save    = flag.Bool("save", false, "write the effective config to config.toml")
	)
	flag.Parse()

	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var level slog.LevelVar
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := storage.New(*dataDir, log)
	if err != nil {
		log.Error("open data directory", "error", err)
		os.Exit(1)
	}
	if *preset != "" {
		if _, err := store.FetchConfig(ctx, *preset); err != nil {
			log.Error("fetch preset", "error", err)
			os.Exit(1)
		}
	}

	fromFile := config.DefaultConfig()
	if err := store.LoadConfig(fromFile); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fromFile, explicit)
	if l, err := cfg.Level(); err == nil {
		level.Set(l)
	}

	e, err := engine.New(cfg, log)
	if err != nil {
		log.Error("create engine", "error", err)
		os.Exit(1)
	}

	if err := runActions(e, *actions, log); err != nil {
		log.Error("run actions", "error", err)
		os.Exit(1)
	}

	if *save {
		if err := store.SaveConfig(cfg); err != nil {
			log.Error("save config", "error", err)
			os.Exit(1)
		}
	}

	if *runFor > 0 {
		ctx, cancel = context.WithTimeout(ctx, *runFor)
		defer cancel()
		if err := e.Run(ctx); err != nil {
			log.Error("engine error", "error", err)
			os.Exit(1)
		}
	}

	if err := e.World().Verify(); err != nil {
		log.Error("world inconsistent", "error", err)
		os.Exit(1)
	}
	s, cs := e.World().Stats(), e.Cache().Stats()
	log.Info("done",
		"chunks", s.Chunks,
		"faces", s.Faces,
		"vertices", s.Vertices,
		"uploads", cs.Uploads,
		"skips", cs.Skips,
		"bytes", cs.Bytes,
	)
}

// runActions performs each scripted action and runs a frame after it.
func runActions(e *engine.Engine, script string, log *slog.Logger) error {
	if script == "" {
		return nil
	}
	for _, a := range strings.Split(script, ",") {
		a = strings.TrimSpace(a)
		sel, err := applyAction(e, a, log)
		if err != nil {
			return err
		}

		n := e.Frame()
		log.Info("action",
			"action", a,
			"pick", sel.Pick, "hasPick", sel.HasPick,
			"place", sel.Place, "hasPlace", sel.HasPlace,
			"edits", n,
		)
	}
	return nil
}

// applyAction performs a single action and returns the player's selection
// once it took effect. Edits are queued, so after break or place the
// selection still names the targeted cells until the next frame.
func applyAction(e *engine.Engine, a string, log *slog.Logger) (player.Selection, error) {
	switch name, args, _ := strings.Cut(a, ":"); name {
	case "break":
		if !e.Break() {
			log.Warn("nothing to break")
		}
	case "place":
		if !e.Place() {
			log.Warn("nothing to place against")
		}
	case "look":
		yaw, pitch, err := parseLook(args)
		if err != nil {
			return player.Selection{}, fmt.Errorf("action %q: %w", a, err)
		}
		e.Player().Look(yaw, pitch)
	default:
		return player.Selection{}, fmt.Errorf("unknown action %q", a)
	}
	return e.Player().Target(e.World()), nil
}

func parseLook(args string) (yaw, pitch float32, err error) {
	y, p, ok := strings.Cut(args, ":")
	if !ok {
		return 0, 0, errors.New("want look:<yaw>:<pitch>")
	}
	yv, err := strconv.ParseFloat(y, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("parse yaw: %w", err)
	}
	pv, err := strconv.ParseFloat(p, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("parse pitch: %w", err)
	}
	return float32(yv), float32(pv), nil
}
