package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/OCharnyshevich/voxel-core/internal/engine/config"
	"github.com/OCharnyshevich/voxel-core/internal/engine/player"
	"github.com/OCharnyshevich/voxel-core/internal/engine/render"
	"github.com/OCharnyshevich/voxel-core/internal/engine/world"
)

// EyeHeight is how far above the ground the player's eye spawns.
const EyeHeight = 1.62

// Engine ties a world to the player editing it and the cache its meshes are
// uploaded to. Edits are queued and applied once per frame.
type Engine struct {
	cfg    *config.Config
	log    *slog.Logger
	world  *world.World
	cache  *render.Cache
	player *player.Player
	queue  world.Queue
	frames atomic.Uint64
}

// New builds the world described by cfg and spawns a player above its centre.
func New(cfg *config.Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	mat, err := cfg.Material()
	if err != nil {
		return nil, err
	}
	caster, err := cfg.Caster()
	if err != nil {
		return nil, err
	}

	heights := cfg.Heights()
	cache := render.NewCache(log)
	w := world.New(world.Config{
		Bounds:        world.Radius(cfg.WorldRadius),
		Heights:       heights,
		PlaceMaterial: mat,
		Workers:       cfg.Workers,
		Sink:          cache,
		Log:           log,
	})

	eye := mgl32.Vec3{0.5, float32(heights(0, 0)) + EyeHeight, 0.5}
	return &Engine{
		cfg:    cfg,
		log:    log,
		world:  w,
		cache:  cache,
		player: player.New(eye, caster),
	}, nil
}

// World returns the engine's world.
func (e *Engine) World() *world.World { return e.world }

// Cache returns the cache holding the packed meshes of every chunk.
func (e *Engine) Cache() *render.Cache { return e.cache }

// Player returns the player whose view drives Break and Place.
func (e *Engine) Player() *player.Player { return e.player }

// Queue returns the edit queue drained by Frame.
func (e *Engine) Queue() *world.Queue { return &e.queue }

// Break queues breaking the block the player looks at.
func (e *Engine) Break() bool {
	return e.player.Break(e.world, &e.queue)
}

// Place queues placing a block against the surface the player looks at.
func (e *Engine) Place() bool {
	return e.player.Place(e.world, &e.queue)
}

// Frame applies the queued edits and returns how many changed the world.
func (e *Engine) Frame() int {
	n := e.queue.Drain(e.world)
	frame := e.frames.Add(1)
	if n > 0 {
		e.log.Debug("applied edits", "frame", frame, "edits", n)
	}
	return n
}

// Frames returns the number of frames run so far.
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

// Run calls Frame at the configured frame rate until the context is cancelled.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(e.cfg.FrameRate))
	defer ticker.Stop()

	s := e.world.Stats()
	e.log.Info("engine started",
		"world", e.world.ID().String(),
		"chunks", s.Chunks,
		"faces", s.Faces,
		"generator", e.cfg.GeneratorType,
		"seed", e.cfg.Seed,
		"frameRate", e.cfg.FrameRate,
	)

	for {
		select {
		case <-ctx.Done():
			e.Frame()
			e.log.Info("engine shutting down", "frames", e.Frames())
			return nil
		case <-ticker.C:
			e.Frame()
		}
	}
}
