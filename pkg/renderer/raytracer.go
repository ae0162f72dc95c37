package renderer

import (
	"fmt"
	"time"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/log"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Config contains configuration for a single-shot render
type Config struct {
	SamplesPerPixel int            // Number of samples per pixel
	TileSize        int            // Edge length of a work unit in pixels
	NumWorkers      int            // Number of parallel workers (0 = use CPU count)
	Filter          sampler.Filter // Pixel reconstruction filter
	Seed            uint32         // Global sampler seed
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 64,
		TileSize:        32,
		NumWorkers:      0,
		Filter:          sampler.FilterTent,
	}
}

// Validate checks the configuration for values that cannot produce an image
func (c Config) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count cannot be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer renders a scene to a float framebuffer in one pass
type Raytracer struct {
	scene         *scene.Scene
	integrator    integrator.Integrator
	width, height int
	config        Config
}

// NewRaytracer creates a new raytracer for a preprocessed scene
func NewRaytracer(sc *scene.Scene, integ integrator.Integrator, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sc.LightSampler() == nil {
		return nil, ErrSceneNotReady
	}

	return &Raytracer{
		scene:      sc,
		integrator: integ,
		width:      sc.Camera.Width(),
		height:     sc.Camera.Height(),
		config:     config,
	}, nil
}

// Render takes every sample of every pixel and returns the averaged framebuffer
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	start := time.Now()

	tiles := NewTileGrid(rt.width, rt.height, rt.config.TileSize)
	pixelStats := newPixelStats(rt.width, rt.height)

	pool := NewWorkerPool(rt.scene, rt.integrator, sampler.New(rt.config.Filter, rt.config.Seed), rt.config.NumWorkers, len(tiles))
	pool.Start()
	defer pool.Stop()

	logger.Infof("rendering %dx%d at %d spp with %d workers", rt.width, rt.height, rt.config.SamplesPerPixel, pool.GetNumWorkers())

	dropped, err := renderTiles(pool, tiles, pixelStats, 1, rt.config.SamplesPerPixel, nil)
	if err != nil {
		return nil, RenderStats{}, err
	}

	fb, stats := resolve(pixelStats, rt.width, rt.height, rt.config.SamplesPerPixel)
	stats.DroppedSamples = dropped
	stats.RenderTime = time.Since(start)
	if dropped > 0 {
		logger.Warningf("dropped %d non-finite samples", dropped)
	}
	return fb, stats, nil
}

// renderTiles submits one task per tile, waits for all of them and calls
// onTile for each completed tile in completion order. It returns the number of
// non-finite samples the workers discarded.
func renderTiles(pool *WorkerPool, tiles []*Tile, pixelStats [][]PixelStats, passNumber, targetSamples int, onTile func(done int, tile *Tile)) (int, error) {
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        i,
			PixelStats:    pixelStats,
		})
	}

	dropped := 0
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return dropped, ErrPoolClosed
		}
		if result.Error != nil {
			return dropped, result.Error
		}
		dropped += result.Stats.DroppedSamples

		tile := tiles[result.TaskID]
		tile.PassesCompleted++
		if onTile != nil {
			onTile(i+1, tile)
		}
	}
	return dropped, nil
}
