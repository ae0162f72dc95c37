package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int            // Size of each tile (64x64 recommended)
	InitialSamples     int            // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int            // Maximum total samples per pixel
	MaxPasses          int            // Maximum number of passes
	NumWorkers         int            // Number of parallel workers (0 = use CPU count)
	Filter             sampler.Filter // Pixel reconstruction filter
	Seed               uint32         // Global sampler seed
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 50,
		MaxPasses:          7, // 1, then evenly spaced up to 50
		NumWorkers:         0,
		Filter:             sampler.FilterTent,
	}
}

// Validate checks the configuration for values that cannot produce an image
func (c ProgressiveConfig) Validate() error {
	switch {
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	case c.InitialSamples <= 0:
		return fmt.Errorf("%w: initial samples must be positive, got %d", ErrInvalidConfig, c.InitialSamples)
	case c.MaxSamplesPerPixel < c.InitialSamples:
		return fmt.Errorf("%w: max samples %d below initial samples %d", ErrInvalidConfig, c.MaxSamplesPerPixel, c.InitialSamples)
	case c.MaxPasses <= 0:
		return fmt.Errorf("%w: max passes must be positive, got %d", ErrInvalidConfig, c.MaxPasses)
	case c.NumWorkers < 0:
		return fmt.Errorf("%w: worker count cannot be negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// ProgressiveRaytracer refines an image over several passes, keeping the
// accumulated samples between passes
type ProgressiveRaytracer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	currentPass   int
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool
}

// NewProgressiveRaytracer creates a new progressive raytracer for a preprocessed scene
func NewProgressiveRaytracer(sc *scene.Scene, integ integrator.Integrator, config ProgressiveConfig) (*ProgressiveRaytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if sc.LightSampler() == nil {
		return nil, ErrSceneNotReady
	}

	width, height := sc.Camera.Width(), sc.Camera.Height()
	tiles := NewTileGrid(width, height, config.TileSize)
	workerPool := NewWorkerPool(sc, integ, sampler.New(config.Filter, config.Seed), config.NumWorkers, len(tiles))

	return &ProgressiveRaytracer{
		scene:      sc,
		width:      width,
		height:     height,
		config:     config,
		tiles:      tiles,
		pixelStats: newPixelStats(width, height),
		workerPool: workerPool,
	}, nil
}

// Close stops the worker pool. RenderProgressive closes it on return.
func (pr *ProgressiveRaytracer) Close() {
	pr.workerPool.Stop()
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// First pass is a quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// The final pass takes whatever the integer division left over
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.config.MaxSamplesPerPixel
	}

	return targetSamples
}

// RenderPass brings every pixel up to the sample count of passNumber and
// returns a snapshot of the accumulated image
func (pr *ProgressiveRaytracer) RenderPass(passNumber int, tileCallback func(TileCompletionResult)) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	pr.currentPass = passNumber
	targetSamples := pr.getSamplesForPass(passNumber)

	logger.Infof("pass %d: target %d samples per pixel (using %d workers)",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	pr.workerPool.Start()

	var onTile func(int, *Tile)
	if tileCallback != nil {
		onTile = func(done int, tile *Tile) {
			tileCallback(TileCompletionResult{
				TileX:       tile.Bounds.Min.X / pr.config.TileSize,
				TileY:       tile.Bounds.Min.Y / pr.config.TileSize,
				TileImage:   pr.extractTileImage(tile),
				PassNumber:  passNumber,
				TileNumber:  done,
				TotalTiles:  len(pr.tiles),
				TotalPasses: pr.config.MaxPasses,
			})
		}
	}

	dropped, err := renderTiles(pr.workerPool, pr.tiles, pr.pixelStats, passNumber, targetSamples, onTile)
	if err != nil {
		return nil, RenderStats{}, err
	}

	fb, stats := resolve(pr.pixelStats, pr.width, pr.height, targetSamples)
	stats.DroppedSamples = dropped
	stats.RenderTime = time.Since(start)
	return fb, stats, nil
}

// extractTileImage copies one tile of the accumulated image into its own framebuffer
func (pr *ProgressiveRaytracer) extractTileImage(tile *Tile) *Framebuffer {
	bounds := tile.Bounds
	tileImage := NewFramebuffer(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			stats := &pr.pixelStats[y][x]
			if stats.SampleCount > 0 {
				tileImage.Set(x-bounds.Min.X, y-bounds.Min.Y, stats.GetColor())
			}
		}
	}

	return tileImage
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *Framebuffer
	Stats      RenderStats
	IsLast     bool
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX      int // Tile coordinates (not pixel coordinates)
	TileY      int
	TileImage  *Framebuffer // Accumulated image data for just this tile
	PassNumber int          // Which pass this tile was rendered in

	// Progress information
	TileNumber  int // Current tile number in this pass (1-based)
	TotalTiles  int // Total number of tiles in the image
	TotalPasses int // Total number of passes planned
}

// RenderOptions configures progressive rendering behavior
type RenderOptions struct {
	TileUpdates bool // Whether to generate tile completion events
}

// RenderProgressive renders every pass in the background and publishes each
// intermediate framebuffer on the pass channel. If options.TileUpdates is
// false the tile channel is closed immediately. Cancelling ctx stops the
// render before the next pass and reports ctx.Err() on the error channel.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context, options RenderOptions) (<-chan PassResult, <-chan TileCompletionResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	tileChan := make(chan TileCompletionResult, 100)
	errChan := make(chan error, 1)

	if !options.TileUpdates {
		close(tileChan)
	}

	go func() {
		defer close(passChan)
		if options.TileUpdates {
			defer close(tileChan)
		}
		defer close(errChan)
		defer pr.workerPool.Stop()

		logger.Infof("starting progressive rendering with %d passes", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				logger.Infof("rendering cancelled before pass %d", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			var tileCallback func(TileCompletionResult)
			if options.TileUpdates {
				tileCallback = func(result TileCompletionResult) {
					select {
					case tileChan <- result:
					case <-ctx.Done():
					default:
						// Slow consumers miss tile previews, never passes
					}
				}
			}

			fb, stats, err := pr.RenderPass(pass, tileCallback)
			if err != nil {
				errChan <- err
				return
			}

			logger.Infof("pass %d completed in %v (%.0f samples/pixel)", pass, stats.RenderTime, stats.AverageSamples)

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.config.MaxSamplesPerPixel
			select {
			case passChan <- PassResult{PassNumber: pass, Image: fb, Stats: stats, IsLast: isLast}:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				break
			}
		}
	}()

	return passChan, tileChan, errChan
}

// CurrentPass returns the number of the most recently started pass
func (pr *ProgressiveRaytracer) CurrentPass() int {
	return pr.currentPass
}
