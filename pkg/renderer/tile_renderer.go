package renderer

import (
	"image"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// TileRenderer renders rectangular pixel regions with an integrator. It owns
// its sampler and must not be shared between goroutines.
type TileRenderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	sampler    *sampler.Sampler
}

// NewTileRenderer creates a new tile renderer with the given scene, integrator and sampler
func NewTileRenderer(sc *scene.Scene, integ integrator.Integrator, s *sampler.Sampler) *TileRenderer {
	return &TileRenderer{
		scene:      sc,
		integrator: integ,
		sampler:    s,
	}
}

// RenderTileBounds brings every pixel within bounds up to targetSamples.
// A pixel's n-th sample always uses sample index n, so the result does not
// depend on how the samples were split across passes or workers.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, targetSamples int) RenderStats {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			samplesUsed, dropped := tr.samplePixel(x, y, &pixelStats[y][x], targetSamples)
			stats.TotalSamples += samplesUsed
			stats.DroppedSamples += dropped
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats
}

// samplePixel takes samples until the pixel reaches targetSamples. Non-finite
// samples count as black so one bad path cannot poison the pixel.
func (tr *TileRenderer) samplePixel(x, y int, ps *PixelStats, targetSamples int) (int, int) {
	camera := tr.scene.Camera
	initialSampleCount := ps.SampleCount
	dropped := 0

	for ps.SampleCount < targetSamples {
		tr.sampler.StartPixelSample(x, y, ps.SampleCount)
		ray := camera.GenerateRay(x, y, tr.sampler, tr.sampler.PixelOffset())
		color := tr.integrator.RayColor(ray, tr.scene, tr.sampler)
		if !color.IsFinite() {
			color.X, color.Y, color.Z = 0, 0, 0
			dropped++
		}
		ps.AddSample(color)
	}

	return ps.SampleCount - initialSampleCount, dropped
}
