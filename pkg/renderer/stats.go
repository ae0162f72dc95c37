package renderer

import (
	"time"

	"github.com/horenderer/pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per pixel
	MaxSamples     int           // Target samples per pixel
	MinSamples     int           // Minimum samples taken per pixel
	MaxSamplesUsed int           // Maximum samples actually used by any pixel
	DroppedSamples int           // Samples discarded for being NaN or infinite
	RenderTime     time.Duration // Wall time spent rendering
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

func newPixelStats(width, height int) [][]PixelStats {
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}
	return pixelStats
}

// resolve averages the accumulated samples into a framebuffer and computes frame statistics
func resolve(pixelStats [][]PixelStats, width, height, targetSamples int) (*Framebuffer, RenderStats) {
	fb := NewFramebuffer(width, height)
	stats := RenderStats{
		TotalPixels: width * height,
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixel := &pixelStats[y][x]
			fb.Set(x, y, pixel.GetColor())

			stats.TotalSamples += pixel.SampleCount
			stats.MinSamples = min(stats.MinSamples, pixel.SampleCount)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, pixel.SampleCount)
		}
	}
	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return fb, stats
}

// CalculateAverageLuminance returns the mean linear luminance of a framebuffer
func CalculateAverageLuminance(fb *Framebuffer) float64 {
	if len(fb.Pix) == 0 {
		return 0
	}

	total := 0.0
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			total += fb.Color(x, y).Luminance()
		}
	}
	return total / float64(len(fb.Pix))
}
