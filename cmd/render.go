package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/renderer"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// passStat is one row of the statistics table
type passStat struct {
	pass      int
	stats     renderer.RenderStats
	luminance float64
}

// RenderFrame renders a built-in scene and writes the presented frame to disk
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	out := ctx.String("out")
	format, err := renderer.FormatFromPath(out)
	if err != nil {
		return err
	}
	filter, err := sampler.ParseFilter(ctx.String("filter"))
	if err != nil {
		return err
	}

	sceneID := ctx.String("scene")
	logger.Infof("building scene %q", sceneID)
	sc, err := scene.NewBuiltin(sceneID, scene.Options{
		Width:           ctx.Int("width"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
		GroundTexture:   ctx.String("ground-texture"),
	})
	if err != nil {
		return err
	}
	integ := integrator.NewPathTracingIntegrator(sc.Config.MaxDepth)

	var (
		fb    *renderer.Framebuffer
		stats []passStat
	)
	start := time.Now()
	if passes := ctx.Int("passes"); passes > 1 {
		fb, stats, err = renderProgressive(sc, integ, renderer.ProgressiveConfig{
			TileSize:           ctx.Int("tile-size"),
			InitialSamples:     1,
			MaxSamplesPerPixel: sc.Config.SamplesPerPixel,
			MaxPasses:          passes,
			NumWorkers:         ctx.Int("workers"),
			Filter:             filter,
			Seed:               uint32(ctx.Uint("seed")),
		})
	} else {
		fb, stats, err = renderOnce(sc, integ, renderer.Config{
			SamplesPerPixel: sc.Config.SamplesPerPixel,
			TileSize:        ctx.Int("tile-size"),
			NumWorkers:      ctx.Int("workers"),
			Filter:          filter,
			Seed:            uint32(ctx.Uint("seed")),
		})
	}
	if err != nil {
		return err
	}
	displayRenderStats(stats, time.Since(start))

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	writeStart := time.Now()
	if err := writeFrame(f, format, fb, float32(ctx.Float64("exposure"))); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	logger.Noticef("wrote frame to %s in %d ms", out, time.Since(writeStart).Milliseconds())
	return nil
}

// writeFrame encodes fb into w and closes it. A failed close is reported
// since it can hide a short write.
func writeFrame(w io.WriteCloser, format renderer.ImageFormat, fb *renderer.Framebuffer, exposure float32) error {
	if err := renderer.Encode(w, format, fb, exposure); err != nil {
		w.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}

func renderOnce(sc *scene.Scene, integ integrator.Integrator, config renderer.Config) (*renderer.Framebuffer, []passStat, error) {
	rt, err := renderer.NewRaytracer(sc, integ, config)
	if err != nil {
		return nil, nil, err
	}
	fb, stats, err := rt.Render()
	if err != nil {
		return nil, nil, err
	}
	return fb, []passStat{{pass: 1, stats: stats, luminance: renderer.CalculateAverageLuminance(fb)}}, nil
}

// renderProgressive consumes every pass and stops early on an interrupt,
// keeping the most recent frame
func renderProgressive(sc *scene.Scene, integ integrator.Integrator, config renderer.ProgressiveConfig) (*renderer.Framebuffer, []passStat, error) {
	pr, err := renderer.NewProgressiveRaytracer(sc, integ, config)
	if err != nil {
		return nil, nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	passChan, _, errChan := pr.RenderProgressive(ctx, renderer.RenderOptions{})

	var (
		fb    *renderer.Framebuffer
		stats []passStat
	)
	for result := range passChan {
		fb = result.Image
		stats = append(stats, passStat{
			pass:      result.PassNumber,
			stats:     result.Stats,
			luminance: renderer.CalculateAverageLuminance(result.Image),
		})
		logger.Noticef("pass %d/%d done: %.0f spp in %s", result.PassNumber, config.MaxPasses, result.Stats.AverageSamples, result.Stats.RenderTime)
	}

	if err := <-errChan; err != nil {
		if fb == nil || ctx.Err() == nil {
			return nil, nil, err
		}
		logger.Warningf("render interrupted; keeping pass %d", stats[len(stats)-1].pass)
	}
	return fb, stats, nil
}

func displayRenderStats(stats []passStat, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Samples/pixel", "Min", "Max", "Dropped", "Avg luminance", "Render time"})
	for _, stat := range stats {
		table.Append([]string{
			fmt.Sprintf("%d", stat.pass),
			fmt.Sprintf("%.1f", stat.stats.AverageSamples),
			fmt.Sprintf("%d", stat.stats.MinSamples),
			fmt.Sprintf("%d", stat.stats.MaxSamplesUsed),
			fmt.Sprintf("%d", stat.stats.DroppedSamples),
			fmt.Sprintf("%.4f", stat.luminance),
			stat.stats.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", "", "", "", "", "TOTAL", total.String()})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
