package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{"default", DefaultConfig(), true},
		{"zero samples", Config{SamplesPerPixel: 0, TileSize: 8}, false},
		{"zero tile", Config{SamplesPerPixel: 1, TileSize: 0}, false},
		{"negative workers", Config{SamplesPerPixel: 1, TileSize: 8, NumWorkers: -2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestNewRaytracer_RequiresPreprocessedScene(t *testing.T) {
	sc := scene.New(geometry.NewCamera(geometry.DefaultCameraConfig()), scene.DefaultConfig())
	_, err := NewRaytracer(sc, integrator.NewPathTracingIntegrator(4), DefaultConfig())
	if !errors.Is(err, ErrSceneNotReady) {
		t.Errorf("Expected ErrSceneNotReady, got %v", err)
	}
}

func TestRaytracer_Render(t *testing.T) {
	sc, integ := newTwoSpheres(t, 20)
	rt, err := NewRaytracer(sc, integ, Config{SamplesPerPixel: 3, TileSize: 7, NumWorkers: 2})
	if err != nil {
		t.Fatal(err)
	}

	fb, stats, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	if fb.Width != sc.Camera.Width() || fb.Height != sc.Camera.Height() {
		t.Errorf("Expected %dx%d framebuffer, got %dx%d", sc.Camera.Width(), sc.Camera.Height(), fb.Width, fb.Height)
	}
	if len(fb.Pix) != fb.Width*fb.Height {
		t.Errorf("Expected %d pixels, got %d", fb.Width*fb.Height, len(fb.Pix))
	}
	if stats.TotalSamples != 3*fb.Width*fb.Height || stats.MinSamples != 3 || stats.AverageSamples != 3 {
		t.Errorf("Unexpected sample stats: %+v", stats)
	}

	for i, p := range fb.Pix {
		if p[3] != 1 {
			t.Fatalf("Pixel %d not opaque: %v", i, p)
		}
		if p[0] < 0 || p[1] < 0 || p[2] < 0 {
			t.Fatalf("Pixel %d has negative radiance: %v", i, p)
		}
	}
}

// The image depends only on the seed, never on worker count or tiling
func TestRaytracer_DeterministicAcrossWorkers(t *testing.T) {
	sc, integ := newTwoSpheres(t, 24)

	render := func(workers, tileSize int) *Framebuffer {
		rt, err := NewRaytracer(sc, integ, Config{SamplesPerPixel: 2, TileSize: tileSize, NumWorkers: workers, Filter: sampler.FilterGaussian, Seed: 5})
		if err != nil {
			t.Fatal(err)
		}
		fb, _, err := rt.Render()
		if err != nil {
			t.Fatal(err)
		}
		return fb
	}

	reference := render(1, 64)
	assertSameFramebuffer(t, reference, render(4, 3))
	assertSameFramebuffer(t, reference, render(7, 16))
}

// Pixels that only see sky average the background gradient
func TestRaytracer_SkyPixels(t *testing.T) {
	sc, integ := newTwoSpheres(t, 16)
	rt, err := NewRaytracer(sc, integ, Config{SamplesPerPixel: 4, TileSize: 8, NumWorkers: 2})
	if err != nil {
		t.Fatal(err)
	}
	fb, _, err := rt.Render()
	if err != nil {
		t.Fatal(err)
	}

	top, bottom := sc.Config.TopColor, sc.Config.BottomColor
	for x := 0; x < fb.Width; x++ {
		c := fb.Color(x, 0)
		for _, v := range []struct{ got, lo, hi float64 }{
			{c.X, min(top.X, bottom.X), max(top.X, bottom.X)},
			{c.Y, min(top.Y, bottom.Y), max(top.Y, bottom.Y)},
			{c.Z, min(top.Z, bottom.Z), max(top.Z, bottom.Z)},
		} {
			if v.got < v.lo-1e-6 || v.got > v.hi+1e-6 {
				t.Fatalf("Sky pixel (%d,0) = %v outside the gradient", x, c)
			}
		}
	}
}

func TestTileRenderer_NonFiniteSamplesDropped(t *testing.T) {
	sc, _ := newTwoSpheres(t, 4)
	tr := NewTileRenderer(sc, nanIntegrator{}, sampler.New(sampler.FilterUniform, 0))

	pixelStats := newPixelStats(sc.Camera.Width(), sc.Camera.Height())
	stats := tr.RenderTileBounds(NewTileGrid(4, 1, 4)[0].Bounds, pixelStats, 2)

	if stats.DroppedSamples != 8 {
		t.Errorf("Expected 8 dropped samples, got %d", stats.DroppedSamples)
	}
	for x := 0; x < 4; x++ {
		if c := pixelStats[0][x].GetColor(); !c.IsZero() {
			t.Errorf("Expected dropped samples to count as black, got %v", c)
		}
	}
}

type nanIntegrator struct{}

func (nanIntegrator) RayColor(core.Ray, *scene.Scene, core.Sampler) core.Vec3 {
	return core.NewVec3(0, 1, 0).Multiply(math.NaN())
}
