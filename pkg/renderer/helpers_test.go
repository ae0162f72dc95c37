package renderer

import (
	"testing"

	"github.com/horenderer/pathtracer/pkg/integrator"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// newTwoSpheres builds a small two-sphere scene and its integrator
func newTwoSpheres(t *testing.T, width int) (*scene.Scene, integrator.Integrator) {
	t.Helper()
	sc, err := scene.NewBuiltin("two-spheres", scene.Options{Width: width, MaxDepth: 4})
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}
	return sc, integrator.NewPathTracingIntegrator(sc.Config.MaxDepth)
}

func assertSameFramebuffer(t *testing.T, a, b *Framebuffer) {
	t.Helper()
	if a.Width != b.Width || a.Height != b.Height {
		t.Fatalf("Framebuffer sizes differ: %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Pixel (%d,%d) differs: %v vs %v", i%a.Width, i/a.Width, a.Pix[i], b.Pix[i])
		}
	}
}
