package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/lights"
	"github.com/horenderer/pathtracer/pkg/material"
	"github.com/horenderer/pathtracer/pkg/sampler"
	"github.com/horenderer/pathtracer/pkg/scene"
)

func newTestScene(t *testing.T, config scene.Config) *scene.Scene {
	t.Helper()
	return scene.New(geometry.NewCamera(geometry.DefaultCameraConfig()), config)
}

func blackConfig() scene.Config {
	config := scene.DefaultConfig()
	config.TopColor = core.Vec3{}
	config.BottomColor = core.Vec3{}
	return config
}

// estimate averages n path samples along rays produced by rayAt
func estimate(pt *PathTracingIntegrator, sc *scene.Scene, n int, rayAt func(i int) core.Ray) core.Vec3 {
	s := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	var sum core.Vec3
	for i := 0; i < n; i++ {
		sum = sum.Add(pt.RayColor(rayAt(i), sc, s))
	}
	return sum.Multiply(1 / float64(n))
}

func assertNear(t *testing.T, name string, got, want core.Vec3, tolerance float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tolerance || math.Abs(got.Y-want.Y) > tolerance || math.Abs(got.Z-want.Z) > tolerance {
		t.Errorf("%s: expected %v, got %v (tolerance %g)", name, want, got, tolerance)
	}
}

func TestPathTracing_BackgroundOnMiss(t *testing.T) {
	sc := newTestScene(t, scene.DefaultConfig())
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracingIntegrator(8)
	s := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"up", core.NewVec3(0, 1, 0), sc.Config.TopColor},
		{"down", core.NewVec3(0, -1, 0), sc.Config.BottomColor},
		{"horizon", core.NewVec3(1, 0, 0), sc.Config.TopColor.Add(sc.Config.BottomColor).Multiply(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pt.RayColor(core.NewRay(core.Vec3{}, tt.direction), sc, s)
			assertNear(t, tt.name, got, tt.expected, 1e-12)
		})
	}
}

func TestPathTracing_DepthZeroIsBlack(t *testing.T) {
	sc := newTestScene(t, scene.DefaultConfig())
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracingIntegrator(0)
	got := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), sc, core.NewRandomSampler(rand.New(rand.NewSource(1))))
	if !got.IsZero() {
		t.Errorf("Expected black for zero depth, got %v", got)
	}
}

func TestPathTracing_EmitterSeenDirectly(t *testing.T) {
	sc := newTestScene(t, blackConfig())
	// Faces +Z toward the origin
	emission := core.NewVec3(4, 3, 2)
	if err := sc.AddQuadLight(core.NewVec3(-1, -1, -5), core.NewVec3(2, 0, 0), core.NewVec3(0, 2, 0), emission); err != nil {
		t.Fatal(err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracingIntegrator(4)
	s := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	front := pt.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), sc, s)
	assertNear(t, "front", front, emission, 1e-12)

	back := pt.RayColor(core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1)), sc, s)
	if !back.IsZero() {
		t.Errorf("Expected the back of a one-sided light to be black, got %v", back)
	}
}

// A convex diffuse object inside a uniform environment reflects albedo × radiance
func TestPathTracing_FurnaceDiffuse(t *testing.T) {
	tests := []struct {
		name     string
		albedo   float64
		maxDepth int
	}{
		{"direct only", 0.5, 1},
		{"multiple bounces", 0.5, 6},
		{"bright", 0.9, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := newTestScene(t, scene.DefaultConfig())
			albedo := core.NewVec3(tt.albedo, tt.albedo, tt.albedo)
			if err := sc.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewLambertian(albedo))); err != nil {
				t.Fatal(err)
			}
			if err := sc.AddLight(lights.NewUniformInfiniteLight(core.NewVec3(1, 1, 1))); err != nil {
				t.Fatal(err)
			}
			if err := sc.Preprocess(); err != nil {
				t.Fatal(err)
			}

			pt := NewPathTracingIntegrator(tt.maxDepth)
			got := estimate(pt, sc, 20000, func(i int) core.Ray {
				return core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
			})
			assertNear(t, tt.name, got, albedo, 0.03*tt.albedo)
		})
	}
}

// Clear glass only redirects light, so a glass sphere in a uniform environment is invisible
func TestPathTracing_FurnaceGlass(t *testing.T) {
	sc := newTestScene(t, scene.DefaultConfig())
	if err := sc.Add(geometry.NewSphere(core.Vec3{}, 1, material.NewGlass(1.5))); err != nil {
		t.Fatal(err)
	}
	if err := sc.AddLight(lights.NewUniformInfiniteLight(core.NewVec3(1, 1, 1))); err != nil {
		t.Fatal(err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}

	pt := NewPathTracingIntegrator(64)
	random := rand.New(rand.NewSource(7))
	got := estimate(pt, sc, 2000, func(i int) core.Ray {
		// Near-normal incidence keeps paths from bouncing inside for long
		origin := core.NewVec3(random.Float64()-0.5, random.Float64()-0.5, 5)
		return core.NewRay(origin, core.NewVec3(0, 0, -1))
	})
	assertNear(t, "glass", got, core.NewVec3(1, 1, 1), 1e-3)
}

// cornerFormFactor is the form factor from a differential area to a parallel
// rectangle of size a × b at height d, with one corner directly above
func cornerFormFactor(a, b, d float64) float64 {
	x, y := a/d, b/d
	sx, sy := math.Sqrt(1+x*x), math.Sqrt(1+y*y)
	return (x/sx*math.Atan(y/sx) + y/sy*math.Atan(x/sy)) / (2 * math.Pi)
}

func TestPathTracing_DirectLightingMatchesFormFactor(t *testing.T) {
	sc := newTestScene(t, blackConfig())
	albedo := 0.8
	if err := sc.Add(geometry.NewQuad(core.NewVec3(-5, 0, 5), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, -10),
		material.NewLambertian(core.NewVec3(albedo, albedo, albedo)))); err != nil {
		t.Fatal(err)
	}
	// Unit square at height 1 centered above the origin, facing down
	emission := 5.0
	if err := sc.AddQuadLight(core.NewVec3(-0.5, 1, -0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1),
		core.NewVec3(emission, emission, emission)); err != nil {
		t.Fatal(err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}

	expected := albedo * emission * 4 * cornerFormFactor(0.5, 0.5, 1)
	pt := NewPathTracingIntegrator(1)
	got := estimate(pt, sc, 20000, func(i int) core.Ray {
		return core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	})
	assertNear(t, "direct", got, core.NewVec3(expected, expected, expected), 0.03*expected)
}

// Lights added as plain primitives are only found by BSDF sampling and must
// still converge to the same answer
func TestPathTracing_UnregisteredEmitter(t *testing.T) {
	albedo := 0.8
	emission := 5.0
	floor := material.NewLambertian(core.NewVec3(albedo, albedo, albedo))
	glow := material.NewEmission(core.NewVec3(emission, emission, emission), 1)

	sc := newTestScene(t, blackConfig())
	if err := sc.Add(
		geometry.NewQuad(core.NewVec3(-5, 0, 5), core.NewVec3(10, 0, 0), core.NewVec3(0, 0, -10), floor),
		geometry.NewQuad(core.NewVec3(-0.5, 1, -0.5), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), glow),
	); err != nil {
		t.Fatal(err)
	}
	if err := sc.Preprocess(); err != nil {
		t.Fatal(err)
	}

	expected := albedo * emission * 4 * cornerFormFactor(0.5, 0.5, 1)
	pt := NewPathTracingIntegrator(1)
	got := estimate(pt, sc, 40000, func(i int) core.Ray {
		return core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0))
	})
	assertNear(t, "bsdf only", got, core.NewVec3(expected, expected, expected), 0.05*expected)
}

func TestPathTracing_Deterministic(t *testing.T) {
	sc, err := scene.NewBuiltin("cornell", scene.Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracingIntegrator(sc.Config.MaxDepth)

	render := func() []core.Vec3 {
		s := sampler.New(sampler.FilterTent, 3)
		var out []core.Vec3
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				s.StartPixelSample(x+6, y+6, 5)
				ray := sc.Camera.GenerateRay(x+6, y+6, s, s.PixelOffset())
				out = append(out, pt.RayColor(ray, sc, s))
			}
		}
		return out
	}

	first, second := render(), render()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Pixel %d differs between runs: %v vs %v", i, first[i], second[i])
		}
		if !first[i].IsFinite() {
			t.Errorf("Pixel %d is not finite: %v", i, first[i])
		}
	}
}

func TestPathTracing_MediumStaysFinite(t *testing.T) {
	sc, err := scene.NewBuiltin("cornell-smoke", scene.Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}
	pt := NewPathTracingIntegrator(sc.Config.MaxDepth)
	s := core.NewRandomSampler(rand.New(rand.NewSource(11)))

	for i := 0; i < 200; i++ {
		ray := sc.Camera.GenerateRay(i%16, i/16, s, core.NewVec2(0.5, 0.5))
		c := pt.RayColor(ray, sc, s)
		if !c.IsFinite() || c.X < 0 || c.Y < 0 || c.Z < 0 {
			t.Fatalf("Sample %d produced invalid radiance %v", i, c)
		}
	}
}
