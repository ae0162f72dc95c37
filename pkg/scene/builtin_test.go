package scene

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
	"github.com/horenderer/pathtracer/pkg/medium"
)

func TestNewBuiltin_AllScenes(t *testing.T) {
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := NewBuiltin(info.ID, Options{Width: 32})
			if err != nil {
				t.Fatalf("NewBuiltin(%q) failed: %v", info.ID, err)
			}
			if s.Camera.Width() != 32 {
				t.Errorf("Expected width override 32, got %d", s.Camera.Width())
			}
			if s.PrimitiveCount() == 0 {
				t.Error("Expected primitives in built-in scene")
			}
			if s.LightSampler() == nil {
				t.Error("Expected built-in scene to be preprocessed")
			}
			if info.DisplayName == "" || info.Description == "" {
				t.Error("Expected display name and description")
			}
		})
	}
}

func TestNewBuiltin_Options(t *testing.T) {
	s, err := NewBuiltin("two-spheres", Options{SamplesPerPixel: 3, MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if s.Config.SamplesPerPixel != 3 || s.Config.MaxDepth != 2 {
		t.Errorf("Expected overrides 3/2, got %d/%d", s.Config.SamplesPerPixel, s.Config.MaxDepth)
	}
	if len(s.Lights()) != 0 {
		t.Errorf("Two-sphere scene should be lit by the background only, got %d lights", len(s.Lights()))
	}
}

func TestNewBuiltin_Unknown(t *testing.T) {
	if _, err := NewBuiltin("no-such-scene", Options{}); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestList_Sorted(t *testing.T) {
	infos := List()
	if len(infos) != len(builtins) {
		t.Fatalf("Expected %d scenes, got %d", len(builtins), len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID >= infos[i].ID {
			t.Errorf("List not sorted at %d: %q >= %q", i, infos[i-1].ID, infos[i].ID)
		}
	}
}

func TestCornellSmoke_ContainsMedia(t *testing.T) {
	s, err := NewBuiltin("cornell-smoke", Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}
	// Five walls, the light quad and two media
	if s.PrimitiveCount() != 8 {
		t.Errorf("Expected 8 primitives, got %d", s.PrimitiveCount())
	}
}

func TestNewBuiltin_MissingGroundTexture(t *testing.T) {
	s, err := NewBuiltin("materials", Options{Width: 16, GroundTexture: filepath.Join(t.TempDir(), "missing.png")})
	if err != nil {
		t.Fatalf("A missing texture should not fail the scene: %v", err)
	}
	if s.PrimitiveCount() == 0 {
		t.Error("Expected primitives")
	}
}

func TestCornellSmoke_FogFromScatteringAndAbsorption(t *testing.T) {
	s, err := NewBuiltin("cornell-smoke", Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}

	var fog *medium.Homogeneous
	for _, shape := range s.Shapes() {
		if m, ok := shape.(*medium.Homogeneous); ok {
			if _, ok := m.Phase.(*material.HenyeyGreenstein); ok {
				fog = m
			}
		}
	}
	if fog == nil {
		t.Fatal("Expected a medium with a Henyey-Greenstein phase function")
	}

	wantSigmaT := core.NewVec3(0.008, 0.01, 0.012)
	if d := fog.SigmaT.Subtract(wantSigmaT).Abs().MaxComponent(); d > 1e-12 {
		t.Errorf("Expected sigma_t %v, got %v", wantSigmaT, fog.SigmaT)
	}

	phase := fog.Phase.(*material.HenyeyGreenstein)
	wantG := core.NewVec3(0.35, 0.4, 0.45).Luminance()
	if math.Abs(phase.G-wantG) > 1e-12 {
		t.Errorf("Expected asymmetry %f, got %f", wantG, phase.G)
	}
	if albedo := phase.Albedo.GetColor(0, 0); albedo.MaxComponent() >= 1 || albedo.X >= albedo.Z {
		t.Errorf("Expected a bluish albedo below one, got %v", albedo)
	}
}

func TestMaterialsScene_TexturedEmitterPanel(t *testing.T) {
	s, err := NewBuiltin("materials", Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}

	for _, shape := range s.Shapes() {
		quad, ok := shape.(*geometry.Quad)
		if !ok {
			continue
		}
		emission, ok := quad.Material.(*material.Emission)
		if !ok {
			continue
		}
		if _, ok := emission.Color.(*material.CheckerTexture); !ok {
			t.Fatalf("Expected a checkered emitter, got %T", emission.Color)
		}
		if emission.Emit(0.01, 0.01) == emission.Emit(0.01+1.0/6, 0.01) {
			t.Error("Expected neighbouring checks to emit different colors")
		}
		return
	}
	t.Error("Expected a textured emissive panel")
}

func TestSphereGrid_GlassIsTinted(t *testing.T) {
	s, err := NewBuiltin("sphere-grid", Options{Width: 16})
	if err != nil {
		t.Fatal(err)
	}

	white := core.NewVec3(1, 1, 1)
	glassCount := 0
	for _, shape := range s.Shapes() {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			continue
		}
		glass, ok := sphere.Material.(*material.Glass)
		if !ok {
			continue
		}
		glassCount++
		tint := glass.Albedo.GetColor(0.5, 0.5)
		if tint == white || tint.MaxComponent() > 1 || tint.X < 0.7-1e-12 {
			t.Errorf("Expected a pale tint, got %v", tint)
		}
	}
	if glassCount == 0 {
		t.Error("Expected some glass spheres in the grid")
	}
}
