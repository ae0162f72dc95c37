package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// ErrUnknownScene is returned by NewBuiltin for an unregistered scene name
var ErrUnknownScene = errors.New("scene: unknown built-in scene")

// Options override built-in scene defaults. Zero fields keep the scene's own value.
type Options struct {
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	GroundTexture   string // Image file for the ground of scenes that use a textured ground
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string
	DisplayName string
	Description string
}

type builtinScene struct {
	info  SceneInfo
	build func(Options) (*Scene, error)
}

var builtins = map[string]builtinScene{
	"two-spheres": {
		info:  SceneInfo{ID: "two-spheres", DisplayName: "Two Spheres", Description: "Diffuse sphere on a diffuse ground under the sky gradient"},
		build: NewTwoSpheresScene,
	},
	"cornell": {
		info:  SceneInfo{ID: "cornell", DisplayName: "Cornell Box", Description: "Quad-lit box with plastic, conductor and frosted glass"},
		build: NewCornellScene,
	},
	"cornell-smoke": {
		info:  SceneInfo{ID: "cornell-smoke", DisplayName: "Cornell Smoke", Description: "Cornell box whose blocks are homogeneous media"},
		build: NewCornellSmokeScene,
	},
	"materials": {
		info:  SceneInfo{ID: "materials", DisplayName: "Material Gallery", Description: "Every surface material under a sphere light and sky"},
		build: NewMaterialsScene,
	},
	"sphere-grid": {
		info:  SceneInfo{ID: "sphere-grid", DisplayName: "Sphere Grid", Description: "Dense grid of small spheres under a uniform environment"},
		build: NewSphereGridScene,
	},
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// NewBuiltin builds and preprocesses the named scene
func NewBuiltin(id string, opts Options) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}

	s, err := b.build(opts)
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", id, err)
	}
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocess scene %q: %w", id, err)
	}
	return s, nil
}

// newScene validates the camera and scene configuration after applying opts
func newScene(cameraConfig geometry.CameraConfig, config Config, opts Options) (*Scene, error) {
	if opts.Width > 0 {
		cameraConfig.Width = opts.Width
	}
	if opts.SamplesPerPixel > 0 {
		config.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.MaxDepth > 0 {
		config.MaxDepth = opts.MaxDepth
	}

	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}
	return New(geometry.NewCamera(cameraConfig), config), nil
}

// NewGroundQuad creates a large horizontal quad centered at center with normal (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, material material.Material) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) points up
	return geometry.NewQuad(corner, core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), material)
}
