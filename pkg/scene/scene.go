package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/lights"
	"github.com/horenderer/pathtracer/pkg/log"
	"github.com/horenderer/pathtracer/pkg/material"
)

// ErrSceneBuilt is returned when a scene is modified after its BVH was built
var ErrSceneBuilt = errors.New("scene: cannot modify a scene after it has been built")

// shadowEpsilon shortens shadow rays so they stop just before the sampled light point
const shadowEpsilon = 1e-4

var logger = log.New("scene")

// Config contains per-scene rendering configuration
type Config struct {
	SamplesPerPixel int       // Number of samples per pixel
	MaxDepth        int       // Number of bounces a path may take
	TopColor        core.Vec3 // Background gradient color straight up
	BottomColor     core.Vec3 // Background gradient color straight down
}

// DefaultConfig returns a sky gradient background with moderate sampling
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 64,
		MaxDepth:        8,
		TopColor:        core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:     core.NewVec3(1.0, 1.0, 1.0),
	}
}

// Validate checks the configuration for values that cannot produce an image
func (c Config) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth must be positive, got %d", c.MaxDepth)
	}
	return nil
}

// Scene contains everything needed for rendering. Primitives and lights are
// added first; after BuildBVH the scene is immutable and safe for concurrent reads.
type Scene struct {
	Camera *geometry.Camera
	Config Config

	shapes       []geometry.Shape
	lights       []lights.Light
	lightIndex   map[any]int // Light shape -> index in lights
	environment  []lights.Light
	bvh          *geometry.BVH
	lightSampler *lights.PowerLightSampler
	worldCenter  core.Vec3
	worldRadius  float64
}

// New creates an empty scene
func New(camera *geometry.Camera, config Config) *Scene {
	return &Scene{
		Camera:     camera,
		Config:     config,
		lightIndex: make(map[any]int),
	}
}

// Add adds primitives to the scene
func (s *Scene) Add(shapes ...geometry.Shape) error {
	if s.bvh != nil {
		return ErrSceneBuilt
	}
	for _, shape := range shapes {
		if shape == nil {
			return errors.New("scene: cannot add a nil shape")
		}
	}
	s.shapes = append(s.shapes, shapes...)
	return nil
}

// AddLight adds a light. Area lights also register their shape as a primitive.
func (s *Scene) AddLight(light lights.Light) error {
	if s.bvh != nil {
		return ErrSceneBuilt
	}

	index := len(s.lights)
	s.lights = append(s.lights, light)

	shape := light.Shape()
	if shape == nil {
		s.environment = append(s.environment, light)
		return nil
	}
	s.lightIndex[shape] = index
	s.shapes = append(s.shapes, shape)
	return nil
}

// AddQuadLight adds a rectangular area light to the scene
func (s *Scene) AddQuadLight(corner, u, v core.Vec3, emission core.Vec3) error {
	return s.AddLight(lights.NewQuadLight(corner, u, v, material.NewEmission(emission, 1)))
}

// AddSphereLight adds a spherical light to the scene
func (s *Scene) AddSphereLight(center core.Vec3, radius float64, emission core.Vec3) error {
	return s.AddLight(lights.NewSphereLight(center, radius, material.NewEmission(emission, 1)))
}

// BuildBVH builds the acceleration structure and freezes the scene
func (s *Scene) BuildBVH() {
	if s.bvh != nil {
		return
	}

	s.bvh = geometry.NewBVH(s.shapes)
	if s.bvh.Root != nil {
		s.worldCenter, s.worldRadius = s.bvh.BoundingBox().BoundingSphere()
	}

	stats := s.bvh.Stats()
	logger.Debugf("built BVH over %d primitives: %d nodes, %d leaves, max depth %d, avg leaf depth %.1f",
		s.bvh.Len(), stats.Nodes, stats.Leaves, stats.MaxDepth, stats.AvgDepth)
}

// BuildLightTable builds the power-weighted light selection table.
// Lights at infinity need Preprocess first for a meaningful power estimate.
func (s *Scene) BuildLightTable() {
	s.lightSampler = lights.NewPowerLightSampler(s.lights)
	if len(s.lights) > 0 {
		logger.Debugf("light table: %s", s.lightSampler)
	}
}

// Preprocess builds the BVH, hands scene bounds to every Preprocessor and
// builds the light table. Calling it again is a no-op.
func (s *Scene) Preprocess() error {
	if s.lightSampler != nil {
		return nil
	}

	s.BuildBVH()

	for _, light := range s.lights {
		if preprocessor, ok := light.(geometry.Preprocessor); ok {
			if err := preprocessor.Preprocess(s.worldCenter, s.worldRadius); err != nil {
				return fmt.Errorf("preprocess light: %w", err)
			}
		}
	}
	for _, shape := range s.shapes {
		if preprocessor, ok := shape.(geometry.Preprocessor); ok {
			if err := preprocessor.Preprocess(s.worldCenter, s.worldRadius); err != nil {
				return fmt.Errorf("preprocess shape: %w", err)
			}
		}
	}

	s.BuildLightTable()
	logger.Infof("scene ready: %d primitives, %d lights, world radius %.3g", len(s.shapes), len(s.lights), s.worldRadius)
	return nil
}

// Hit finds the closest intersection along the ray
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	if s.bvh == nil {
		return nil, false
	}
	return s.bvh.Hit(ray, tMin, tMax)
}

// LightFor returns the light whose shape produced hit, if any
func (s *Scene) LightFor(hit *material.HitRecord) (lights.Light, int, bool) {
	if hit == nil || hit.Source == nil {
		return nil, -1, false
	}
	index, ok := s.lightIndex[hit.Source]
	if !ok {
		return nil, -1, false
	}
	return s.lights[index], index, true
}

// Lights returns the scene lights in index order
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// EnvironmentLights returns the lights at infinity
func (s *Scene) EnvironmentLights() []lights.Light {
	return s.environment
}

// LightSampler returns the selection table, or nil before BuildLightTable
func (s *Scene) LightSampler() *lights.PowerLightSampler {
	return s.lightSampler
}

// LightPMF returns the probability of selecting light index
func (s *Scene) LightPMF(index int) float64 {
	if s.lightSampler == nil {
		return 0
	}
	return s.lightSampler.PMF(index)
}

// Shapes returns the primitives in insertion order
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// PrimitiveCount returns the number of top-level primitives
func (s *Scene) PrimitiveCount() int {
	return len(s.shapes)
}

// Bounds returns the center and radius of the sphere bounding the finite geometry
func (s *Scene) Bounds() (core.Vec3, float64) {
	return s.worldCenter, s.worldRadius
}

// Background returns radiance for a ray that escapes the scene: the sum of
// environment lights, or the fixed gradient when there are none
func (s *Scene) Background(ray core.Ray) core.Vec3 {
	if len(s.environment) == 0 {
		return lights.Gradient(s.Config.TopColor, s.Config.BottomColor, ray.Direction.Normalize())
	}

	var radiance core.Vec3
	for _, light := range s.environment {
		_, le := light.Evaluate(ray, nil)
		radiance = radiance.Add(le)
	}
	return radiance
}

// Visible casts a shadow ray from a surface point toward a light sample. The
// light counts as visible when nothing lies in between or the blocker is itself emissive.
func (s *Scene) Visible(point, normal core.Vec3, sample lights.LightSample) bool {
	ray := core.SpawnRay(point, normal, sample.Direction)

	tMax := math.Inf(1)
	if !math.IsInf(sample.Distance, 1) {
		tMax = sample.Point.Subtract(ray.Origin).Length() * (1 - shadowEpsilon)
	}

	hit, blocked := s.Hit(ray, core.RayEpsilon, tMax)
	if !blocked {
		return true
	}
	return hit.Material != nil && !hit.Material.Emit(hit.UV.X, hit.UV.Y).IsZero()
}
