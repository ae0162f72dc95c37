package scene

import (
	"math/rand"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/lights"
	"github.com/horenderer/pathtracer/pkg/material"
)

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 40

// NewSphereGridScene creates a large grid of small spheres with random
// materials, enough primitives to build the BVH in parallel
func NewSphereGridScene(opts Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.5, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       640,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	config := DefaultConfig()
	config.SamplesPerPixel = 64
	config.MaxDepth = 8

	s, err := newScene(cameraConfig, config, opts)
	if err != nil {
		return nil, err
	}

	// Fixed seed keeps the scene identical between runs
	random := rand.New(rand.NewSource(42))

	shapes := []geometry.Shape{
		NewGroundQuad(core.NewVec3(4.5, 0, 4.5), 200, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	spacing := 9.0 / float64(sphereGridSize-1)
	radius := spacing * 0.35
	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			center := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)
			color := core.NewVec3(random.Float64(), random.Float64(), random.Float64())

			var mat material.Material
			switch choice := random.Float64(); {
			case choice < 0.6:
				mat = material.NewLambertian(color.Multiply(0.8))
			case choice < 0.85:
				mat = material.NewPlastic(material.NewSolidColor(color), material.NewConstant(0.2), 1.5)
			case choice < 0.95:
				mat = material.NewMetal(material.AluminiumEta, material.AluminiumK, random.Float64()*0.4)
			default:
				mat = material.NewTintedGlass(material.NewSolidColor(color.Multiply(0.3).Add(core.NewVec3(0.7, 0.7, 0.7))), 1.5)
			}
			shapes = append(shapes, geometry.NewSphere(center, radius, mat))
		}
	}

	if err := s.Add(shapes...); err != nil {
		return nil, err
	}
	if err := s.AddLight(lights.NewUniformInfiniteLight(core.NewVec3(0.9, 0.9, 1.0))); err != nil {
		return nil, err
	}
	return s, nil
}
