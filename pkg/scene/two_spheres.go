package scene

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
)

// NewTwoSpheresScene creates a diffuse sphere resting on a diffuse ground,
// lit only by the background gradient
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}

	config := DefaultConfig()
	config.SamplesPerPixel = 32
	config.MaxDepth = 8

	s, err := newScene(cameraConfig, config, opts)
	if err != nil {
		return nil, err
	}

	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 1000, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6)))
	sphere := geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5)))

	if err := s.Add(ground, sphere); err != nil {
		return nil, err
	}
	return s, nil
}
