package scene

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/lights"
	"github.com/horenderer/pathtracer/pkg/loaders"
	"github.com/horenderer/pathtracer/pkg/material"
)

// NewMaterialsScene lines up one sphere per surface material on a checkered
// ground, lit by a warm sphere light and a gradient sky
func NewMaterialsScene(opts Options) (*Scene, error) {
	cameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 1.6, 5.5),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         600,
		AspectRatio:   2.0,
		VFov:          35.0,
		DefocusAngle:  0.6,
		FocusDistance: 5.6,
	}

	config := DefaultConfig()
	config.SamplesPerPixel = 128
	config.MaxDepth = 16

	s, err := newScene(cameraConfig, config, opts)
	if err != nil {
		return nil, err
	}

	var groundTexture material.Texture = material.NewCheckerTexture(40, core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.2, 0.25))
	if opts.GroundTexture != "" {
		groundTexture = loaders.LoadImageTexture(opts.GroundTexture)
	}
	ground := NewGroundQuad(core.NewVec3(0, 0, 0), 40, material.NewDiffuse(groundTexture, 0))

	spheres := []material.Material{
		material.NewDiffuse(material.NewSolidColor(core.NewVec3(0.7, 0.3, 0.2)), 0.8),
		material.NewPlastic(material.NewSolidColor(core.NewVec3(0.1, 0.3, 0.7)), material.NewConstant(0.15), 1.5),
		&material.Conductor{
			Albedo:     material.NewSolidColor(core.NewVec3(1, 1, 1)),
			Roughness:  material.NewConstant(0.35),
			Anisotropy: 0.6,
			Eta:        material.CopperEta,
			K:          material.CopperK,
		},
		material.NewGlass(1.5),
		material.NewFrostedGlass(material.NewSolidColor(core.NewVec3(0.9, 1, 0.9)), material.NewConstant(0.3), 1.45),
	}

	shapes := []geometry.Shape{ground}
	for i, mat := range spheres {
		x := float64(i-len(spheres)/2) * 1.2
		shapes = append(shapes, geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, mat))
	}

	// Squashed satin sphere in front: mostly polished silver over a white diffuse base
	silver := material.NewMix(
		material.NewLambertian(core.NewVec3(0.9, 0.9, 0.9)),
		material.NewMetal(material.SilverEta, material.SilverK, 0.05),
		0.7,
	)
	squashed := geometry.NewTranslate(
		geometry.NewScale(geometry.NewSphere(core.NewVec3(0, 0, 0), 0.3, silver), core.NewVec3(1.5, 0.6, 1.5)),
		core.NewVec3(0, 0.18, 1.3),
	)
	shapes = append(shapes, squashed)

	// Glowing checkered panel behind the row; it is seen and bounced off but not light-sampled
	panelGlow := material.NewTexturedEmission(
		material.NewCheckerTexture(6, core.NewVec3(1, 0.85, 0.6), core.NewVec3(0.2, 0.25, 0.4)), 1.5)
	shapes = append(shapes, geometry.NewQuad(core.NewVec3(-3.5, 0.2, -2.5), core.NewVec3(7, 0, 0), core.NewVec3(0, 2.5, 0), panelGlow))

	if err := s.Add(shapes...); err != nil {
		return nil, err
	}
	if err := s.AddSphereLight(core.NewVec3(-4, 6, 3), 1, core.NewVec3(12, 10, 8)); err != nil {
		return nil, err
	}
	if err := s.AddLight(lights.NewGradientInfiniteLight(core.NewVec3(0.3, 0.45, 0.7), core.NewVec3(0.6, 0.6, 0.6))); err != nil {
		return nil, err
	}
	return s, nil
}
