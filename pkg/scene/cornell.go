package scene

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/geometry"
	"github.com/horenderer/pathtracer/pkg/material"
	"github.com/horenderer/pathtracer/pkg/medium"
)

// cornellBoxSize is the edge length of the standard Cornell box
const cornellBoxSize = 555.0

func cornellCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		Center:      core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        40.0,
	}
}

func cornellConfig() Config {
	return Config{
		SamplesPerPixel: 128,
		MaxDepth:        12,
		TopColor:        core.NewVec3(0, 0, 0),
		BottomColor:     core.NewVec3(0, 0, 0),
	}
}

// addCornellShell adds the five walls and the ceiling light
func addCornellShell(s *Scene, lightEmission core.Vec3) error {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	size := cornellBoxSize
	floor := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white)
	ceiling := geometry.NewQuad(core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), white)
	backWall := geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), white)
	leftWall := geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), red)
	rightWall := geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size), green)

	if err := s.Add(floor, ceiling, backWall, leftWall, rightWall); err != nil {
		return err
	}

	// X × Z faces down into the box
	lightSize := 130.0
	lightOffset := (size - lightSize) / 2.0
	return s.AddQuadLight(
		core.NewVec3(lightOffset, size-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		lightEmission,
	)
}

// cornellBlock returns a box resting on the floor, turned about Y and moved into place
func cornellBlock(dimensions core.Vec3, degrees float64, position core.Vec3, mat material.Material) geometry.Shape {
	box := geometry.NewBox(dimensions.Multiply(0.5), dimensions, mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, degrees), position)
}

// NewCornellScene creates the Cornell box with a plastic block, a conductor
// sphere and a frosted glass sphere
func NewCornellScene(opts Options) (*Scene, error) {
	s, err := newScene(cornellCamera(), cornellConfig(), opts)
	if err != nil {
		return nil, err
	}
	if err := addCornellShell(s, core.NewVec3(15, 15, 15)); err != nil {
		return nil, err
	}

	plastic := material.NewPlastic(
		material.NewSolidColor(core.NewVec3(0.73, 0.73, 0.73)),
		material.NewConstant(0.3),
		1.5,
	)
	gold := material.NewConductor(
		material.NewSolidColor(core.NewVec3(1, 1, 1)),
		material.NewConstant(0.2),
		material.GoldEta, material.GoldK,
	)
	frosted := material.NewFrostedGlass(
		material.NewSolidColor(core.NewVec3(1, 1, 1)),
		material.NewConstant(0.15),
		1.5,
	)

	tallBlock := cornellBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), plastic)
	goldSphere := geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, gold)
	frostedSphere := geometry.NewSphere(core.NewVec3(400, 70, 120), 70, frosted)

	if err := s.Add(tallBlock, goldSphere, frostedSphere); err != nil {
		return nil, err
	}
	return s, nil
}

// NewCornellSmokeScene creates the Cornell box with its two blocks replaced by
// dark and light homogeneous media
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	s, err := newScene(cornellCamera(), cornellConfig(), opts)
	if err != nil {
		return nil, err
	}
	if err := addCornellShell(s, core.NewVec3(7, 7, 7)); err != nil {
		return nil, err
	}

	tall := cornellBlock(core.NewVec3(165, 330, 165), 15, core.NewVec3(265, 0, 295), nil)
	short := cornellBlock(core.NewVec3(165, 165, 165), -18, core.NewVec3(130, 0, 65), nil)

	darkSmoke := medium.NewHomogeneous(tall, 0.01, material.NewIsotropic(core.NewVec3(0.05, 0.05, 0.05)))
	// Bluish forward-scattering fog that absorbs a little more red
	sigmaS := core.NewVec3(0.007, 0.0095, 0.0115)
	sigmaA := core.NewVec3(0.001, 0.0005, 0.0005)
	fogAlbedo := sigmaS.DivideVec(sigmaS.Add(sigmaA))
	lightFog := medium.NewHomogeneousScattering(short, sigmaS, sigmaA,
		material.NewHenyeyGreensteinRGB(fogAlbedo, core.NewVec3(0.35, 0.4, 0.45)))

	if err := s.Add(darkSmoke, lightFog); err != nil {
		return nil, err
	}
	return s, nil
}
