package geometry

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool)
	BoundingBox() core.AABB
}

// Preprocessor interface for objects that need scene preprocessing
type Preprocessor interface {
	Preprocess(worldCenter core.Vec3, worldRadius float64) error
}
