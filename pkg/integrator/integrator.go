// Package integrator solves the rendering equation along camera rays.
package integrator

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray. The scene must be
	// preprocessed. Implementations must be safe for concurrent use as long
	// as each goroutine passes its own sampler.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3
}
