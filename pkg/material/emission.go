package material

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// Emission is a light-emitting surface. It never scatters.
type Emission struct {
	Color     Texture
	Intensity float64
}

// NewEmission creates an emitter with a solid color scaled by intensity
func NewEmission(color core.Vec3, intensity float64) *Emission {
	return &Emission{Color: NewSolidColor(color), Intensity: intensity}
}

// NewTexturedEmission creates an emitter whose radiance varies with UV
func NewTexturedEmission(color Texture, intensity float64) *Emission {
	return &Emission{Color: color, Intensity: intensity}
}

// Sample always fails; emitters absorb incoming light
func (e *Emission) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	return BSDFSample{}
}

// Evaluate is zero for every direction
func (e *Emission) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	return 0, core.Vec3{}
}

// Emit returns the emitted radiance at (u, v)
func (e *Emission) Emit(u, v float64) core.Vec3 {
	return e.Color.GetColor(u, v).Multiply(e.Intensity)
}

func (e *Emission) IsDelta() bool      { return false }
func (e *Emission) IsVolumetric() bool { return false }
