package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Isotropic scatters light uniformly over the sphere inside a participating medium
type Isotropic struct {
	noEmission
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// Sample returns a uniform direction; Value is the single-scattering albedo
func (p *Isotropic) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	return BSDFSample{
		Direction: core.SampleUniformSphere(sampler.Get2D()),
		PDF:       core.UniformSpherePDF,
		Value:     p.Albedo.GetColor(hit.UV.X, hit.UV.Y),
	}
}

// Evaluate returns the phase function value scaled by albedo
func (p *Isotropic) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	albedo := p.Albedo.GetColor(hit.UV.X, hit.UV.Y)
	return core.UniformSpherePDF, albedo.Multiply(core.UniformSpherePDF)
}

func (p *Isotropic) IsDelta() bool      { return false }
func (p *Isotropic) IsVolumetric() bool { return true }

// HenyeyGreenstein is an anisotropic phase function. Positive G scatters forward.
type HenyeyGreenstein struct {
	noEmission
	Albedo Texture
	G      float64
}

// NewHenyeyGreenstein creates a phase function with asymmetry g in (-1, 1)
func NewHenyeyGreenstein(albedo core.Vec3, g float64) *HenyeyGreenstein {
	return &HenyeyGreenstein{Albedo: NewSolidColor(albedo), G: max(-0.999, min(0.999, g))}
}

// NewHenyeyGreensteinRGB reduces a per-channel asymmetry to its luminance
func NewHenyeyGreensteinRGB(albedo, g core.Vec3) *HenyeyGreenstein {
	return NewHenyeyGreenstein(albedo, g.Luminance())
}

// phaseHG evaluates the Henyey-Greenstein density for the cosine between
// the propagation direction and the scattered direction
func phaseHG(cosTheta, g float64) float64 {
	denom := 1 + g*g - 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(max(denom, 1e-12)))
}

// Sample draws a scattered direction from the phase function around the ray direction
func (p *HenyeyGreenstein) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	u := sampler.Get2D()
	g := p.G

	var cosTheta float64
	if math.Abs(g) < 1e-3 {
		cosTheta = 1 - 2*u.X
	} else {
		sq := (1 - g*g) / (1 + g - 2*g*u.X)
		cosTheta = (1 + g*g - sq*sq) / (2 * g)
	}
	cosTheta = max(-1, min(1, cosTheta))
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y

	forward := rayIn.Direction.Normalize()
	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	dir := core.NewONB(forward).ToWorld(local).Normalize()

	return BSDFSample{
		Direction: dir,
		PDF:       phaseHG(cosTheta, g),
		Value:     p.Albedo.GetColor(hit.UV.X, hit.UV.Y),
	}
}

// Evaluate returns the phase function density and its albedo-scaled value
func (p *HenyeyGreenstein) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	cosTheta := rayIn.Direction.Normalize().Dot(wo)
	pdf := phaseHG(cosTheta, p.G)
	return pdf, p.Albedo.GetColor(hit.UV.X, hit.UV.Y).Multiply(pdf)
}

func (p *HenyeyGreenstein) IsDelta() bool      { return false }
func (p *HenyeyGreenstein) IsVolumetric() bool { return true }
