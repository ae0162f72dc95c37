package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Diffuse is a rough diffuse reflector using the Oren-Nayar model.
// Zero roughness reduces to Lambertian reflection.
type Diffuse struct {
	noEmission
	Albedo    Texture // Base color/reflectance (can be solid or textured)
	Roughness float64 // Oren-Nayar sigma in radians
}

// NewDiffuse creates a diffuse material with a textured albedo
func NewDiffuse(albedo Texture, roughness float64) *Diffuse {
	return &Diffuse{Albedo: albedo, Roughness: roughness}
}

// NewLambertian creates a smooth diffuse material with a solid color
func NewLambertian(albedo core.Vec3) *Diffuse {
	return NewDiffuse(NewSolidColor(albedo), 0)
}

// Sample draws a cosine-weighted direction around the normal
func (d *Diffuse) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	local := core.SampleCosineHemisphere(sampler.Get2D())
	wo := orFallback(core.NewONB(hit.Normal).ToWorld(local), hit.Normal)

	pdf, value := d.Evaluate(rayIn, hit, wo)
	return BSDFSample{Direction: wo, PDF: pdf, Value: value}
}

// Evaluate returns the Oren-Nayar reflectance and the cosine pdf
func (d *Diffuse) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	v := viewDirection(rayIn)
	cosL := wo.Dot(hit.Normal)
	cosV := v.Dot(hit.Normal)
	if cosL <= 0 || cosV <= 0 {
		return 0, core.Vec3{}
	}

	sigma2 := d.Roughness * d.Roughness
	a := 1 - 0.5*sigma2/(sigma2+0.33)
	b := 0.45 * sigma2 / (sigma2 + 0.09)

	// Projected azimuthal term, divided by the larger cosine when positive
	s := wo.Dot(v) - cosL*cosV
	if s > 0 {
		s /= max(cosL, cosV)
	}

	albedo := d.Albedo.GetColor(hit.UV.X, hit.UV.Y)
	f := albedo.Multiply((a + b*s) / math.Pi)
	return core.CosineHemispherePDF(cosL), f
}

func (d *Diffuse) IsDelta() bool      { return false }
func (d *Diffuse) IsVolumetric() bool { return false }
