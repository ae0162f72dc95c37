package material

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// Complex refractive indices of common metals at RGB wavelengths
var (
	GoldEta      = core.NewVec3(0.143, 0.374, 1.442)
	GoldK        = core.NewVec3(3.983, 2.385, 1.603)
	SilverEta    = core.NewVec3(0.155, 0.116, 0.138)
	SilverK      = core.NewVec3(4.828, 3.122, 2.147)
	CopperEta    = core.NewVec3(0.200, 0.924, 1.102)
	CopperK      = core.NewVec3(3.912, 2.452, 2.142)
	AluminiumEta = core.NewVec3(1.657, 0.880, 0.521)
	AluminiumK   = core.NewVec3(9.224, 6.270, 4.837)
)

// Conductor is a rough metal with a GGX microfacet lobe and complex Fresnel
type Conductor struct {
	noEmission
	Albedo     Texture // Tint multiplied onto the Fresnel reflectance
	Roughness  Texture // Perceptual roughness in the first channel
	Anisotropy float64 // 0 isotropic, 1 maximally stretched along the tangent
	Eta        core.Vec3
	K          core.Vec3
}

// NewConductor creates a metal from textured parameters and a complex index of refraction
func NewConductor(albedo, roughness Texture, eta, k core.Vec3) *Conductor {
	return &Conductor{Albedo: albedo, Roughness: roughness, Eta: eta, K: k}
}

// NewMetal creates an untinted metal with a constant roughness
func NewMetal(eta, k core.Vec3, roughness float64) *Conductor {
	return NewConductor(NewSolidColor(core.NewVec3(1, 1, 1)), NewConstant(roughness), eta, k)
}

func (c *Conductor) alphas(hit *HitRecord) (float64, float64) {
	return roughnessToAlpha(scalar(c.Roughness, hit.UV), c.Anisotropy)
}

// Sample reflects the view direction about a visible GGX microfacet normal
func (c *Conductor) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	if v.Z <= 0 {
		return BSDFSample{}
	}

	ax, ay := c.alphas(hit)
	h := core.SampleGGXVNDF(v, ax, ay, sampler.Get2D())
	l := Reflect(v, h)
	if l.Z <= 0 {
		return BSDFSample{}
	}

	wo := frame.ToWorld(l).Normalize()
	pdf, value := c.Evaluate(rayIn, hit, wo)
	return BSDFSample{Direction: wo, PDF: pdf, Value: value}
}

// Evaluate returns the microfacet reflectance and the visible-normal pdf
func (c *Conductor) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	l := frame.ToLocal(wo)
	if v.Z <= 0 || l.Z <= 0 {
		return 0, core.Vec3{}
	}

	h := v.Add(l)
	if h.NearZero() {
		return 0, core.Vec3{}
	}
	h = h.Normalize()

	ax, ay := c.alphas(hit)
	d := DistributionGGX(h, ax, ay)
	g1v := SmithG1(v, ax, ay)
	g1l := SmithG1(l, ax, ay)
	fresnel := FresnelConductor(v.Dot(h), c.Eta, c.K)
	tint := c.Albedo.GetColor(hit.UV.X, hit.UV.Y)

	f := fresnel.MultiplyVec(tint).Multiply(d * g1v * g1l / (4 * v.Z * l.Z))
	pdf := g1v * d / (4 * v.Z)
	return pdf, f
}

func (c *Conductor) IsDelta() bool      { return false }
func (c *Conductor) IsVolumetric() bool { return false }
