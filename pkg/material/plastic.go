package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Plastic is a diffuse base under a rough dielectric coat.
//
// The coat reflects with a GGX lobe. Light that enters the coat is scattered
// by the base and bounces between base and coat; the average internal Fresnel
// reflectance accounts for those bounces in closed form.
type Plastic struct {
	noEmission
	Albedo    Texture // Diffuse base color
	Roughness Texture // Coat roughness in the first channel
	IOR       float64 // Index of refraction of the coat

	fdrInternal float64
}

// NewPlastic creates a coated diffuse material
func NewPlastic(albedo, roughness Texture, ior float64) *Plastic {
	return &Plastic{
		Albedo:      albedo,
		Roughness:   roughness,
		IOR:         ior,
		fdrInternal: FresnelDiffuseReflectance(1 / ior),
	}
}

// specularProbability returns the chance of sampling the coat for a view cosine
func (p *Plastic) specularProbability(cosV float64, albedo core.Vec3) float64 {
	fi := FresnelDielectric(cosV, p.IOR)
	diffuseWeight := albedo.Luminance()
	specularWeight := 1.0

	denom := fi*specularWeight + (1-fi)*diffuseWeight
	if denom <= 0 {
		return 1
	}
	return fi * specularWeight / denom
}

// Sample picks the coat or the base lobe and returns the combined value and pdf
func (p *Plastic) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	if v.Z <= 0 {
		return BSDFSample{}
	}

	albedo := p.Albedo.GetColor(hit.UV.X, hit.UV.Y)
	u := sampler.Get1D()
	dir := sampler.Get2D()

	var l core.Vec3
	if u < p.specularProbability(v.Z, albedo) {
		ax, ay := roughnessToAlpha(scalar(p.Roughness, hit.UV), 0)
		h := core.SampleGGXVNDF(v, ax, ay, dir)
		l = Reflect(v, h)
	} else {
		l = core.SampleCosineHemisphere(dir)
	}
	if l.Z <= 0 {
		return BSDFSample{}
	}

	wo := frame.ToWorld(l).Normalize()
	pdf, value := p.Evaluate(rayIn, hit, wo)
	return BSDFSample{Direction: wo, PDF: pdf, Value: value}
}

// Evaluate sums the coat and base lobes and mixes their pdfs
func (p *Plastic) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	frame := core.NewONB(hit.Normal)
	v := frame.ToLocal(viewDirection(rayIn))
	l := frame.ToLocal(wo)
	if v.Z <= 0 || l.Z <= 0 {
		return 0, core.Vec3{}
	}

	albedo := p.Albedo.GetColor(hit.UV.X, hit.UV.Y)
	ax, ay := roughnessToAlpha(scalar(p.Roughness, hit.UV), 0)

	// Coat
	var specular float64
	var specularPDF float64
	if h := v.Add(l); !h.NearZero() {
		h = h.Normalize()
		d := DistributionGGX(h, ax, ay)
		g1v := SmithG1(v, ax, ay)
		g1l := SmithG1(l, ax, ay)
		fresnel := FresnelDielectric(v.Dot(h), p.IOR)
		specular = d * g1v * g1l * fresnel / (4 * v.Z * l.Z)
		specularPDF = g1v * d / (4 * v.Z)
	}

	// Base, seen through the coat twice
	fi := FresnelDielectric(v.Z, p.IOR)
	fo := FresnelDielectric(l.Z, p.IOR)
	compensation := core.NewVec3(1, 1, 1).Subtract(albedo.Multiply(p.fdrInternal))
	diffuse := albedo.DivideVec(compensation).Multiply((1 - fi) * (1 - fo) / (math.Pi * p.IOR * p.IOR))

	pSpec := p.specularProbability(v.Z, albedo)
	pdf := pSpec*specularPDF + (1-pSpec)*core.CosineHemispherePDF(l.Z)

	f := diffuse.Add(core.NewVec3(specular, specular, specular))
	return pdf, f
}

func (p *Plastic) IsDelta() bool      { return false }
func (p *Plastic) IsVolumetric() bool { return false }
