package core

import (
	"math"
	"math/rand"
)

// OneMinusEpsilon is the largest float64 below 1
const OneMinusEpsilon = 0x1.fffffffffffffp-1

// Sampler provides sample values in [0, 1) for rendering algorithms
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCosineHemisphere returns a cosine-weighted direction around +Z
func SampleCosineHemisphere(u Vec2) Vec3 {
	d := SampleConcentricDisk(u)
	z := math.Sqrt(max(0, 1-d.X*d.X-d.Y*d.Y))
	return Vec3{d.X, d.Y, z}
}

// CosineHemispherePDF returns the pdf of SampleCosineHemisphere for a given cosine
func CosineHemispherePDF(cosTheta float64) float64 {
	return max(0, cosTheta) / math.Pi
}

// SampleUniformSphere returns a uniformly distributed unit direction
func SampleUniformSphere(u Vec2) Vec3 {
	z := 1 - 2*u.X
	r := math.Sqrt(max(0, 1-z*z))
	phi := 2 * math.Pi * u.Y
	return Vec3{r * math.Cos(phi), r * math.Sin(phi), z}
}

// UniformSpherePDF is the constant pdf of SampleUniformSphere
const UniformSpherePDF = 1 / (4 * math.Pi)

// SampleUniformCone returns a direction around +Z inside the cone of half-angle acos(cosThetaMax)
func SampleUniformCone(u Vec2, cosThetaMax float64) Vec3 {
	cosTheta := (1 - u.X) + u.X*cosThetaMax
	sinTheta := math.Sqrt(max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u.Y
	return Vec3{sinTheta * math.Cos(phi), sinTheta * math.Sin(phi), cosTheta}
}

// UniformConePDF returns the pdf of SampleUniformCone
func UniformConePDF(cosThetaMax float64) float64 {
	return 1 / (2 * math.Pi * (1 - cosThetaMax))
}

// SampleConcentricDisk maps the unit square to the unit disk without rejection
func SampleConcentricDisk(u Vec2) Vec2 {
	ox := 2*u.X - 1
	oy := 2*u.Y - 1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}

	var r, theta float64
	if math.Abs(ox) > math.Abs(oy) {
		r = ox
		theta = math.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math.Pi/2 - math.Pi/4*(ox/oy)
	}
	return Vec2{r * math.Cos(theta), r * math.Sin(theta)}
}

// SampleGGXVNDF samples a microfacet normal from the distribution of visible normals
// (Heitz 2018). v is the view direction in the local frame with v.Z > 0.
func SampleGGXVNDF(v Vec3, alphaX, alphaY float64, u Vec2) Vec3 {
	// Stretch the view vector into the hemisphere configuration
	vh := Vec3{alphaX * v.X, alphaY * v.Y, v.Z}.Normalize()

	lensq := vh.X*vh.X + vh.Y*vh.Y
	t1 := Vec3{1, 0, 0}
	if lensq > 0 {
		t1 = Vec3{-vh.Y, vh.X, 0}.Multiply(1 / math.Sqrt(lensq))
	}
	t2 := vh.Cross(t1)

	// Sample the projected disk
	r := math.Sqrt(u.X)
	phi := 2 * math.Pi * u.Y
	p1 := r * math.Cos(phi)
	p2 := r * math.Sin(phi)
	s := 0.5 * (1 + vh.Z)
	p2 = (1-s)*math.Sqrt(max(0, 1-p1*p1)) + s*p2

	nh := t1.Multiply(p1).Add(t2.Multiply(p2)).Add(vh.Multiply(math.Sqrt(max(0, 1-p1*p1-p2*p2))))

	// Unstretch
	return Vec3{alphaX * nh.X, alphaY * nh.Y, max(1e-6, nh.Z)}.Normalize()
}
