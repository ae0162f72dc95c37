package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Mix blends two surface materials by a fixed ratio.
//
// When neither side is delta the mix is a proper BSDF: one side is picked to
// sample a direction, then both sides are evaluated for the combined pdf and
// value. When either side is delta the mix is delta too and Sample returns the
// picked side's full path weight.
type Mix struct {
	noEmission
	Material1 Material
	Material2 Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 Material, ratio float64) *Mix {
	ratio = math.Max(0.0, math.Min(ratio, 1.0))

	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     ratio,
	}
}

// IsDelta reports whether either side is a delta lobe
func (m *Mix) IsDelta() bool {
	return m.Material1.IsDelta() || m.Material2.IsDelta()
}

func (m *Mix) IsVolumetric() bool { return false }

// Sample picks a side by ratio and samples it
func (m *Mix) Sample(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) BSDFSample {
	picked := m.Material1
	if sampler.Get1D() < m.Ratio {
		picked = m.Material2
	}

	s := picked.Sample(rayIn, hit, sampler)
	if !s.OK() {
		return BSDFSample{}
	}

	if m.IsDelta() {
		if !picked.IsDelta() {
			cos := math.Abs(s.Direction.Dot(hit.Normal))
			s.Value = s.Value.Multiply(cos / s.PDF)
		}
		return s
	}

	pdf, value := m.Evaluate(rayIn, hit, s.Direction)
	if pdf <= 0 {
		return BSDFSample{}
	}
	return BSDFSample{Direction: s.Direction, PDF: pdf, Value: value}
}

// Evaluate blends the pdf and value of both sides. Delta mixes evaluate to zero.
func (m *Mix) Evaluate(rayIn core.Ray, hit *HitRecord, wo core.Vec3) (float64, core.Vec3) {
	if m.IsDelta() {
		return 0, core.Vec3{}
	}
	pdf1, f1 := m.Material1.Evaluate(rayIn, hit, wo)
	pdf2, f2 := m.Material2.Evaluate(rayIn, hit, wo)

	pdf := pdf1*(1.0-m.Ratio) + pdf2*m.Ratio
	return pdf, f1.Lerp(f2, m.Ratio)
}
