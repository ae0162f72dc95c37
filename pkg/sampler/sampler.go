// Package sampler generates low-discrepancy samples for the renderer.
//
// Each call to Get1D or Get2D consumes one dimension of a padded,
// Owen-scrambled Sobol sequence. The sequence is indexed by the sample number
// and keyed by a hash of the pixel and dimension, so the same
// (pixel, sample, call order) always produces the same values while different
// pixels and dimensions never share a sequence.
package sampler

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// Sampler holds the per-thread sequence state. It is not safe for concurrent use;
// render workers each own a Clone.
type Sampler struct {
	filter Filter
	seed   uint32

	pixelX, pixelY int
	sampleIndex    uint32
	dimension      uint32
	pixelHash      uint32
}

// New creates a sampler with the given reconstruction filter and global seed
func New(filter Filter, seed uint32) *Sampler {
	s := &Sampler{filter: filter, seed: seed}
	s.StartPixelSample(0, 0, 0)
	return s
}

// Clone returns a fresh sampler sharing this sampler's filter and seed
func (s *Sampler) Clone() *Sampler {
	return New(s.filter, s.seed)
}

// Filter returns the reconstruction filter
func (s *Sampler) Filter() Filter {
	return s.filter
}

// StartPixelSample rekeys the sequence for a new pixel or sample index
func (s *Sampler) StartPixelSample(x, y, sampleIndex int) {
	s.pixelX = x
	s.pixelY = y
	s.sampleIndex = uint32(sampleIndex)
	s.dimension = 0
	s.pixelHash = PixelHash(x, y, s.seed)
}

// Dimension returns the number of dimensions consumed since the last StartPixelSample
func (s *Sampler) Dimension() int {
	return int(s.dimension)
}

func (s *Sampler) nextSeed() uint32 {
	seed := hashCombine(s.pixelHash, mix32(s.dimension))
	s.dimension++
	return seed
}

// Get1D returns the next sample value in [0, 1)
func (s *Sampler) Get1D() float64 {
	return toUnit(scrambledSobol1D(s.sampleIndex, s.nextSeed()))
}

// Get2D returns the next sample pair in [0, 1)²
func (s *Sampler) Get2D() core.Vec2 {
	x, y := scrambledSobol2D(s.sampleIndex, s.nextSeed())
	return core.NewVec2(toUnit(x), toUnit(y))
}

// PixelOffset returns a filtered sub-pixel offset around the pixel center
func (s *Sampler) PixelOffset() core.Vec2 {
	return s.filter.Offset(s.Get2D())
}

// toUnit converts 32-bit fixed point to a float strictly below one
func toUnit(x uint32) float64 {
	return min(float64(x)*0x1p-32, core.OneMinusEpsilon)
}
