package sampler

import "math/bits"

// sobolDirections holds the generator matrix columns of the first two Sobol dimensions
var sobolDirections = func() [2][32]uint32 {
	var d [2][32]uint32
	for i := 0; i < 32; i++ {
		// Dimension 0 is the van der Corput sequence in base 2
		d[0][i] = 1 << (31 - i)
	}
	// Dimension 1 follows the Pascal matrix mod 2
	d[1][0] = 1 << 31
	for i := 1; i < 32; i++ {
		d[1][i] = d[1][i-1] ^ (d[1][i-1] >> 1)
	}
	return d
}()

// sobol returns the 32-bit fixed point Sobol value of index in dimension 0 or 1
func sobol(index uint32, dim int) uint32 {
	var x uint32
	for bit := 0; index != 0; bit, index = bit+1, index>>1 {
		if index&1 != 0 {
			x ^= sobolDirections[dim][bit]
		}
	}
	return x
}

// laineKarrasPermutation is a hash that only propagates bits upward,
// so it acts as a nested uniform scramble on bit-reversed input.
func laineKarrasPermutation(x, seed uint32) uint32 {
	x += seed
	x ^= x * 0x6c50b47c
	x ^= x * 0xb82f1e52
	x ^= x * 0xc7afe638
	x ^= x * 0x8d22f6e6
	return x
}

// nestedUniformScramble applies an Owen-style scramble to the digits of x
func nestedUniformScramble(x, seed uint32) uint32 {
	x = bits.Reverse32(x)
	x = laineKarrasPermutation(x, seed)
	return bits.Reverse32(x)
}

// hashCombine mixes v into seed
func hashCombine(seed, v uint32) uint32 {
	return seed ^ (v + (seed << 6) + (seed >> 2))
}

// mix32 is a 32-bit finalizer with full avalanche
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// PixelHash keys the sequence of a pixel so that neighbouring pixels decorrelate
func PixelHash(x, y int, seed uint32) uint32 {
	return mix32(uint32(x) ^ mix32(uint32(y)^mix32(seed+0x9e3779b9)))
}

// scrambledSobol2D returns the shuffled, scrambled point of a padded 2D Sobol sequence
func scrambledSobol2D(index, seed uint32) (uint32, uint32) {
	index = nestedUniformScramble(index, seed)
	x := nestedUniformScramble(sobol(index, 0), hashCombine(seed, 0))
	y := nestedUniformScramble(sobol(index, 1), hashCombine(seed, 1))
	return x, y
}

// scrambledSobol1D returns one shuffled, scrambled value of the van der Corput sequence
func scrambledSobol1D(index, seed uint32) uint32 {
	index = nestedUniformScramble(index, seed)
	return nestedUniformScramble(sobol(index, 0), hashCombine(seed, 0))
}
