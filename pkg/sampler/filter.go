package sampler

import (
	"fmt"
	"math"
	"strings"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Filter selects the reconstruction filter used to jitter samples inside a pixel
type Filter int

const (
	FilterUniform Filter = iota
	FilterGaussian
	FilterTent
)

// gaussianScale maps a unit-variance Gaussian onto roughly one pixel
const gaussianScale = 0.375

// ParseFilter returns the filter with the given name
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(name) {
	case "uniform", "box":
		return FilterUniform, nil
	case "gaussian":
		return FilterGaussian, nil
	case "tent", "triangle":
		return FilterTent, nil
	}
	return FilterUniform, fmt.Errorf("unknown filter %q", name)
}

func (f Filter) String() string {
	switch f {
	case FilterGaussian:
		return "gaussian"
	case FilterTent:
		return "tent"
	default:
		return "uniform"
	}
}

// Offset warps a uniform sample into a sub-pixel offset relative to the pixel center
func (f Filter) Offset(u core.Vec2) core.Vec2 {
	switch f {
	case FilterGaussian:
		r := math.Sqrt(-2 * math.Log(max(1e-6, u.X)))
		theta := 2 * math.Pi * u.Y
		return core.NewVec2(r*math.Cos(theta)*gaussianScale, r*math.Sin(theta)*gaussianScale)
	case FilterTent:
		return core.NewVec2(tent(u.X), tent(u.Y))
	default:
		return core.NewVec2(u.X-0.5, u.Y-0.5)
	}
}

// tent inverts the CDF of the triangle filter on [-1, 1]
func tent(u float64) float64 {
	j := 2 * u
	if j < 1 {
		return math.Sqrt(j) - 1
	}
	return 1 - math.Sqrt(2-j)
}
