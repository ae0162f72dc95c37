package lights

import (
	"fmt"
	"strings"

	"github.com/horenderer/pathtracer/pkg/core"
)

// PowerLightSampler selects lights with probability proportional to their power
type PowerLightSampler struct {
	lights []Light
	table  *AliasTable
}

// NewPowerLightSampler builds the selection table from each light's Power.
// Lights at infinity must be preprocessed first so their power is known.
func NewPowerLightSampler(lights []Light) *PowerLightSampler {
	weights := make([]float64, len(lights))
	for i, light := range lights {
		weights[i] = light.Power()
	}
	return NewWeightedLightSampler(lights, weights)
}

// NewWeightedLightSampler creates a light sampler with explicit weights.
// weights must have the same length as lights.
func NewWeightedLightSampler(lights []Light, weights []float64) *PowerLightSampler {
	if len(lights) != len(weights) {
		panic(fmt.Sprintf("lights length (%d) must match weights length (%d)", len(lights), len(weights)))
	}
	return &PowerLightSampler{
		lights: lights,
		table:  NewAliasTable(weights),
	}
}

// SampleLight selects a light and returns it with its selection probability and index
func (ls *PowerLightSampler) SampleLight(u core.Vec2) (Light, float64, int) {
	index := ls.table.Sample(u)
	if index < 0 {
		return nil, 0, -1
	}
	return ls.lights[index], ls.table.PMF(index), index
}

// PMF returns the selection probability for the light at index
func (ls *PowerLightSampler) PMF(index int) float64 {
	return ls.table.PMF(index)
}

// Len returns the number of lights in this sampler
func (ls *PowerLightSampler) Len() int {
	return len(ls.lights)
}

// Lights returns the lights in selection order
func (ls *PowerLightSampler) Lights() []Light {
	return ls.lights
}

// String returns a string representation of the sampler's probabilities
func (ls *PowerLightSampler) String() string {
	var b strings.Builder
	b.WriteString("PowerLightSampler{")
	for i, light := range ls.lights {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d:%s=%.4f", i, light.Type(), ls.table.PMF(i))
	}
	b.WriteString("}")
	return b.String()
}
