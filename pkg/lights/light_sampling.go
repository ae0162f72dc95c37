package lights

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// SampleLight selects a light through the sampler's table and samples it from point.
// The returned pdf is the product of the selection probability and the light's
// solid-angle pdf. ok is false when there is no light to sample.
func SampleLight(lightSampler *PowerLightSampler, point core.Vec3, sampler core.Sampler) (LightSample, Light, int, bool) {
	if lightSampler == nil || lightSampler.Len() == 0 {
		return LightSample{}, nil, -1, false
	}

	light, selectionPdf, index := lightSampler.SampleLight(sampler.Get2D())
	if light == nil || selectionPdf == 0 {
		return LightSample{}, nil, -1, false
	}

	sample := light.Sample(point, sampler.Get2D())
	sample.PDF *= selectionPdf
	return sample, light, index, true
}
