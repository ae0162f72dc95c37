package integrator

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/lights"
	"github.com/horenderer/pathtracer/pkg/material"
	"github.com/horenderer/pathtracer/pkg/scene"
)

// PathTracingIntegrator implements unidirectional path tracing with next event
// estimation. Every path runs until it escapes, is absorbed, or uses MaxDepth bounces.
type PathTracingIntegrator struct {
	MaxDepth int
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{MaxDepth: maxDepth}
}

// RayColor computes the radiance arriving along ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	var radiance core.Vec3
	throughput := core.NewVec3(1, 1, 1)

	// Camera rays and rays leaving delta or volumetric vertices see emitters
	// directly; after any other bounce emitters were already weighted by MIS.
	specularBounce := true

	for depth := 0; depth < pt.MaxDepth; depth++ {
		hit, isHit := sc.Hit(ray, core.RayEpsilon, math.Inf(1))
		if !isHit {
			if specularBounce || len(sc.EnvironmentLights()) == 0 {
				radiance = radiance.Add(throughput.MultiplyVec(sc.Background(ray)))
			}
			break
		}

		mat := hit.Material
		if mat == nil {
			break
		}

		if specularBounce {
			radiance = radiance.Add(throughput.MultiplyVec(emitted(hit)))
		}

		if !mat.IsDelta() && !mat.IsVolumetric() && emitted(hit).IsZero() {
			direct := pt.sampleLight(ray, hit, sc, sampler).Add(pt.sampleBSDF(ray, hit, sc, sampler))
			radiance = radiance.Add(throughput.MultiplyVec(direct))
		}

		sample := mat.Sample(ray, hit, sampler)
		if !sample.OK() {
			break
		}

		if mat.IsDelta() || mat.IsVolumetric() {
			throughput = throughput.MultiplyVec(sample.Value)
		} else {
			cosine := math.Abs(sample.Direction.Dot(hit.Normal))
			throughput = throughput.MultiplyVec(sample.Value).Multiply(cosine / sample.PDF)
		}
		if throughput.IsZero() || !throughput.IsFinite() {
			break
		}

		specularBounce = mat.IsDelta() || mat.IsVolumetric()
		ray = continuationRay(hit, sample.Direction)
	}

	return radiance
}

// sampleLight picks a light through the power table and weights its
// contribution against the BSDF's pdf for the same direction
func (pt *PathTracingIntegrator) sampleLight(ray core.Ray, hit *material.HitRecord, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	sample, _, _, ok := lights.SampleLight(sc.LightSampler(), hit.Point, sampler)
	if !ok || !sample.OK() || sample.Radiance.IsZero() {
		return core.Vec3{}
	}

	bsdfPdf, f := hit.Material.Evaluate(ray, hit, sample.Direction)
	if f.IsZero() {
		return core.Vec3{}
	}
	if !sc.Visible(hit.Point, hit.Normal, sample) {
		return core.Vec3{}
	}

	cosine := math.Abs(sample.Direction.Dot(hit.Normal))
	weight := core.PowerHeuristic(1, sample.PDF, 1, bsdfPdf)
	return f.MultiplyVec(sample.Radiance).Multiply(cosine * weight / sample.PDF)
}

// sampleBSDF traces one BSDF-sampled ray and weights any light it reaches
// against the pdf of picking that light directly
func (pt *PathTracingIntegrator) sampleBSDF(ray core.Ray, hit *material.HitRecord, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	sample := hit.Material.Sample(ray, hit, sampler)
	if !sample.OK() || sample.Value.IsZero() {
		return core.Vec3{}
	}

	cosine := math.Abs(sample.Direction.Dot(hit.Normal))
	scale := sample.Value.Multiply(cosine / sample.PDF)

	bounce := core.SpawnRay(hit.Point, hit.Normal, sample.Direction)
	lightHit, isHit := sc.Hit(bounce, core.RayEpsilon, math.Inf(1))
	if !isHit {
		var le core.Vec3
		for _, light := range sc.EnvironmentLights() {
			lightPdf, radiance := light.Evaluate(bounce, nil)
			weight := core.PowerHeuristic(1, sample.PDF, 1, sc.LightPMF(lightIndex(sc, light))*lightPdf)
			le = le.Add(radiance.Multiply(weight))
		}
		return scale.MultiplyVec(le)
	}

	radiance := emitted(lightHit)
	if radiance.IsZero() {
		return core.Vec3{}
	}

	// Emitters the light table does not know about can only be found this way
	weight := 1.0
	if light, index, ok := sc.LightFor(lightHit); ok {
		lightPdf, _ := light.Evaluate(bounce, lightHit)
		weight = core.PowerHeuristic(1, sample.PDF, 1, sc.LightPMF(index)*lightPdf)
	}
	return scale.MultiplyVec(radiance).Multiply(weight)
}

// emitted returns the radiance leaving the front face of an emissive hit
func emitted(hit *material.HitRecord) core.Vec3 {
	if hit.Material == nil || !hit.FrontFace {
		return core.Vec3{}
	}
	return hit.Material.Emit(hit.UV.X, hit.UV.Y)
}

// continuationRay leaves a surface with an offset origin. Scattering inside
// a medium has no surface to escape, so the ray starts at the event itself.
func continuationRay(hit *material.HitRecord, direction core.Vec3) core.Ray {
	if hit.Material.IsVolumetric() {
		return core.NewRay(hit.Point, direction)
	}
	return core.SpawnRay(hit.Point, hit.Normal, direction)
}

// lightIndex finds an environment light's position in the scene light list
func lightIndex(sc *scene.Scene, light lights.Light) int {
	for i, l := range sc.Lights() {
		if l == light {
			return i
		}
	}
	return -1
}
