package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// minAlpha keeps GGX lobes numerically well behaved at near-zero roughness
const minAlpha = 1e-3

// roughnessToAlpha maps perceptual roughness and anisotropy to GGX alphas
func roughnessToAlpha(roughness, anisotropy float64) (float64, float64) {
	aspect := math.Sqrt(1 - 0.9*min(max(anisotropy, 0), 1))
	r2 := roughness * roughness
	return max(minAlpha, r2/aspect), max(minAlpha, r2*aspect)
}

// DistributionGGX is the anisotropic GGX normal distribution for a local half vector
func DistributionGGX(h core.Vec3, alphaX, alphaY float64) float64 {
	if h.Z <= 0 {
		return 0
	}
	hx := h.X / alphaX
	hy := h.Y / alphaY
	e := hx*hx + hy*hy + h.Z*h.Z
	return 1 / (math.Pi * alphaX * alphaY * e * e)
}

// lambdaGGX is the Smith auxiliary function for a local direction
func lambdaGGX(w core.Vec3, alphaX, alphaY float64) float64 {
	cos2 := w.Z * w.Z
	if cos2 == 0 {
		return math.Inf(1)
	}
	a2tan2 := (alphaX*alphaX*w.X*w.X + alphaY*alphaY*w.Y*w.Y) / cos2
	return 0.5 * (math.Sqrt(1+a2tan2) - 1)
}

// SmithG1 is the masking term for one local direction
func SmithG1(w core.Vec3, alphaX, alphaY float64) float64 {
	return 1 / (1 + lambdaGGX(w, alphaX, alphaY))
}

// visibleNormalPDF is the density of SampleGGXVNDF returning h for view v
func visibleNormalPDF(v, h core.Vec3, alphaX, alphaY float64) float64 {
	if v.Z == 0 {
		return 0
	}
	return SmithG1(v, alphaX, alphaY) * max(0, v.Dot(h)) * DistributionGGX(h, alphaX, alphaY) / math.Abs(v.Z)
}

// FresnelDielectric returns the unpolarized reflectance at a dielectric boundary.
// eta is the transmitted over incident index ratio; a negative cosine means the
// ray arrives from the transmitted side.
func FresnelDielectric(cosThetaI, eta float64) float64 {
	cosThetaI = max(-1, min(1, cosThetaI))
	if cosThetaI < 0 {
		eta = 1 / eta
		cosThetaI = -cosThetaI
	}

	sin2ThetaT := (1 - cosThetaI*cosThetaI) / (eta * eta)
	if sin2ThetaT >= 1 {
		return 1 // total internal reflection
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)

	rParallel := (eta*cosThetaI - cosThetaT) / (eta*cosThetaI + cosThetaT)
	rPerpendicular := (cosThetaI - eta*cosThetaT) / (cosThetaI + eta*cosThetaT)
	return 0.5 * (rParallel*rParallel + rPerpendicular*rPerpendicular)
}

// FresnelConductor returns the per-channel reflectance of a conductor with complex index eta + ik
func FresnelConductor(cosThetaI float64, eta, k core.Vec3) core.Vec3 {
	return core.Vec3{
		X: fresnelConductorChannel(cosThetaI, eta.X, k.X),
		Y: fresnelConductorChannel(cosThetaI, eta.Y, k.Y),
		Z: fresnelConductorChannel(cosThetaI, eta.Z, k.Z),
	}
}

func fresnelConductorChannel(cosThetaI, eta, k float64) float64 {
	cosThetaI = max(0, min(1, cosThetaI))
	cos2 := cosThetaI * cosThetaI
	sin2 := 1 - cos2
	eta2 := eta * eta
	k2 := k * k

	t0 := eta2 - k2 - sin2
	a2plusb2 := math.Sqrt(t0*t0 + 4*eta2*k2)
	t1 := a2plusb2 + cos2
	a := math.Sqrt(max(0, 0.5*(a2plusb2+t0)))
	t2 := 2 * cosThetaI * a
	rs := (t1 - t2) / (t1 + t2)

	t3 := cos2*a2plusb2 + sin2*sin2
	t4 := t2 * sin2
	rp := rs * (t3 - t4) / (t3 + t4)

	return 0.5 * (rp + rs)
}

// FresnelDiffuseReflectance is the hemispherically averaged dielectric reflectance
// for diffuse illumination at relative index eta (Egan-Hilgeman / d'Eon-Irving fits).
func FresnelDiffuseReflectance(eta float64) float64 {
	if eta < 1 {
		return -1.4399*eta*eta + 0.7099*eta + 0.6681 + 0.0636/eta
	}
	inv := 1 / eta
	inv2 := inv * inv
	inv3 := inv2 * inv
	inv4 := inv3 * inv
	inv5 := inv4 * inv
	return 0.919317 - 3.4793*inv + 6.75335*inv2 - 7.80989*inv3 + 4.98554*inv4 - 1.36881*inv5
}

// Reflect mirrors v (pointing away from the surface) about n
func Reflect(v, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * v.Dot(n)).Subtract(v)
}

// Refract bends v (pointing away from the surface, same side as n) through the
// boundary with index ratio eta = transmitted/incident. It reports false on
// total internal reflection.
func Refract(v, n core.Vec3, eta float64) (core.Vec3, bool) {
	cosThetaI := v.Dot(n)
	sin2ThetaI := max(0, 1-cosThetaI*cosThetaI)
	sin2ThetaT := sin2ThetaI / (eta * eta)
	if sin2ThetaT >= 1 {
		return core.Vec3{}, false
	}
	cosThetaT := math.Sqrt(1 - sin2ThetaT)
	wt := v.Negate().Multiply(1 / eta).Add(n.Multiply(cosThetaI/eta - cosThetaT))
	return wt.Normalize(), true
}

// relativeEta returns the transmitted/incident index ratio for a hit
func relativeEta(ior float64, hit *HitRecord) float64 {
	if hit.FrontFace {
		return ior
	}
	return 1 / ior
}
