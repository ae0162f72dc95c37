package lights

import (
	"math"
	"math/rand"
	"testing"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/material"
)

func TestQuadLight_Sample_BasicSampling(t *testing.T) {
	const tolerance = 1e-9

	emission := core.NewVec3(5.0, 5.0, 5.0)
	// Unit square in the XY plane facing +Z
	light := NewQuadLight(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material.NewEmission(emission, 1))

	shadingPoint := core.NewVec3(0, 0, 2)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 100; i++ {
		sample := light.Sample(shadingPoint, sampler.Get2D())

		if math.Abs(sample.Point.Z) > tolerance {
			t.Fatalf("Sample point not on quad surface: Z = %f", sample.Point.Z)
		}
		if sample.Point.X < -0.5 || sample.Point.X > 0.5 || sample.Point.Y < -0.5 || sample.Point.Y > 0.5 {
			t.Fatalf("Sample point outside quad bounds: %v", sample.Point)
		}

		expectedDirection := sample.Point.Subtract(shadingPoint).Normalize()
		if sample.Direction.Subtract(expectedDirection).Length() > tolerance {
			t.Fatalf("Direction incorrect: got %v, want %v", sample.Direction, expectedDirection)
		}

		cosTheta := -light.Normal.Dot(sample.Direction)
		expectedPDF := sample.Distance * sample.Distance / (1.0 * cosTheta)
		if math.Abs(sample.PDF-expectedPDF) > 1e-9 {
			t.Fatalf("Expected pdf %f, got %f", expectedPDF, sample.PDF)
		}

		if sample.Radiance != emission {
			t.Fatalf("Radiance incorrect: got %v, expected %v", sample.Radiance, emission)
		}
	}
}

func TestQuadLight_OneSided(t *testing.T) {
	light := NewQuadLight(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material.NewEmission(core.NewVec3(1, 1, 1), 3))

	sample := light.Sample(core.NewVec3(0, 0, -2), core.NewVec2(0.5, 0.5))
	if !sample.Radiance.IsZero() {
		t.Errorf("Expected no radiance behind the light, got %v", sample.Radiance)
	}
	if sample.OK() {
		t.Error("Expected back-side sample to be unusable")
	}

	ray := core.NewRay(core.NewVec3(0, 0, -2), core.NewVec3(0, 0, 1))
	hit, ok := light.Hit(ray, 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected ray to hit the quad")
	}
	if _, radiance := light.Evaluate(ray, hit); !radiance.IsZero() {
		t.Errorf("Expected no radiance from the back face, got %v", radiance)
	}
}

func TestQuadLight_EdgeOn(t *testing.T) {
	light := NewQuadLight(core.NewVec3(-0.5, -0.5, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material.NewEmission(core.NewVec3(1, 1, 1), 1))

	sample := light.Sample(core.NewVec3(3, 0, 0), core.NewVec2(0.5, 0.5))
	if sample.PDF != 0 {
		t.Errorf("Expected zero pdf for edge-on sample, got %f", sample.PDF)
	}
}

func TestQuadLight_EvaluateMatchesSample(t *testing.T) {
	light := NewQuadLight(core.NewVec3(-1, 2, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2), material.NewEmission(core.NewVec3(4, 3, 2), 1))
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		point := core.NewVec3(random.Float64()*4-2, random.Float64()*1.5, random.Float64()*4-2)
		sample := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		if sample.PDF == 0 {
			continue
		}

		ray := core.NewRay(point, sample.Direction)
		hit, ok := light.Hit(ray, 1e-6, math.Inf(1))
		if !ok {
			t.Fatalf("sample %d: ray toward sampled point missed the light", i)
		}

		pdf, radiance := light.Evaluate(ray, hit)
		if math.Abs(pdf-sample.PDF) > 1e-6*sample.PDF {
			t.Fatalf("sample %d: Evaluate pdf %f, Sample pdf %f", i, pdf, sample.PDF)
		}
		if radiance != sample.Radiance {
			t.Fatalf("sample %d: Evaluate radiance %v, Sample radiance %v", i, radiance, sample.Radiance)
		}
	}
}

func TestQuadLight_SolidAngleEstimate(t *testing.T) {
	// Rectangle a×b seen from distance d above one corner
	a, b, d := 1.0, 2.0, 1.0
	light := NewQuadLight(core.NewVec3(0, 0, 0), core.NewVec3(a, 0, 0), core.NewVec3(0, b, 0), material.NewEmission(core.NewVec3(1, 1, 1), 1))
	point := core.NewVec3(0, 0, d)
	random := rand.New(rand.NewSource(42))

	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		sample := light.Sample(point, core.NewVec2(random.Float64(), random.Float64()))
		sum += 1 / sample.PDF
	}

	expected := math.Atan(a * b / (d * math.Sqrt(a*a+b*b+d*d)))
	if got := sum / n; math.Abs(got-expected) > 0.02*expected {
		t.Errorf("Expected solid angle %f, got %f", expected, got)
	}
}

func TestQuadLight_Power(t *testing.T) {
	light := NewQuadLight(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 3, 0), material.NewEmission(core.NewVec3(1, 1, 1), 2))
	expected := 2.0 * 6.0 * math.Pi
	if math.Abs(light.Power()-expected) > 1e-9 {
		t.Errorf("Expected power %f, got %f", expected, light.Power())
	}
	if light.Shape() != light.Quad {
		t.Error("Expected Shape to return the embedded quad")
	}
}
