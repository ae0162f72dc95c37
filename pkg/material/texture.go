package material

import (
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// Texture provides spatially varying values for material parameters
type Texture interface {
	GetColor(u, v float64) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// NewConstant creates a grey texture holding a scalar parameter such as roughness
func NewConstant(value float64) *SolidColor {
	return &SolidColor{Color: core.NewVec3(value, value, value)}
}

// GetColor returns the solid color regardless of UV
func (s *SolidColor) GetColor(u, v float64) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures on a UV grid
type CheckerTexture struct {
	Even, Odd Texture
	Scale     float64 // Checks per unit of UV
}

// NewCheckerTexture creates a checkerboard of two colors
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Even: NewSolidColor(even), Odd: NewSolidColor(odd), Scale: scale}
}

// GetColor returns the color of the check containing (u, v)
func (c *CheckerTexture) GetColor(u, v float64) core.Vec3 {
	iu := int(math.Floor(u * c.Scale))
	iv := int(math.Floor(v * c.Scale))
	if (iu+iv)%2 == 0 {
		return c.Even.GetColor(u, v)
	}
	return c.Odd.GetColor(u, v)
}

// scalar reads the first channel of a texture used as a scalar parameter
func scalar(t Texture, uv core.Vec2) float64 {
	return t.GetColor(uv.X, uv.Y).X
}
