package material

import (
	"github.com/horenderer/pathtracer/pkg/core"
)

// MissingTextureColor is returned by textures whose image failed to load
var MissingTextureColor = core.NewVec3(1, 0, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// GetColor samples the texture at (u, v) using nearest-neighbor filtering
func (t *ImageTexture) GetColor(u, v float64) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return MissingTextureColor
	}

	// Wrap UV coordinates to [0, 1)
	u -= float64(int(u))
	v -= float64(int(v))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	// V=0 is the bottom row of the image
	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))

	return t.Pixels[y*t.Width+x]
}
