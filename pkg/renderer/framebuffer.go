package renderer

import (
	"github.com/horenderer/pathtracer/pkg/core"
	"golang.org/x/image/math/f32"
)

// Framebuffer is a row-major linear RGBA float image. Row 0 is the top of the frame.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []f32.Vec4
}

// NewFramebuffer allocates a black, fully transparent framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]f32.Vec4, width*height),
	}
}

// At returns the pixel at (x, y)
func (fb *Framebuffer) At(x, y int) f32.Vec4 {
	return fb.Pix[y*fb.Width+x]
}

// Color returns the RGB components of the pixel at (x, y)
func (fb *Framebuffer) Color(x, y int) core.Vec3 {
	p := fb.At(x, y)
	return core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
}

// Set stores an opaque color at (x, y)
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pix[y*fb.Width+x] = f32.Vec4{float32(c.X), float32(c.Y), float32(c.Z), 1}
}
