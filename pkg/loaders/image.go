// Package loaders decodes image files into textures.
package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"math"
	"os"

	"github.com/horenderer/pathtracer/pkg/core"
	"github.com/horenderer/pathtracer/pkg/log"
	"github.com/horenderer/pathtracer/pkg/material"
	_ "golang.org/x/image/tiff" // TIFF decoder
)

var logger = log.New("loaders")

// ImageData contains loaded image data as a linear Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
}

// LoadImage loads a PNG, JPEG or TIFF image and converts its sRGB encoded
// colors to linear values
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns alpha-premultiplied values in [0, 65535]
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			pixels[y*width+x] = core.NewVec3(
				SRGBToLinear(float64(r)/65535.0),
				SRGBToLinear(float64(g)/65535.0),
				SRGBToLinear(float64(b)/65535.0),
			)
		}
	}

	logger.Debugf("loaded %s image %s (%dx%d)", format, filename, width, height)
	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// LoadImageTexture loads an image texture. A file that cannot be loaded
// produces a texture that renders as material.MissingTextureColor.
func LoadImageTexture(filename string) *material.ImageTexture {
	data, err := LoadImage(filename)
	if err != nil {
		logger.Warningf("using missing texture color: %v", err)
		return material.NewImageTexture(0, 0, nil)
	}
	return material.NewImageTexture(data.Width, data.Height, data.Pixels)
}

// SRGBToLinear inverts the sRGB transfer curve for a value in [0, 1]
func SRGBToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
