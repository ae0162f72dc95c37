package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/tiff"
)

// ACES filmic curve fit (Narkowicz)
const (
	acesA float32 = 2.51
	acesB float32 = 0.03
	acesC float32 = 2.43
	acesD float32 = 0.59
	acesE float32 = 0.14
)

// ImageFormat selects the encoding of a presented frame
type ImageFormat int

const (
	FormatPNG ImageFormat = iota
	FormatTIFF
)

// FormatFromPath picks an image format from a file extension
func FormatFromPath(path string) (ImageFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return 0, fmt.Errorf("unsupported image extension %q", filepath.Ext(path))
	}
}

// ToneMapACES compresses linear radiance into [0, 1]. NaN maps to black.
func ToneMapACES(x float32) float32 {
	if !(x > 0) {
		return 0
	}
	// The curve saturates long before this; it keeps +Inf from turning into NaN
	x = math32.Min(x, 1e6)
	y := (x * (acesA*x + acesB)) / (x*(acesC*x+acesD) + acesE)
	return math32.Min(1, math32.Max(0, y))
}

// LinearToSRGB applies the sRGB transfer curve to a value in [0, 1]
func LinearToSRGB(x float32) float32 {
	if x <= 0.0031308 {
		return 12.92 * x
	}
	return 1.055*math32.Pow(x, 1/2.4) - 0.055
}

// present maps one linear channel to a display value in [0, 1]
func present(x, exposure float32) float32 {
	return math32.Min(1, math32.Max(0, LinearToSRGB(ToneMapACES(x*exposure))))
}

// ToImage tone maps and gamma encodes a framebuffer into 8-bit RGBA
func ToImage(fb *Framebuffer, exposure float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255*present(p[0], exposure) + 0.5),
				G: uint8(255*present(p[1], exposure) + 0.5),
				B: uint8(255*present(p[2], exposure) + 0.5),
				A: 255,
			})
		}
	}
	return img
}

// ToImage16 tone maps and gamma encodes a framebuffer into 16-bit RGBA
func ToImage16(fb *Framebuffer, exposure float32) *image.RGBA64 {
	img := image.NewRGBA64(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			p := fb.At(x, y)
			img.SetRGBA64(x, y, color.RGBA64{
				R: uint16(65535*present(p[0], exposure) + 0.5),
				G: uint16(65535*present(p[1], exposure) + 0.5),
				B: uint16(65535*present(p[2], exposure) + 0.5),
				A: 0xffff,
			})
		}
	}
	return img
}

// Encode presents fb and writes it to w. PNG frames use 8 bits per channel,
// TIFF frames keep 16.
func Encode(w io.Writer, format ImageFormat, fb *Framebuffer, exposure float32) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, ToImage(fb, exposure))
	case FormatTIFF:
		return tiff.Encode(w, ToImage16(fb, exposure), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unknown image format %d", format)
	}
}
