package cmd

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/horenderer/pathtracer/pkg/renderer"
	"github.com/horenderer/pathtracer/pkg/scene"
	"golang.org/x/image/tiff"
)

func runApp(args ...string) error {
	return NewApp().Run(append([]string{"pathtracer"}, args...))
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		args []string
	}{
		{"png single pass", "frame.png", nil},
		{"tiff single pass", "frame.tiff", []string{"--filter", "gaussian"}},
		{"progressive", "progressive.png", []string{"--passes", "3", "--spp", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.file)
			args := append([]string{"render", "--scene", "two-spheres", "--width", "12", "--spp", "2", "--workers", "2", "--out", out}, tt.args...)
			if err := runApp(args...); err != nil {
				t.Fatalf("render failed: %v", err)
			}

			f, err := os.Open(out)
			if err != nil {
				t.Fatalf("Expected output file: %v", err)
			}
			defer f.Close()

			decode := png.Decode
			if filepath.Ext(out) == ".tiff" {
				decode = tiff.Decode
			}
			img, err := decode(f)
			if err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			if img.Bounds().Dx() != 12 {
				t.Errorf("Expected width 12, got %d", img.Bounds().Dx())
			}
		})
	}
}

func TestRenderCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unknown scene", func(t *testing.T) {
		err := runApp("render", "--scene", "nope", "--out", filepath.Join(dir, "a.png"))
		if !errors.Is(err, scene.ErrUnknownScene) {
			t.Errorf("Expected ErrUnknownScene, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		if err := runApp("render", "--out", filepath.Join(dir, "a.bmp")); err == nil {
			t.Error("Expected error for unsupported extension")
		}
	})

	t.Run("unknown filter", func(t *testing.T) {
		if err := runApp("render", "--filter", "lanczos", "--out", filepath.Join(dir, "a.png")); err == nil {
			t.Error("Expected error for unknown filter")
		}
	})
}

func TestScenesCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"default", []string{"scenes"}},
		{"verbose", []string{"-v", "scenes"}},
		{"very verbose", []string{"-vv", "scenes"}},
		{"version", []string{"--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runApp(tt.args...); err != nil {
				t.Errorf("%v failed: %v", tt.args, err)
			}
		})
	}
}

// failingCloser accepts every write and fails on close
type failingCloser struct {
	bytes.Buffer
	closed bool
}

var errCloseFailed = errors.New("close failed")

func (f *failingCloser) Close() error {
	f.closed = true
	return errCloseFailed
}

func TestWriteFrame_ReportsCloseError(t *testing.T) {
	fb := renderer.NewFramebuffer(2, 2)
	w := &failingCloser{}

	err := writeFrame(w, renderer.FormatPNG, fb, 1)
	if !errors.Is(err, errCloseFailed) {
		t.Errorf("Expected close error, got %v", err)
	}
	if w.Len() == 0 {
		t.Error("Expected the frame to be written before closing")
	}
}

func TestWriteFrame_ClosesOnEncodeError(t *testing.T) {
	w := &failingCloser{}

	if err := writeFrame(w, renderer.ImageFormat(99), renderer.NewFramebuffer(2, 2), 1); err == nil {
		t.Error("Expected error for unknown format")
	}
	if !w.closed {
		t.Error("Expected writer to be closed after a failed encode")
	}
}
