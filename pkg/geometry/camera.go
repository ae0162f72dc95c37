package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/horenderer/pathtracer/pkg/core"
)

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	Center        core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height ratio
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Cone angle in degrees of rays through each pixel; 0 disables depth of field
	FocusDistance float64   // Distance to the plane of perfect focus; 0 means the look-at distance
}

// DefaultCameraConfig returns a pinhole camera looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        45.0,
	}
}

// Validate checks the configuration for values that cannot produce an image
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("camera width must be positive, got %d", c.Width)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("camera aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("camera vertical fov must be in (0, 180), got %g", c.VFov)
	}
	if c.DefocusAngle < 0 || c.FocusDistance < 0 {
		return errors.New("camera defocus angle and focus distance must not be negative")
	}
	if c.LookAt.Subtract(c.Center).NearZero() {
		return errors.New("camera look-at point coincides with its position")
	}
	if c.Up.Cross(c.LookAt.Subtract(c.Center)).NearZero() {
		return errors.New("camera up vector is parallel to the view direction")
	}
	return nil
}

// Camera generates primary rays for a pixel grid
type Camera struct {
	config       CameraConfig
	width        int
	height       int
	pixel00      core.Vec3 // Center of the top-left pixel
	pixelDeltaU  core.Vec3 // Offset to the pixel to the right
	pixelDeltaV  core.Vec3 // Offset to the pixel below
	defocusDiskU core.Vec3
	defocusDiskV core.Vec3
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	view := config.LookAt.Subtract(config.Center)
	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = view.Length()
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(height)

	// Orthonormal camera basis
	w := view.Negate().Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)
	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.Width))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(height))

	upperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(config.DefocusAngle/2*math.Pi/180)

	return &Camera{
		config:       config,
		width:        config.Width,
		height:       height,
		pixel00:      upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5)),
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GenerateRay returns a unit-direction ray through pixel (px, py), displaced
// from the pixel center by offset in pixel units. Row 0 is the top of the image.
// The sampler is consulted only when depth of field is enabled.
func (c *Camera) GenerateRay(px, py int, sampler core.Sampler, offset core.Vec2) core.Ray {
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(px) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(py) + offset.Y))

	origin := c.config.Center
	if c.config.DefocusAngle > 0 {
		d := core.SampleConcentricDisk(sampler.Get2D())
		origin = origin.Add(c.defocusDiskU.Multiply(d.X)).Add(c.defocusDiskV.Multiply(d.Y))
	}

	return core.NewRay(origin, pixelSample.Subtract(origin).Normalize())
}
