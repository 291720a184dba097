// Package camera supplies the combined view-projection transform consumed
// by the renderers. Renderers hold the camera read-only.
package camera

import (
	gomath "math"

	"github.com/slipgate-dev/slipgate/pkg/math"
)

// Camera is a first-person camera in map coordinates (x-forward, y-left,
// z-up; the same convention the brush vertex shader swizzles from).
// Angles are pitch/yaw/roll in degrees.
type Camera struct {
	Origin math.Vec3
	Angles math.Vec3

	FovY   float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// New creates a camera for the given viewport.
func New(width, height int, fovY float32) *Camera {
	return &Camera{
		FovY:   fovY,
		Aspect: float32(width) / float32(height),
		Near:   4,
		Far:    4096,
	}
}

// SetViewport updates the aspect ratio after a window resize.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ViewProjection returns projection * view as one 4x4 multiplier. The
// view translates by the swizzled origin and applies the inverse
// orientation, so it composes directly with the shader's axis swizzle.
func (c *Camera) ViewProjection() math.Mat4 {
	proj := math.Perspective(radians(c.FovY), c.Aspect, c.Near, c.Far)

	pitch := radians(c.Angles.X)
	yaw := radians(c.Angles.Y)
	roll := radians(c.Angles.Z)

	view := math.RotateZ(-roll).
		Mul(math.RotateX(-pitch)).
		Mul(math.RotateY(-yaw)).
		Mul(math.Translate(c.Origin.Y, -c.Origin.Z, c.Origin.X))

	return proj.Mul(view)
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}
