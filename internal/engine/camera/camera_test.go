package camera

import (
	"testing"

	"github.com/slipgate-dev/slipgate/pkg/math"
)

func TestViewProjectionCentersForwardPoint(t *testing.T) {
	c := New(640, 480, 90)
	c.Origin = math.Vec3{X: 0, Y: 0, Z: 0}
	c.Angles = math.Vec3{}

	// A point straight ahead on map +X lands on the view axis: after the
	// shader swizzle it sits at GL (0, 0, -100).
	vp := c.ViewProjection()
	p := vp.TransformPoint([3]float32{0, 0, -100})

	if p[0] < -0.001 || p[0] > 0.001 || p[1] < -0.001 || p[1] > 0.001 {
		t.Errorf("forward point off axis: %v", p)
	}
}

func TestViewProjectionTranslation(t *testing.T) {
	c := New(640, 480, 90)
	c.Origin = math.Vec3{X: 10, Y: 20, Z: 30}

	// The swizzled eye position must map to the view origin (behind the
	// near plane, so only check x/y centering).
	vp := c.ViewProjection()
	eye := [3]float32{-c.Origin.Y, c.Origin.Z, -c.Origin.X}
	forward := [3]float32{eye[0], eye[1], eye[2] - 100}
	p := vp.TransformPoint(forward)

	if p[0] < -0.001 || p[0] > 0.001 || p[1] < -0.001 || p[1] > 0.001 {
		t.Errorf("translated forward point off axis: %v", p)
	}
}

func TestSetViewport(t *testing.T) {
	c := New(640, 480, 90)
	c.SetViewport(200, 100)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %f, want 2", c.Aspect)
	}
	c.SetViewport(100, 0) // ignored
	if c.Aspect != 2 {
		t.Errorf("Aspect after zero-height resize = %f, want 2", c.Aspect)
	}
}
