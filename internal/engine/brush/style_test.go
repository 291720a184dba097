package brush

import (
	"testing"

	"github.com/slipgate-dev/slipgate/pkg/bsp"
)

func TestStyleLanes(t *testing.T) {
	values := []float32{0.4, 0.6, 0.9}

	lanes := styleLanes([4]uint8{0, 1, bsp.EmptyStyle, bsp.EmptyStyle}, values)
	want := [4]float32{0.4, 0.6, InactiveLane, InactiveLane}
	if lanes != want {
		t.Errorf("lanes = %v, want %v", lanes, want)
	}

	// A style id past the supplied values is inactive too.
	lanes = styleLanes([4]uint8{7, bsp.EmptyStyle, bsp.EmptyStyle, bsp.EmptyStyle}, values)
	if lanes[0] != InactiveLane {
		t.Errorf("out-of-range style lane = %f, want inactive", lanes[0])
	}
}

func TestLightFactorAveragesActiveLanes(t *testing.T) {
	got := lightFactor([4]float32{0.4, 0.6, InactiveLane, InactiveLane})
	if got != 0.5 {
		t.Errorf("factor = %f, want 0.5", got)
	}

	got = lightFactor([4]float32{1, 0, 0.5, 0.5})
	if got != 0.5 {
		t.Errorf("four-lane factor = %f, want 0.5", got)
	}
}

func TestLightFactorNeutralWhenInactive(t *testing.T) {
	got := lightFactor([4]float32{InactiveLane, InactiveLane, InactiveLane, InactiveLane})
	if got != 1 {
		t.Errorf("factor with no active lanes = %f, want 1", got)
	}
}

// shadePixel transliterates the fragment shader's blend for one channel:
// the lightmap-modulated color and the raw base color are mixed by the
// fullbright mask.
func shadePixel(base, lightmap, factor, fullbright float32) float32 {
	lit := base * lightmap * factor
	return lit*(1-fullbright) + base*fullbright
}

func TestFullbrightBlend(t *testing.T) {
	base := float32(0.8)

	// Mask 1: raw base color, whatever the lighting terms are.
	if got := shadePixel(base, 0.1, 0.25, 1); got != base {
		t.Errorf("fullbright texel = %f, want %f", got, base)
	}
	if got := shadePixel(base, 0, 0, 1); got != base {
		t.Errorf("fullbright texel with zero light = %f, want %f", got, base)
	}

	// Mask 0: base * lightmap * light factor.
	want := base * 0.5 * 0.5
	if got := shadePixel(base, 0.5, 0.5, 0); got != want {
		t.Errorf("lit texel = %f, want %f", got, want)
	}
}
