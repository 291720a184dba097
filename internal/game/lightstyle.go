package game

import (
	"time"

	"github.com/slipgate-dev/slipgate/pkg/bsp"
)

// styleInterval is how often animated light styles advance.
const styleInterval = 100 * time.Millisecond

// StyleSet holds the animation strings for every light style slot.
// Each string is a sequence of 'a'..'z' brightness keys sampled at 10 Hz,
// with 'a' fully dark and 'z' fully bright.
type StyleSet struct {
	styles [bsp.MaxLightStyles]string
}

// NewStyleSet returns a style set with every slot at steady full bright.
// A handful of slots carry the classic flicker and pulse patterns.
func NewStyleSet() *StyleSet {
	s := &StyleSet{}
	for i := range s.styles {
		s.styles[i] = "z"
	}
	// Flicker, slow pulse, candle, strobe.
	s.Set(1, "mmnmmommommnonmmonqnmmo")
	s.Set(2, "abcdefghijklmnopqrstuvwxyzyxwvutsrqponmlkjihgfedcba")
	s.Set(3, "mmmmmaaaaammmmmaaaaaabcdefgabcdefg")
	s.Set(4, "mamamamamama")
	return s
}

// Set assigns an animation string to a style slot. Empty strings and
// out-of-range slots are ignored.
func (s *StyleSet) Set(slot int, pattern string) {
	if slot < 0 || slot >= len(s.styles) || pattern == "" {
		return
	}
	s.styles[slot] = pattern
}

// Values samples every style slot at time t and returns the brightness
// lanes in [0,1]. The result is a pure function of t.
func (s *StyleSet) Values(t time.Duration) []float32 {
	tick := int(t / styleInterval)
	values := make([]float32, len(s.styles))
	for i, pattern := range s.styles {
		values[i] = sampleStyle(pattern, tick)
	}
	return values
}

// sampleStyle returns the brightness of one pattern at the given tick.
func sampleStyle(pattern string, tick int) float32 {
	if pattern == "" {
		return 1
	}
	c := pattern[tick%len(pattern)]
	if c < 'a' {
		c = 'a'
	}
	if c > 'z' {
		c = 'z'
	}
	return float32(c-'a') / 25
}
