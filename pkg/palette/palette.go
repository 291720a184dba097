// Package palette translates indexed-color texture bytes into RGBA pixels
// plus a fullbright mask. Palette indices from FullbrightStart up are the
// emissive rows of the classic 256-color table: texels using them ignore
// lighting entirely.
package palette

import "fmt"

// FullbrightStart is the first emissive palette index.
const FullbrightStart = 224

// TransparentIndex is the palette slot reserved for transparent texels.
const TransparentIndex = 255

// tableSize is the byte length of a 256-entry RGB table.
const tableSize = 256 * 3

// Palette is a 256-entry RGB color table.
type Palette struct {
	rgb [tableSize]byte
}

// New builds a palette from a raw 768-byte RGB table.
func New(rgb []byte) (*Palette, error) {
	if len(rgb) != tableSize {
		return nil, fmt.Errorf("palette: want %d bytes, got %d", tableSize, len(rgb))
	}
	p := &Palette{}
	copy(p.rgb[:], rgb)
	return p, nil
}

// Default returns a built-in palette: a grayscale ramp for the lit range
// and a warm ramp for the fullbright rows. Good enough for tests and the
// demo level; real maps ship their own table.
func Default() *Palette {
	p := &Palette{}
	for i := 0; i < FullbrightStart; i++ {
		v := byte(i * 255 / (FullbrightStart - 1))
		p.rgb[i*3+0] = v
		p.rgb[i*3+1] = v
		p.rgb[i*3+2] = v
	}
	for i := FullbrightStart; i < 256; i++ {
		t := byte((i - FullbrightStart) * 255 / (255 - FullbrightStart))
		p.rgb[i*3+0] = 255
		p.rgb[i*3+1] = t
		p.rgb[i*3+2] = t / 2
	}
	return p
}

// Translate converts indexed texels into an RGBA plane and a parallel
// one-byte-per-texel fullbright mask (255 emissive, 0 lit). The reserved
// transparent index gets alpha 0.
func (p *Palette) Translate(indexed []byte) (rgba, fullbright []byte) {
	rgba = make([]byte, len(indexed)*4)
	fullbright = make([]byte, len(indexed))

	for i, idx := range indexed {
		rgba[i*4+0] = p.rgb[int(idx)*3+0]
		rgba[i*4+1] = p.rgb[int(idx)*3+1]
		rgba[i*4+2] = p.rgb[int(idx)*3+2]
		if idx != TransparentIndex {
			rgba[i*4+3] = 255
		}
		if idx >= FullbrightStart {
			fullbright[i] = 255
		}
	}
	return rgba, fullbright
}
