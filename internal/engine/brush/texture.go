package brush

import (
	"fmt"

	"github.com/slipgate-dev/slipgate/pkg/bsp"
	"github.com/slipgate-dev/slipgate/pkg/palette"
)

// TextureSet holds the GPU-ready planes of one texture: an RGBA plane and
// a one-byte fullbright mask plane per mip level.
type TextureSet struct {
	Width      int32
	Height     int32
	Mips       [bsp.MipLevels][]byte
	Fullbright [bsp.MipLevels][]byte
}

// BuildTextureSet translates a texture's indexed mip chain through the
// palette. Zero dimensions or a mip plane whose size does not match its
// level are construction-fatal.
func BuildTextureSet(tex *bsp.Texture, pal *palette.Palette) (*TextureSet, error) {
	// The chain halves the texture MipLevels-1 times, so both dimensions
	// must divide evenly down to the smallest level.
	const minDim = 1 << (bsp.MipLevels - 1)
	if tex.Width <= 0 || tex.Height <= 0 ||
		tex.Width%minDim != 0 || tex.Height%minDim != 0 {
		return nil, &BuildError{Op: "texture", Face: -1,
			Err: fmt.Errorf("%s: bad dimensions %dx%d", tex.Name, tex.Width, tex.Height)}
	}

	set := &TextureSet{Width: tex.Width, Height: tex.Height}
	for level := 0; level < bsp.MipLevels; level++ {
		w := tex.Width >> level
		h := tex.Height >> level
		if len(tex.Mips[level]) != int(w)*int(h) {
			return nil, &BuildError{Op: "texture", Face: -1,
				Err: fmt.Errorf("%s: mip %d has %d texels, want %d",
					tex.Name, level, len(tex.Mips[level]), int(w)*int(h))}
		}
		set.Mips[level], set.Fullbright[level] = pal.Translate(tex.Mips[level])
	}
	return set, nil
}
