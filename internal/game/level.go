package game

import (
	"github.com/slipgate-dev/slipgate/pkg/bsp"
	"github.com/slipgate-dev/slipgate/pkg/math"
)

// DemoLevel builds a small in-code level: a box room with a pedestal,
// baked lightmaps lit from a single point, an animated slime floor and
// a ceiling lamp texture with fullbright texels. It stands in for a map
// loader so the renderer has real geometry to draw.
func DemoLevel() *bsp.Data {
	b := &levelBuilder{
		light: math.Vec3{X: 128, Y: 128, Z: 96},
	}

	// Surface edge 0 cannot encode direction (it has no sign), so the
	// slot is burned on a degenerate edge.
	b.data.Edges = append(b.data.Edges, bsp.Edge{})

	wall := b.addTexture(texChecker("base_wall", 64, 64, 40, 48))
	lamp := b.addTexture(texLamp("ceil_lamp", 64, 64))
	slimeA := b.addTexture(texSlime("+0slime", 64, 64, 0))
	slimeB := b.addTexture(texSlime("+1slime", 64, 64, 7))
	b.data.Textures[slimeA].Frames = []int32{slimeA, slimeB}
	b.data.Textures[slimeB].Frames = []int32{slimeA, slimeB}

	steady := [4]uint8{0, bsp.EmptyStyle, bsp.EmptyStyle, bsp.EmptyStyle}
	flicker := [4]uint8{0, 1, bsp.EmptyStyle, bsp.EmptyStyle}
	pulse := [4]uint8{0, 2, bsp.EmptyStyle, bsp.EmptyStyle}

	xAxis := math.Vec3{X: 1}
	yAxis := math.Vec3{Y: 1}
	zAxis := math.Vec3{Z: 1}
	negX := math.Vec3{X: -1}
	negY := math.Vec3{Y: -1}

	// Room interior: 256x256x128, faces wound to be visible from inside.
	b.addQuad(math.Vec3{}, yAxis, xAxis, 256, 256, slimeA, flicker)                      // floor
	b.addQuad(math.Vec3{Z: 128}, xAxis, yAxis, 256, 256, lamp, pulse)                    // ceiling
	b.addQuad(math.Vec3{Y: 256}, negY, zAxis, 256, 128, wall, steady)                    // west wall
	b.addQuad(math.Vec3{X: 256}, yAxis, zAxis, 256, 128, wall, steady)                   // east wall
	b.addQuad(math.Vec3{}, xAxis, zAxis, 256, 128, wall, steady)                         // south wall
	b.addQuad(math.Vec3{X: 256, Y: 256}, negX, zAxis, 256, 128, wall, steady)            // north wall

	// Pedestal: 32x32x32 block in the middle of the floor.
	b.addQuad(math.Vec3{X: 112, Y: 112}, yAxis, zAxis, 32, 32, wall, steady)             // -x side
	b.addQuad(math.Vec3{X: 144, Y: 144}, negY, zAxis, 32, 32, wall, steady)              // +x side
	b.addQuad(math.Vec3{X: 144, Y: 112}, negX, zAxis, 32, 32, wall, steady)              // -y side
	b.addQuad(math.Vec3{X: 112, Y: 144}, xAxis, zAxis, 32, 32, wall, steady)             // +y side
	b.addQuad(math.Vec3{X: 112, Y: 112, Z: 32}, yAxis, xAxis, 32, 32, wall, flicker)     // top

	b.data.Models = []bsp.Model{{FirstFace: 0, FaceCount: int32(len(b.data.Faces))}}
	return &b.data
}

type levelBuilder struct {
	data  bsp.Data
	light math.Vec3
}

// addTexture appends a texture and returns its id.
func (b *levelBuilder) addTexture(t bsp.Texture) int32 {
	b.data.Textures = append(b.data.Textures, t)
	return int32(len(b.data.Textures) - 1)
}

// addQuad appends an axis-aligned rectangular face. The quad spans uLen
// along u and vLen along v from origin; u and v double as the texture
// projection axes at one texel per unit. Vertices run origin, origin+u,
// origin+u+v, origin+v, so pick u and v with cross(u,v) opposite the
// face normal to keep the face visible from the normal side.
func (b *levelBuilder) addQuad(origin, u, v math.Vec3, uLen, vLen float32, texID int32, styles [4]uint8) {
	corners := [4]math.Vec3{
		origin,
		origin.Add(u.Scale(uLen)),
		origin.Add(u.Scale(uLen)).Add(v.Scale(vLen)),
		origin.Add(v.Scale(vLen)),
	}

	base := uint32(len(b.data.Vertices))
	b.data.Vertices = append(b.data.Vertices, corners[:]...)

	firstEdge := int32(len(b.data.SurfaceEdges))
	for i := uint32(0); i < 4; i++ {
		b.data.SurfaceEdges = append(b.data.SurfaceEdges, int32(len(b.data.Edges)))
		b.data.Edges = append(b.data.Edges, bsp.Edge{V: [2]uint32{base + i, base + (i+1)%4}})
	}

	b.data.TexInfos = append(b.data.TexInfos, bsp.TexInfo{
		SVec:      u,
		TVec:      v,
		TextureID: texID,
	})

	// Texel bounds of the quad, 16-aligned the way a compiler would emit them.
	sMin, sMax := texelRange(corners, u)
	tMin, tMax := texelRange(corners, v)
	mins := [2]int16{align16Down(sMin), align16Down(tMin)}
	extents := [2]int16{align16Up(sMax) - mins[0], align16Up(tMax) - mins[1]}

	face := bsp.Face{
		FirstEdge:      firstEdge,
		EdgeCount:      4,
		TexInfoID:      int32(len(b.data.TexInfos) - 1),
		LightStyles:    styles,
		LightmapOffset: int32(len(b.data.LightData)),
		TextureMins:    mins,
		Extents:        extents,
	}
	b.bakeLightmap(origin, u, v, mins, extents)
	b.data.Faces = append(b.data.Faces, face)
}

// bakeLightmap appends one sample per 16-texel luxel, lit by inverse
// distance falloff from the builder's point light.
func (b *levelBuilder) bakeLightmap(origin, u, v math.Vec3, mins, extents [2]int16) {
	// Component of origin orthogonal to the projection axes; adding
	// s*u + t*v to it recovers the luxel's world position.
	base := origin.Sub(u.Scale(origin.Dot(u))).Sub(v.Scale(origin.Dot(v)))

	w := int(extents[0])/16 + 1
	h := int(extents[1])/16 + 1
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			s := float32(mins[0] + int16(i*16))
			t := float32(mins[1] + int16(j*16))
			pos := base.Add(u.Scale(s)).Add(v.Scale(t))
			dist := pos.Sub(b.light).Length()
			if dist < 1 {
				dist = 1
			}
			sample := 255 * 64 / dist
			if sample > 255 {
				sample = 255
			}
			b.data.LightData = append(b.data.LightData, byte(sample))
		}
	}
}

// texelRange returns the min and max texel coordinate of the corners
// along one projection axis.
func texelRange(corners [4]math.Vec3, axis math.Vec3) (float32, float32) {
	min, max := corners[0].Dot(axis), corners[0].Dot(axis)
	for _, c := range corners[1:] {
		d := c.Dot(axis)
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return min, max
}

func align16Down(v float32) int16 {
	n := int16(v)
	if float32(n) > v {
		n--
	}
	return n & ^int16(15)
}

func align16Up(v float32) int16 {
	n := int16(v)
	if float32(n) < v {
		n++
	}
	return (n + 15) & ^int16(15)
}

// texChecker builds a checkerboard texture from two palette indices.
func texChecker(name string, w, h int32, a, c byte) bsp.Texture {
	return makeTexture(name, w, h, func(x, y int32) byte {
		if (x/8+y/8)%2 == 0 {
			return a
		}
		return c
	})
}

// texLamp builds a dark tile with a fullbright square in the middle.
func texLamp(name string, w, h int32) bsp.Texture {
	return makeTexture(name, w, h, func(x, y int32) byte {
		if x >= w/4 && x < 3*w/4 && y >= h/4 && y < 3*h/4 {
			return 240 // fullbright range starts at 224
		}
		return 24
	})
}

// texSlime builds one frame of the animated floor; phase shifts the
// banding between frames.
func texSlime(name string, w, h int32, phase int32) bsp.Texture {
	return makeTexture(name, w, h, func(x, y int32) byte {
		v := (x + y + phase) % 16
		return byte(96 + v*2)
	})
}

// makeTexture fills mip 0 from gen and derives the lower mips by
// point sampling, which is enough for indexed color.
func makeTexture(name string, w, h int32, gen func(x, y int32) byte) bsp.Texture {
	t := bsp.Texture{Name: name, Width: w, Height: h}
	for l := 0; l < bsp.MipLevels; l++ {
		mw, mh := w>>l, h>>l
		plane := make([]byte, mw*mh)
		for y := int32(0); y < mh; y++ {
			for x := int32(0); x < mw; x++ {
				plane[y*mw+x] = gen(x<<l, y<<l)
			}
		}
		t.Mips[l] = plane
	}
	return t
}
