// Package bsp defines the parsed level geometry consumed by the brush
// renderer: vertices, shared edges, faces with their texture projections,
// mip-mapped textures and packed lightmap samples. Loading a map file into
// this representation is the parser's job, not this package's.
package bsp

import (
	"fmt"
	"time"

	"github.com/slipgate-dev/slipgate/pkg/math"
)

const (
	// MipLevels is the number of mipmap planes stored per texture.
	MipLevels = 4

	// MaxLightStyles is the number of dynamic light-intensity channels.
	MaxLightStyles = 64

	// NoLightmap marks a face without baked light samples.
	NoLightmap = -1

	// EmptyStyle marks an unused light-style slot on a face.
	EmptyStyle = 255
)

// frameDuration is how long one texture animation frame is shown.
// Matches the original engine's 5 fps texture animation clock.
const frameDuration = 200 * time.Millisecond

// Edge is a pair of vertex indices shared between up to two faces.
type Edge struct {
	V [2]uint32
}

// TexInfo holds the planar texture projection for a face: texel coordinate
// = dot(position, vec) + offset, per axis.
type TexInfo struct {
	SVec    math.Vec3
	SOffset float32
	TVec    math.Vec3
	TOffset float32

	TextureID int32

	// Special surfaces (sky, water) are never lightmapped.
	Special bool
}

// Face is a planar polygon described by a run of surface edges.
type Face struct {
	FirstEdge int32
	EdgeCount int32
	TexInfoID int32

	// Up to four light-style channels; EmptyStyle fills unused slots.
	LightStyles [4]uint8

	// Byte offset of this face's samples in Data.LightData, or NoLightmap.
	LightmapOffset int32

	// Texel-space bounds of the face, 16-texel aligned.
	TextureMins [2]int16
	Extents     [2]int16
}

// Texture is an indexed-color texture with its mip chain and, for animated
// textures, the ordered frame cycle it belongs to.
type Texture struct {
	Name   string
	Width  int32
	Height int32

	// Mips[l] holds (Width>>l)*(Height>>l) palette indices.
	Mips [MipLevels][]byte

	// Frames lists the texture ids of the animation cycle, this texture
	// included, in display order. Empty for static textures.
	Frames []int32
}

// Model is a contiguous face range forming one rigid sub-model of the level.
type Model struct {
	FirstFace int32
	FaceCount int32
}

// Data is the complete parsed level. It is immutable after load and may be
// shared read-only between any number of renderers.
type Data struct {
	Vertices     []math.Vec3
	Edges        []Edge
	SurfaceEdges []int32
	TexInfos     []TexInfo
	Faces        []Face
	Textures     []Texture
	LightData    []byte
	Models       []Model
}

// FaceVertex resolves the i'th loop vertex of a face. Surface edges are
// signed: a positive entry walks the shared edge V[0]->V[1], a negative
// entry walks edge -e the other way.
func (d *Data) FaceVertex(f *Face, i int32) uint32 {
	e := d.SurfaceEdges[f.FirstEdge+i]
	if e >= 0 {
		return d.Edges[e].V[0]
	}
	return d.Edges[-e].V[1]
}

// TextureFrameForTime resolves the active animation frame for a texture.
// It is a pure function of t and the texture's frame cycle: static
// textures always resolve to themselves.
func (d *Data) TextureFrameForTime(texID int32, t time.Duration) int32 {
	tex := &d.Textures[texID]
	if len(tex.Frames) == 0 {
		return texID
	}
	tick := int(t / frameDuration)
	return tex.Frames[tick%len(tex.Frames)]
}

// CheckFace verifies that every index a face carries stays inside the
// data it points into. Renderer construction treats a failure here as
// fatal for the whole level.
func (d *Data) CheckFace(faceID int32) error {
	if faceID < 0 || int(faceID) >= len(d.Faces) {
		return fmt.Errorf("face %d out of range", faceID)
	}
	f := &d.Faces[faceID]

	if f.TexInfoID < 0 || int(f.TexInfoID) >= len(d.TexInfos) {
		return fmt.Errorf("face %d: texinfo %d out of range", faceID, f.TexInfoID)
	}
	ti := &d.TexInfos[f.TexInfoID]
	if ti.TextureID < 0 || int(ti.TextureID) >= len(d.Textures) {
		return fmt.Errorf("face %d: texture %d out of range", faceID, ti.TextureID)
	}

	if f.FirstEdge < 0 || f.EdgeCount < 0 ||
		int(f.FirstEdge)+int(f.EdgeCount) > len(d.SurfaceEdges) {
		return fmt.Errorf("face %d: edge run [%d,%d) out of range",
			faceID, f.FirstEdge, f.FirstEdge+f.EdgeCount)
	}
	for i := int32(0); i < f.EdgeCount; i++ {
		e := d.SurfaceEdges[f.FirstEdge+i]
		if e < 0 {
			e = -e
		}
		if int(e) >= len(d.Edges) {
			return fmt.Errorf("face %d: edge %d out of range", faceID, e)
		}
		v := d.FaceVertex(f, i)
		if int(v) >= len(d.Vertices) {
			return fmt.Errorf("face %d: vertex %d out of range", faceID, v)
		}
	}
	return nil
}
