// Package brush converts static level geometry into renderable triangle
// data and draws it: faces are fan-triangulated from their edge loops,
// each lit face gets its own small lightmap image, and every face is
// submitted as one draw with the texture frame and light styles active at
// render time.
package brush

import (
	"fmt"

	"github.com/slipgate-dev/slipgate/pkg/bsp"
	"github.com/slipgate-dev/slipgate/pkg/math"
)

// Vertex is one triangulated brush vertex with both texture-coordinate
// spaces: the planar diffuse projection and the face-local lightmap
// projection.
type Vertex struct {
	Position   [3]float32
	DiffuseUV  [2]float32
	LightmapUV [2]float32
}

// FaceRecord addresses one face's triangles in the shared vertex buffer
// together with its texture and lightmap bindings. A zero VertexCount
// marks a degenerate face that is skipped at draw time.
type FaceRecord struct {
	VertexOffset int32
	VertexCount  int32
	TextureID    int32
	LightmapID   int32 // index into Mesh.Lightmaps, bsp.NoLightmap if unlit
	LightStyles  [4]uint8
}

// Lightmap is a per-face grayscale image of baked light intensity,
// one byte per sample.
type Lightmap struct {
	Width  int32
	Height int32
	Data   []byte
}

// Mesh is the triangulated geometry of one brush model: a shared vertex
// buffer, the per-face table addressing it, and the per-face lightmaps.
type Mesh struct {
	Vertices  []Vertex
	Faces     []FaceRecord
	Lightmaps []Lightmap
}

// BuildModel triangulates every face of a model. Geometry never changes
// after load, so this runs exactly once per model; the same inputs always
// produce an identical mesh.
func BuildModel(data *bsp.Data, model *bsp.Model) (*Mesh, error) {
	m := &Mesh{}
	for faceID := model.FirstFace; faceID < model.FirstFace+model.FaceCount; faceID++ {
		if err := data.CheckFace(faceID); err != nil {
			return nil, &BuildError{Op: "face", Face: faceID, Err: err}
		}
		if err := m.appendFace(data, faceID); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// appendFace fan-triangulates one face into the shared vertex buffer and
// slices its lightmap samples. Faces with fewer than 3 edges contribute
// zero triangles but still get a (skipped) record so the face table stays
// parallel to the model's face range.
func (m *Mesh) appendFace(data *bsp.Data, faceID int32) error {
	face := &data.Faces[faceID]
	texinfo := &data.TexInfos[face.TexInfoID]
	tex := &data.Textures[texinfo.TextureID]

	rec := FaceRecord{
		VertexOffset: int32(len(m.Vertices)),
		TextureID:    texinfo.TextureID,
		LightmapID:   bsp.NoLightmap,
		LightStyles:  face.LightStyles,
	}

	if face.EdgeCount >= 3 {
		// Loop vertex 0 is the fan pivot; each step emits one triangle.
		pivot := data.Vertices[data.FaceVertex(face, 0)]
		for i := int32(1); i < face.EdgeCount-1; i++ {
			m.Vertices = append(m.Vertices,
				makeVertex(pivot, face, texinfo, tex),
				makeVertex(data.Vertices[data.FaceVertex(face, i)], face, texinfo, tex),
				makeVertex(data.Vertices[data.FaceVertex(face, i+1)], face, texinfo, tex),
			)
		}
		rec.VertexCount = int32(len(m.Vertices)) - rec.VertexOffset
	}

	if !texinfo.Special && face.LightmapOffset != bsp.NoLightmap {
		lm, err := sliceLightmap(data, face)
		if err != nil {
			return &BuildError{Op: "lightmap", Face: faceID, Err: err}
		}
		rec.LightmapID = int32(len(m.Lightmaps))
		m.Lightmaps = append(m.Lightmaps, lm)
	}

	m.Faces = append(m.Faces, rec)
	return nil
}

// makeVertex computes both texture-coordinate sets for a position. The
// diffuse UV is the texinfo's planar projection normalized by the texture
// size; the lightmap UV maps the same projection into the face-local
// lightmap image.
func makeVertex(pos math.Vec3, face *bsp.Face, texinfo *bsp.TexInfo, tex *bsp.Texture) Vertex {
	s := pos.Dot(texinfo.SVec) + texinfo.SOffset
	t := pos.Dot(texinfo.TVec) + texinfo.TOffset

	return Vertex{
		Position:  [3]float32{pos.X, pos.Y, pos.Z},
		DiffuseUV: [2]float32{s / float32(tex.Width), t / float32(tex.Height)},
		LightmapUV: [2]float32{
			(s - float32(face.TextureMins[0])) / float32(face.Extents[0]),
			(t - float32(face.TextureMins[1])) / float32(face.Extents[1]),
		},
	}
}

// sliceLightmap cuts a face's baked samples out of the packed light
// buffer. The image is one sample per 16 texels plus a border row/column.
func sliceLightmap(data *bsp.Data, face *bsp.Face) (Lightmap, error) {
	w := int32(face.Extents[0])/16 + 1
	h := int32(face.Extents[1])/16 + 1
	if w <= 0 || h <= 0 {
		return Lightmap{}, fmt.Errorf("extents (%d,%d) give empty %dx%d sample grid",
			face.Extents[0], face.Extents[1], w, h)
	}
	size := int(w) * int(h)

	ofs := int(face.LightmapOffset)
	if ofs < 0 || ofs+size > len(data.LightData) {
		return Lightmap{}, fmt.Errorf("samples [%d,%d) outside %d-byte light buffer",
			ofs, ofs+size, len(data.LightData))
	}

	samples := make([]byte, size)
	copy(samples, data.LightData[ofs:ofs+size])
	return Lightmap{Width: w, Height: h, Data: samples}, nil
}
