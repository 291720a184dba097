package brush

import (
	"fmt"
	gomath "math"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/slipgate-dev/slipgate/internal/engine/brush/shaders"
	"github.com/slipgate-dev/slipgate/internal/engine/camera"
	"github.com/slipgate-dev/slipgate/internal/engine/shader"
	"github.com/slipgate-dev/slipgate/internal/logger"
	"github.com/slipgate-dev/slipgate/pkg/bsp"
	"github.com/slipgate-dev/slipgate/pkg/math"
	"github.com/slipgate-dev/slipgate/pkg/palette"
)

// Renderer draws one brush model of a loaded level. It owns the vertex
// buffer, all derived textures and the shader program for the lifetime of
// the level; the bsp.Data it references stays read-only and may be shared
// with other renderers.
type Renderer struct {
	data  *bsp.Data
	faces []FaceRecord

	program        uint32
	locTransform   int32
	locLightstyles int32
	locTexture     int32
	locFullbright  int32
	locLightmap    int32

	vao uint32
	vbo uint32

	colorTex      []uint32 // one per level texture
	fullbrightTex []uint32
	lightmapTex   []uint32 // one per lit face

	dummyColor      uint32 // 1x1 white
	dummyFullbright uint32 // 1x1 zero mask
	dummyLightmap   uint32 // 1x1 full intensity
}

// New builds the renderer for one model: triangulates its faces, uploads
// the shared vertex buffer, translates and uploads every level texture and
// per-face lightmap, and compiles the shared pipeline. Construction is
// all-or-nothing; there is no partial-level rendering.
func New(data *bsp.Data, model *bsp.Model, pal *palette.Palette) (*Renderer, error) {
	mesh, err := BuildModel(data, model)
	if err != nil {
		return nil, err
	}

	r := &Renderer{data: data, faces: mesh.Faces}

	r.program, err = shader.CompileProgram(shaders.BrushVertexShader, shaders.BrushFragmentShader)
	if err != nil {
		return nil, &BuildError{Op: "shader", Face: -1, Err: err}
	}
	r.locTransform = shader.GetUniform(r.program, "uTransform")
	r.locLightstyles = shader.GetUniform(r.program, "uLightstyles")
	r.locTexture = shader.GetUniform(r.program, "uTexture")
	r.locFullbright = shader.GetUniform(r.program, "uFullbright")
	r.locLightmap = shader.GetUniform(r.program, "uLightmap")

	// Lightmaps and fullbright masks are single-channel with odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	r.uploadVertices(mesh.Vertices)

	for i := range mesh.Lightmaps {
		r.lightmapTex = append(r.lightmapTex, uploadLightmap(&mesh.Lightmaps[i]))
	}

	for i := range data.Textures {
		set, err := BuildTextureSet(&data.Textures[i], pal)
		if err != nil {
			r.Destroy()
			return nil, err
		}
		color, fullbright := uploadTextureSet(set)
		r.colorTex = append(r.colorTex, color)
		r.fullbrightTex = append(r.fullbrightTex, fullbright)
	}

	r.dummyColor = uploadPixel(gl.RGBA, gl.RGBA, []uint8{255, 255, 255, 255})
	r.dummyFullbright = uploadPixel(gl.R8, gl.RED, []uint8{0})
	r.dummyLightmap = uploadPixel(gl.R8, gl.RED, []uint8{255})

	if code := gl.GetError(); code != gl.NO_ERROR {
		r.Destroy()
		return nil, &BuildError{Op: "upload", Face: -1,
			Err: fmt.Errorf("gl error 0x%04x", code)}
	}

	logger.Debug("brush renderer built",
		zap.Int("faces", len(r.faces)),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("lightmaps", len(r.lightmapTex)),
		zap.Int("textures", len(r.colorTex)),
	)
	return r, nil
}

func (r *Renderer) uploadVertices(vertices []Vertex) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	vertexSize := int(unsafe.Sizeof(Vertex{}))
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize,
			unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	}

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// DiffuseUV (location 1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// LightmapUV (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 5*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
}

// uploadTextureSet uploads the color and fullbright planes of one texture,
// all mip levels provided.
func uploadTextureSet(set *TextureSet) (color, fullbright uint32) {
	gl.GenTextures(1, &color)
	gl.BindTexture(gl.TEXTURE_2D, color)
	for level := 0; level < bsp.MipLevels; level++ {
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.RGBA,
			set.Width>>level, set.Height>>level,
			0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&set.Mips[level][0]))
	}
	setMippedParams()

	gl.GenTextures(1, &fullbright)
	gl.BindTexture(gl.TEXTURE_2D, fullbright)
	for level := 0; level < bsp.MipLevels; level++ {
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.R8,
			set.Width>>level, set.Height>>level,
			0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&set.Fullbright[level][0]))
	}
	setMippedParams()

	return color, fullbright
}

func setMippedParams() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, bsp.MipLevels-1)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
}

func uploadLightmap(lm *Lightmap) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, lm.Width, lm.Height,
		0, gl.RED, gl.UNSIGNED_BYTE, unsafe.Pointer(&lm.Data[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return tex
}

func uploadPixel(internal int32, format uint32, pixel []uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, 1, 1,
		0, format, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixel[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return tex
}

// Render draws every face of the model once, in face-table order. Depth
// testing resolves visibility, so no sorting happens here. A GL failure
// aborts the pass; draws already in the command stream stay submitted.
func (r *Renderer) Render(t time.Duration, cam *camera.Camera, origin, angles math.Vec3, styleValues []float32) error {
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(true)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CW)

	modelMat := math.Translate(-origin.Y, origin.Z, -origin.X).
		Mul(math.RotationEuler(radians(angles.X), radians(angles.Y), radians(angles.Z)))
	transform := cam.ViewProjection().Mul(modelMat)
	gl.UniformMatrix4fv(r.locTransform, 1, false, transform.Ptr())

	gl.Uniform1i(r.locTexture, 0)
	gl.Uniform1i(r.locFullbright, 1)
	gl.Uniform1i(r.locLightmap, 2)

	// Default bindings; every face overwrites what it needs.
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.dummyColor)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, r.dummyFullbright)
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.dummyLightmap)

	for i := range r.faces {
		face := &r.faces[i]
		if face.VertexCount == 0 {
			// degenerate face, nothing to draw
			continue
		}

		frame := r.data.TextureFrameForTime(face.TextureID, t)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.colorTex[frame])
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_2D, r.fullbrightTex[frame])
		gl.ActiveTexture(gl.TEXTURE2)
		if face.LightmapID != bsp.NoLightmap {
			gl.BindTexture(gl.TEXTURE_2D, r.lightmapTex[face.LightmapID])
		} else {
			gl.BindTexture(gl.TEXTURE_2D, r.dummyLightmap)
		}

		lanes := styleLanes(face.LightStyles, styleValues)
		gl.Uniform4f(r.locLightstyles, lanes[0], lanes[1], lanes[2], lanes[3])

		gl.DrawArrays(gl.TRIANGLES, face.VertexOffset, face.VertexCount)

		if code := gl.GetError(); code != gl.NO_ERROR {
			gl.BindVertexArray(0)
			return &DrawError{Op: "face draw", Code: code}
		}
	}

	gl.BindVertexArray(0)
	return nil
}

// Destroy releases every GL resource the renderer owns.
func (r *Renderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	deleteTextures := func(texs []uint32) {
		for _, tex := range texs {
			if tex != 0 {
				gl.DeleteTextures(1, &tex)
			}
		}
	}
	deleteTextures(r.colorTex)
	deleteTextures(r.fullbrightTex)
	deleteTextures(r.lightmapTex)
	deleteTextures([]uint32{r.dummyColor, r.dummyFullbright, r.dummyLightmap})
	r.colorTex, r.fullbrightTex, r.lightmapTex = nil, nil, nil
	r.dummyColor, r.dummyFullbright, r.dummyLightmap = 0, 0, 0

	if r.program != 0 {
		gl.DeleteProgram(r.program)
		r.program = 0
	}
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}
