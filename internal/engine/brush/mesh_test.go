package brush

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/slipgate-dev/slipgate/pkg/bsp"
	gomath "github.com/slipgate-dev/slipgate/pkg/math"
)

// polyData builds a level with a single n-sided face in the z=0 plane.
// The texture projection is s=x, t=y on a 64x64 texture, so texel space
// equals map space. Pass lit=false for a face without baked light.
func polyData(positions []gomath.Vec3, lit bool) *bsp.Data {
	n := len(positions)

	d := &bsp.Data{
		Vertices: positions,
		TexInfos: []bsp.TexInfo{{
			SVec: gomath.Vec3{X: 1}, TVec: gomath.Vec3{Y: 1},
			TextureID: 0,
		}},
		Textures: []bsp.Texture{{Name: "wall", Width: 64, Height: 64}},
		Models:   []bsp.Model{{FirstFace: 0, FaceCount: 1}},
	}

	for i := 0; i < n; i++ {
		d.Edges = append(d.Edges, bsp.Edge{V: [2]uint32{uint32(i), uint32((i + 1) % n)}})
		d.SurfaceEdges = append(d.SurfaceEdges, int32(i))
	}

	face := bsp.Face{
		FirstEdge:      0,
		EdgeCount:      int32(n),
		LightmapOffset: bsp.NoLightmap,
		LightStyles:    [4]uint8{bsp.EmptyStyle, bsp.EmptyStyle, bsp.EmptyStyle, bsp.EmptyStyle},
	}

	if lit {
		// Texel-space bounds of the polygon, 16-aligned like the loader
		// would compute them.
		minS, minT := float32(math.Inf(1)), float32(math.Inf(1))
		maxS, maxT := float32(math.Inf(-1)), float32(math.Inf(-1))
		for _, p := range positions {
			minS, maxS = min(minS, p.X), max(maxS, p.X)
			minT, maxT = min(minT, p.Y), max(maxT, p.Y)
		}
		face.TextureMins = [2]int16{int16(minS), int16(minT)}
		face.Extents = [2]int16{int16(maxS - minS), int16(maxT - minT)}
		face.LightmapOffset = 0

		w := int(face.Extents[0]/16) + 1
		h := int(face.Extents[1]/16) + 1
		d.LightData = make([]byte, w*h)
		for i := range d.LightData {
			d.LightData[i] = byte(i)
		}
	}

	d.Faces = []bsp.Face{face}
	return d
}

// ngon returns n points on a convex loop in the z=0 plane.
func ngon(n int) []gomath.Vec3 {
	pts := make([]gomath.Vec3, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = gomath.Vec3{
			X: 32 + 16*float32(math.Cos(a)),
			Y: 32 + 16*float32(math.Sin(a)),
		}
	}
	return pts
}

func TestTriangulationVertexCounts(t *testing.T) {
	for n := 3; n <= 8; n++ {
		d := polyData(ngon(n), false)
		m, err := BuildModel(d, &d.Models[0])
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := 3 * (n - 2)
		if len(m.Vertices) != want {
			t.Errorf("n=%d: %d vertices, want %d", n, len(m.Vertices), want)
		}
		if m.Faces[0].VertexCount != int32(want) {
			t.Errorf("n=%d: record count %d, want %d", n, m.Faces[0].VertexCount, want)
		}
	}
}

func TestDegenerateFaceSkipped(t *testing.T) {
	// Two edges cannot form a polygon; the face gets a zero-length record.
	d := polyData(ngon(4), false)
	d.Faces[0].EdgeCount = 2

	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 0 {
		t.Errorf("degenerate face emitted %d vertices, want 0", len(m.Vertices))
	}
	if len(m.Faces) != 1 || m.Faces[0].VertexCount != 0 {
		t.Errorf("degenerate face record = %+v, want zero-length range", m.Faces)
	}
	if m.Faces[0].LightmapID != bsp.NoLightmap {
		t.Error("degenerate unlit face should have no lightmap")
	}
}

func TestFanWinding(t *testing.T) {
	quad := []gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}
	d := polyData(quad, false)
	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}

	// Fan pivot is loop vertex 0: triangles (0,1,2) and (0,2,3).
	wantOrder := []int{0, 1, 2, 0, 2, 3}
	for i, li := range wantOrder {
		want := quad[li]
		got := m.Vertices[i].Position
		if got != [3]float32{want.X, want.Y, want.Z} {
			t.Errorf("vertex %d position = %v, want %v", i, got, want)
		}
	}
}

func TestTexcoords(t *testing.T) {
	quad := []gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}
	d := polyData(quad, true)
	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}

	// Vertex 2 of the first triangle is map position (32, 48): diffuse UV
	// divides by the 64x64 texture, lightmap UV by the (32, 48) extents.
	v := m.Vertices[2]
	if v.DiffuseUV != [2]float32{0.5, 0.75} {
		t.Errorf("diffuse UV = %v, want [0.5 0.75]", v.DiffuseUV)
	}
	if v.LightmapUV != [2]float32{1, 1} {
		t.Errorf("lightmap UV = %v, want [1 1]", v.LightmapUV)
	}
}

func TestQuadEndToEnd(t *testing.T) {
	// The canonical scenario: 4-edge quad, extents (32,48), 64x64 texture,
	// mins (0,0) -> 2 triangles and a 3x4 lightmap.
	quad := []gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}
	d := polyData(quad, true)

	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 6 {
		t.Errorf("%d vertices, want 6", len(m.Vertices))
	}
	if len(m.Lightmaps) != 1 {
		t.Fatalf("%d lightmaps, want 1", len(m.Lightmaps))
	}
	lm := m.Lightmaps[0]
	if lm.Width != 3 || lm.Height != 4 {
		t.Errorf("lightmap %dx%d, want 3x4", lm.Width, lm.Height)
	}
	if len(lm.Data) != 12 {
		t.Errorf("lightmap has %d samples, want 12", len(lm.Data))
	}
	if m.Faces[0].LightmapID != 0 {
		t.Errorf("face lightmap id = %d, want 0", m.Faces[0].LightmapID)
	}
}

func TestSpecialSurfaceGetsNoLightmap(t *testing.T) {
	d := polyData(ngon(4), true)
	d.TexInfos[0].Special = true

	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Lightmaps) != 0 {
		t.Errorf("special surface built %d lightmaps, want 0", len(m.Lightmaps))
	}
	if m.Faces[0].LightmapID != bsp.NoLightmap {
		t.Errorf("face lightmap id = %d, want none", m.Faces[0].LightmapID)
	}
}

func TestUnlitFaceGetsNoLightmap(t *testing.T) {
	d := polyData(ngon(4), false)
	m, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Lightmaps) != 0 || m.Faces[0].LightmapID != bsp.NoLightmap {
		t.Error("unlit face should build no lightmap")
	}
}

func TestTruncatedLightDataFailsBuild(t *testing.T) {
	d := polyData([]gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}, true)
	d.LightData = d.LightData[:5] // needs 12 samples

	_, err := BuildModel(d, &d.Models[0])
	if err == nil {
		t.Fatal("truncated light buffer accepted")
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Errorf("error type = %T, want *BuildError", err)
	}
}

func TestNegativeExtentsFailBuild(t *testing.T) {
	d := polyData([]gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}, true)
	d.Faces[0].Extents = [2]int16{-32, 48}

	_, err := BuildModel(d, &d.Models[0])
	if err == nil {
		t.Fatal("negative extents accepted")
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Errorf("error type = %T, want *BuildError", err)
	}
}

func TestMalformedFaceFailsBuild(t *testing.T) {
	d := polyData(ngon(4), false)
	d.Faces[0].TexInfoID = 42

	_, err := BuildModel(d, &d.Models[0])
	if err == nil {
		t.Fatal("out-of-range texinfo accepted")
	}
	var be *BuildError
	if !errors.As(err, &be) {
		t.Errorf("error type = %T, want *BuildError", err)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	d := polyData(ngon(6), true)

	a, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildModel(d, &d.Models[0])
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two builds from the same data differ")
	}
}

func TestEdgeDirectionFlagsRespected(t *testing.T) {
	// Same quad loop, but every edge stored reversed and referenced with a
	// negative surface-edge entry. The triangulated vertices must match
	// the forward layout exactly. Lit fixtures keep every UV finite so
	// the buffers compare by value.
	quad := []gomath.Vec3{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 32, Y: 48}, {X: 0, Y: 48}}
	fwd := polyData(quad, true)

	rev := polyData(quad, true)
	for i := range rev.Edges {
		rev.Edges[i].V[0], rev.Edges[i].V[1] = rev.Edges[i].V[1], rev.Edges[i].V[0]
		rev.SurfaceEdges[i] = -rev.SurfaceEdges[i]
	}
	// Entry 0 cannot carry a sign; give it a spare edge slot so -0 is
	// never needed.
	rev.Edges = append(rev.Edges, rev.Edges[0])
	rev.SurfaceEdges[0] = -int32(len(rev.Edges) - 1)

	a, err := BuildModel(fwd, &fwd.Models[0])
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildModel(rev, &rev.Models[0])
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Vertices, b.Vertices) {
		t.Error("reversed edges produced different vertices")
	}
}
