package bsp

import (
	"testing"
	"time"

	"github.com/slipgate-dev/slipgate/pkg/math"
)

// twoEdgeData builds a minimal level with one shared edge walked in both
// directions by two surface-edge entries.
func twoEdgeData() *Data {
	return &Data{
		Vertices: []math.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
		},
		Edges:        []Edge{{}, {V: [2]uint32{0, 1}}},
		SurfaceEdges: []int32{1, -1},
		TexInfos:     []TexInfo{{}},
		Textures:     []Texture{{Name: "wall", Width: 16, Height: 16}},
		Faces: []Face{
			{FirstEdge: 0, EdgeCount: 2, LightmapOffset: NoLightmap,
				LightStyles: [4]uint8{EmptyStyle, EmptyStyle, EmptyStyle, EmptyStyle}},
		},
	}
}

func TestFaceVertexDirection(t *testing.T) {
	d := twoEdgeData()
	f := &d.Faces[0]

	// Positive entry walks V[0] -> V[1], negative entry the reverse.
	if got := d.FaceVertex(f, 0); got != 0 {
		t.Errorf("forward edge start vertex = %d, want 0", got)
	}
	if got := d.FaceVertex(f, 1); got != 1 {
		t.Errorf("reversed edge start vertex = %d, want 1", got)
	}
}

func TestTextureFrameForTimeStatic(t *testing.T) {
	d := &Data{Textures: []Texture{{Name: "static"}}}
	for _, at := range []time.Duration{0, time.Second, time.Hour} {
		if got := d.TextureFrameForTime(0, at); got != 0 {
			t.Errorf("static texture at %v resolved to %d, want 0", at, got)
		}
	}
}

func TestTextureFrameForTimeCycles(t *testing.T) {
	frames := []int32{0, 1, 2}
	d := &Data{Textures: []Texture{
		{Name: "+0anim", Frames: frames},
		{Name: "+1anim", Frames: frames},
		{Name: "+2anim", Frames: frames},
	}}

	cases := []struct {
		at   time.Duration
		want int32
	}{
		{0, 0},
		{199 * time.Millisecond, 0},
		{200 * time.Millisecond, 1},
		{400 * time.Millisecond, 2},
		{600 * time.Millisecond, 0}, // wraps
	}
	for _, c := range cases {
		if got := d.TextureFrameForTime(0, c.at); got != c.want {
			t.Errorf("frame at %v = %d, want %d", c.at, got, c.want)
		}
	}
}

func TestTextureFrameForTimeDeterministic(t *testing.T) {
	d := &Data{Textures: []Texture{{Name: "+0a", Frames: []int32{0, 1}}, {Name: "+1a", Frames: []int32{0, 1}}}}
	at := 333 * time.Millisecond
	first := d.TextureFrameForTime(0, at)
	for i := 0; i < 5; i++ {
		if got := d.TextureFrameForTime(0, at); got != first {
			t.Fatalf("frame selection not deterministic: %d then %d", first, got)
		}
	}
}

func TestCheckFace(t *testing.T) {
	d := twoEdgeData()
	if err := d.CheckFace(0); err != nil {
		t.Errorf("valid face rejected: %v", err)
	}
	if err := d.CheckFace(5); err == nil {
		t.Error("out-of-range face id accepted")
	}

	bad := twoEdgeData()
	bad.Faces[0].TexInfoID = 9
	if err := bad.CheckFace(0); err == nil {
		t.Error("out-of-range texinfo accepted")
	}

	bad = twoEdgeData()
	bad.Faces[0].EdgeCount = 10
	if err := bad.CheckFace(0); err == nil {
		t.Error("edge run past end of surface edges accepted")
	}

	bad = twoEdgeData()
	bad.SurfaceEdges[0] = 7
	if err := bad.CheckFace(0); err == nil {
		t.Error("out-of-range edge index accepted")
	}

	bad = twoEdgeData()
	bad.Edges[1].V[0] = 99
	if err := bad.CheckFace(0); err == nil {
		t.Error("out-of-range vertex index accepted")
	}
}
