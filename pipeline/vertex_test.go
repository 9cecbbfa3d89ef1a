// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/visual"
)

func readF32(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
}

func readU32(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off : off+4])
}

func TestBuildDataStrides(t *testing.T) {
	if got := len(BuildPrimitiveVertexData(make([]PrimitiveVertex, 3))); got != 3*PrimitiveVertexStride {
		t.Errorf("primitive vertex data = %d bytes, want %d", got, 3*PrimitiveVertexStride)
	}
	if got := len(BuildPrimitiveInstanceData(PrimitiveInstance{})); got != PrimitiveInstanceStride {
		t.Errorf("primitive instance data = %d bytes, want %d", got, PrimitiveInstanceStride)
	}
	if got := len(BuildBoxVertexData(make([]BoxVertex, 8))); got != 8*BoxVertexStride {
		t.Errorf("box vertex data = %d bytes, want %d", got, 8*BoxVertexStride)
	}
	if got := len(BuildBoxInstanceData(BoxInstance{})); got != BoxInstanceStride {
		t.Errorf("box instance data = %d bytes, want %d", got, BoxInstanceStride)
	}
	if got := len(BuildMaskVertexData(make([]MaskVertex, 4))); got != 4*MaskVertexStride {
		t.Errorf("mask vertex data = %d bytes, want %d", got, 4*MaskVertexStride)
	}
	if got := len(BuildPathVertexData(make([]PathVertex, 5))); got != 5*PathVertexStride {
		t.Errorf("path vertex data = %d bytes, want %d", got, 5*PathVertexStride)
	}
	if got := len(BuildPathInstanceData(PathInstance{})); got != PathInstanceStride {
		t.Errorf("path instance data = %d bytes, want %d", got, PathInstanceStride)
	}
	if got := len(BuildTextVertexData(make([]TextVertex, 6))); got != 6*TextVertexStride {
		t.Errorf("text vertex data = %d bytes, want %d", got, 6*TextVertexStride)
	}
}

func TestBuildDataEmpty(t *testing.T) {
	if BuildPrimitiveVertexData(nil) != nil {
		t.Error("primitive vertex data for empty input should be nil")
	}
	if BuildBoxVertexData(nil) != nil {
		t.Error("box vertex data for empty input should be nil")
	}
	if BuildMaskVertexData(nil) != nil {
		t.Error("mask vertex data for empty input should be nil")
	}
	if BuildPathVertexData(nil) != nil {
		t.Error("path vertex data for empty input should be nil")
	}
	if BuildTextVertexData(nil) != nil {
		t.Error("text vertex data for empty input should be nil")
	}
	if BuildIndexData(nil) != nil {
		t.Error("index data for empty input should be nil")
	}
}

// TestPrimitiveVertexOffsets verifies each field lands at the byte
// offset the vertex layout declares.
func TestPrimitiveVertexOffsets(t *testing.T) {
	v := PrimitiveVertex{
		Position: [3]float32{1, 2, 3},
		Color:    [4]float32{4, 5, 6, 7},
		TexCoord: [2]float32{8, 9},
	}
	data := BuildPrimitiveVertexData([]PrimitiveVertex{v})

	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {4, 2}, {8, 3}, // position
		{12, 4}, {16, 5}, {20, 6}, {24, 7}, // color
		{28, 8}, {32, 9}, // texture_coord
	}
	for _, c := range checks {
		if got := readF32(data, c.off); got != c.want {
			t.Errorf("offset %d = %v, want %v", c.off, got, c.want)
		}
	}
}

func TestPrimitiveInstanceOffsets(t *testing.T) {
	data := BuildPrimitiveInstanceData(PrimitiveInstance{
		TextureRect: [4]float32{1, 2, 3, 4},
		WrapU:       1,
		WrapV:       2,
	})

	for i, want := range []float32{1, 2, 3, 4} {
		if got := readF32(data, i*4); got != want {
			t.Errorf("texture_rect[%d] = %v, want %v", i, got, want)
		}
	}
	if got := readU32(data, 16); got != 1 {
		t.Errorf("wrap_u = %d, want 1", got)
	}
	if got := readU32(data, 20); got != 2 {
		t.Errorf("wrap_v = %d, want 2", got)
	}
}

// TestBoxInstanceOffsets verifies the instance block against the
// attribute offsets in boxVertexLayout.
func TestBoxInstanceOffsets(t *testing.T) {
	data := BuildBoxInstanceData(BoxInstance{
		Rect:            [4]float32{1, 2, 3, 4},
		TextureRect:     [4]float32{5, 6, 7, 8},
		WrapU:           1,
		WrapV:           2,
		Radii:           [4]float32{9, 10, 11, 12},
		BorderThickness: 13,
		GlowRadius:      14,
		GlowColor:       [4]float32{15, 16, 17, 18},
		ShadowOffset:    [2]float32{19, 20},
		ShadowRadius:    21,
		ShadowColor:     [4]float32{22, 23, 24, 25},
	})

	checks := []struct {
		name string
		off  int
		want float32
	}{
		{"rect", 0, 1},
		{"rect.w", 12, 4},
		{"texture_rect", 16, 5},
		{"border_radius", 40, 9},
		{"border_radius.br", 52, 12},
		{"border_thickness", 56, 13},
		{"glow_radius", 60, 14},
		{"glow_color", 64, 15},
		{"shadow_offset.x", 80, 19},
		{"shadow_offset.y", 84, 20},
		{"shadow_radius", 88, 21},
		{"shadow_color", 92, 22},
		{"shadow_color.a", 104, 25},
	}
	for _, c := range checks {
		if got := readF32(data, c.off); got != c.want {
			t.Errorf("%s at offset %d = %v, want %v", c.name, c.off, got, c.want)
		}
	}
	if got := readU32(data, 32); got != 1 {
		t.Errorf("wrap_u = %d, want 1", got)
	}
	if got := readU32(data, 36); got != 2 {
		t.Errorf("wrap_v = %d, want 2", got)
	}
}

func TestMaskVertexOffsets(t *testing.T) {
	data := BuildMaskVertexData([]MaskVertex{{
		Position:  [3]float32{1, 2, 3},
		Color:     [4]float32{4, 5, 6, 7},
		TexCoord:  [2]float32{8, 9},
		MaskCoord: [2]float32{10, 11},
	}})

	if got := readF32(data, 28); got != 8 {
		t.Errorf("texture_coord = %v, want 8", got)
	}
	if got := readF32(data, 36); got != 10 {
		t.Errorf("mask_coord = %v, want 10", got)
	}
	if got := readF32(data, 40); got != 11 {
		t.Errorf("mask_coord.y = %v, want 11", got)
	}
}

func TestQuadIndices(t *testing.T) {
	want := []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	got := QuadIndices(2)
	if len(got) != len(want) {
		t.Fatalf("QuadIndices(2) has %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBoxQuadIndices(t *testing.T) {
	if got := BoxQuadIndices(false); len(got) != 6 {
		t.Errorf("single quad has %d indices, want 6", len(got))
	}
	got := BoxQuadIndices(true)
	want := []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(got) != len(want) {
		t.Fatalf("separate shadow has %d indices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBuildIndexData(t *testing.T) {
	indices := []uint16{0, 1, 2, 0, 2, 3}
	data := BuildIndexData(indices)
	if len(data) != len(indices)*2 {
		t.Fatalf("index data = %d bytes, want %d", len(data), len(indices)*2)
	}
	for i, want := range indices {
		if got := binary.NativeEndian.Uint16(data[i*2 : i*2+2]); got != want {
			t.Errorf("index %d = %d, want %d", i, got, want)
		}
	}
}

func TestPrimitiveQuadVertices(t *testing.T) {
	rect := visual.R(10, 20, 30, 40)
	screen := visual.Mat4Ortho(100, 100)
	color := visual.RGBA{R: 1, G: 0, B: 0, A: 0.5}

	verts := PrimitiveQuadVertices(rect, visual.Rect{}, SolidCorners(color), screen, 0.25)

	// Zero texture bounds stretch the texture over the quad.
	wantUV := [4][2]float32{{0, 0}, {0, 1}, {1, 1}, {1, 0}}
	for i, v := range verts {
		if v.TexCoord != wantUV[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v.TexCoord, wantUV[i])
		}
	}

	// Positions run through the projection; colors pass straight through.
	corners := rect.Corners()
	for i, v := range verts {
		want := screen.TransformXY(corners[i], 0)
		if v.Position[0] != want.X || v.Position[1] != want.Y {
			t.Errorf("vertex %d position = %v, want (%v, %v)", i, v.Position, want.X, want.Y)
		}
		if v.Position[2] != 0.25 {
			t.Errorf("vertex %d depth = %v, want 0.25", i, v.Position[2])
		}
		if v.Color != [4]float32{1, 0, 0, 0.5} {
			t.Errorf("vertex %d color = %v, want translucent red", i, v.Color)
		}
	}
}

func TestPrimitiveQuadVerticesTextureBounds(t *testing.T) {
	rect := visual.R(10, 20, 30, 40)
	bounds := visual.R(0, 0, 60, 80)

	verts := PrimitiveQuadVertices(rect, bounds, SolidCorners(visual.White), visual.Mat4Identity(), 0)

	wantUV := rect.RelativeTo(bounds).Corners()
	for i, v := range verts {
		if !f32close(v.TexCoord[0], wantUV[i].X) || !f32close(v.TexCoord[1], wantUV[i].Y) {
			t.Errorf("vertex %d uv = %v, want (%v, %v)", i, v.TexCoord, wantUV[i].X, wantUV[i].Y)
		}
	}
}

func f32close(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= 1e-5
}

func TestMaskQuadVertices(t *testing.T) {
	rect := visual.R(0, 0, 10, 10)
	texBounds := visual.R(0, 0, 20, 20)
	maskBounds := visual.R(-10, -10, 20, 20)

	verts := MaskQuadVertices(rect, SolidCorners(visual.White), texBounds, maskBounds, visual.Mat4Identity(), 0)

	// Texture and mask coordinates come from independent placements.
	if verts[0].TexCoord != [2]float32{0, 0} {
		t.Errorf("tl uv = %v, want (0, 0)", verts[0].TexCoord)
	}
	if verts[0].MaskCoord != [2]float32{0.5, 0.5} {
		t.Errorf("tl mask uv = %v, want (0.5, 0.5)", verts[0].MaskCoord)
	}
	if verts[2].TexCoord != [2]float32{0.5, 0.5} {
		t.Errorf("br uv = %v, want (0.5, 0.5)", verts[2].TexCoord)
	}
	if verts[2].MaskCoord != [2]float32{1, 1} {
		t.Errorf("br mask uv = %v, want (1, 1)", verts[2].MaskCoord)
	}
}

func TestBuildBoxQuadSingle(t *testing.T) {
	q := BoxQuad{
		Rect: visual.R(100, 100, 50, 50),
		Style: visual.BoxStyle{
			BorderThickness: 2,
			GlowRadius:      4,
		},
		FillColors:   SolidCorners(visual.RGBA{R: 1, A: 1}),
		BorderColors: SolidCorners(visual.RGBA{B: 1, A: 1}),
	}

	verts, inst, separate := BuildBoxQuad(q, visual.Mat4Identity(), 0)
	if separate {
		t.Fatal("shadowless box should not emit a separate shadow quad")
	}
	if len(verts) != 4 {
		t.Fatalf("got %d vertices, want 4", len(verts))
	}

	// The quad covers the rect inflated by border and glow margin:
	// thickness + 1 + glow = 7.
	wantCorners := visual.R(93, 93, 64, 64).Corners()
	for i, v := range verts {
		want := [2]float32{wantCorners[i].X, wantCorners[i].Y}
		if v.RectCoord != want {
			t.Errorf("vertex %d rect_coord = %v, want %v", i, v.RectCoord, want)
		}
		if v.Position[0] != want[0] || v.Position[1] != want[1] {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, want)
		}
	}

	// The instance carries the un-inflated rect.
	if inst.Rect != [4]float32{100, 100, 50, 50} {
		t.Errorf("instance rect = %v, want original rect", inst.Rect)
	}
	if inst.BorderThickness != 2 || inst.GlowRadius != 4 {
		t.Errorf("instance style = (%v, %v), want (2, 4)", inst.BorderThickness, inst.GlowRadius)
	}
}

func TestBuildBoxQuadShadowUnion(t *testing.T) {
	q := BoxQuad{
		Rect: visual.R(100, 100, 50, 50),
		Style: visual.BoxStyle{
			BorderThickness: 2,
			GlowRadius:      4,
			ShadowOffset:    visual.V2(10, 0),
			ShadowRadius:    6,
			ShadowColor:     visual.RGBA{A: 0.5},
		},
	}

	verts, _, separate := BuildBoxQuad(q, visual.Mat4Identity(), 0)
	if separate {
		t.Fatal("overlapping shadow should extend the main quad, not split")
	}
	if len(verts) != 4 {
		t.Fatalf("got %d vertices, want 4", len(verts))
	}

	// Main bounds (93,93,64,64) union shadow bounds (101,91,68,68).
	wantCorners := visual.R(93, 91, 76, 68).Corners()
	for i, v := range verts {
		want := [2]float32{wantCorners[i].X, wantCorners[i].Y}
		if v.RectCoord != want {
			t.Errorf("vertex %d rect_coord = %v, want %v", i, v.RectCoord, want)
		}
	}
}

func TestBuildBoxQuadSeparateShadow(t *testing.T) {
	q := BoxQuad{
		Rect: visual.R(0, 0, 10, 10),
		Style: visual.BoxStyle{
			ShadowOffset: visual.V2(100, 0),
			ShadowRadius: 2,
			ShadowColor:  visual.RGBA{A: 0.5},
		},
		FillColors: SolidCorners(visual.White),
	}

	verts, _, separate := BuildBoxQuad(q, visual.Mat4Identity(), 0)
	if !separate {
		t.Fatal("far shadow should emit a separate quad")
	}
	if len(verts) != 8 {
		t.Fatalf("got %d vertices, want 8", len(verts))
	}

	// Shadow quad covers the shadow bounds: rect inflated by
	// border inflation + shadow radius = 3, shifted by the offset.
	wantCorners := visual.R(97, -3, 16, 16).Corners()
	for i, v := range verts[4:] {
		want := [2]float32{wantCorners[i].X, wantCorners[i].Y}
		if v.RectCoord != want {
			t.Errorf("shadow vertex %d rect_coord = %v, want %v", i, v.RectCoord, want)
		}
		// Zeroed colors keep every non-shadow layer transparent here.
		if v.FillColor != ([4]float32{}) || v.BorderColor != ([4]float32{}) {
			t.Errorf("shadow vertex %d has nonzero colors", i)
		}
	}

	// Main quad keeps its own corners and colors.
	if verts[0].RectCoord != [2]float32{-1, -1} {
		t.Errorf("main vertex 0 rect_coord = %v, want (-1, -1)", verts[0].RectCoord)
	}
	if verts[0].FillColor != [4]float32{1, 1, 1, 1} {
		t.Errorf("main vertex 0 fill = %v, want white", verts[0].FillColor)
	}
}

func TestBuildBoxQuadDefaults(t *testing.T) {
	q := BoxQuad{
		Rect:  visual.R(0, 0, 10, 10),
		WrapU: visual.WrapRepeat,
		WrapV: visual.WrapClamp,
	}

	_, inst, _ := BuildBoxQuad(q, visual.Mat4Identity(), 0)

	if inst.TextureRect != [4]float32{0, 0, 1, 1} {
		t.Errorf("texture rect = %v, want whole texture", inst.TextureRect)
	}
	if inst.WrapU != uint32(visual.WrapRepeat) || inst.WrapV != uint32(visual.WrapClamp) {
		t.Errorf("wrap = (%d, %d), want (%d, %d)",
			inst.WrapU, inst.WrapV, visual.WrapRepeat, visual.WrapClamp)
	}
}

func TestAppendGlyphVertices(t *testing.T) {
	glyph := visual.R(10, 10, 20, 30)
	texRect := visual.R(0.25, 0.5, 0.25, 0.25)
	color := visual.RGBA{G: 1, A: 0.5}

	verts := AppendGlyphVertices(nil, glyph, texRect, color, visual.Mat4Identity(), 0.5)
	if len(verts) != 6 {
		t.Fatalf("got %d vertices, want 6", len(verts))
	}

	lt, lb, rt, rb := verts[0], verts[1], verts[2], verts[5]
	if lt.Position != [3]float32{10, 10, 0.5} {
		t.Errorf("lt position = %v", lt.Position)
	}
	if lb.Position != [3]float32{10, 40, 0.5} {
		t.Errorf("lb position = %v", lb.Position)
	}
	if rb.Position != [3]float32{30, 40, 0.5} {
		t.Errorf("rb position = %v", rb.Position)
	}
	if lt.TexCoord != [2]float32{0.25, 0.5} {
		t.Errorf("lt uv = %v", lt.TexCoord)
	}
	if rb.TexCoord != [2]float32{0.5, 0.75} {
		t.Errorf("rb uv = %v", rb.TexCoord)
	}

	// Triangles share the diagonal: (lt, lb, rt) and (rt, lb, rb).
	if verts[3] != rt || verts[4] != lb {
		t.Error("triangle order should reuse rt and lb on the diagonal")
	}

	if lt.Color != [4]float32{0, 1, 0, 0.5} {
		t.Errorf("color = %v, want translucent green", lt.Color)
	}
}

func TestAppendGlyphVerticesSkipsEmptyAtlasRect(t *testing.T) {
	verts := AppendGlyphVertices(nil, visual.R(0, 0, 10, 10), visual.R(0, 0, 0, 0.5), visual.White, visual.Mat4Identity(), 0)
	if len(verts) != 0 {
		t.Errorf("zero-area atlas rect should be skipped, got %d vertices", len(verts))
	}
}

func TestNewPathVertex(t *testing.T) {
	v := NewPathVertex(visual.V2(3, 4), 0.5, visual.RGBA{R: 1, A: 0.5})
	if v.Position != [3]float32{3, 4, 0.5} {
		t.Errorf("position = %v", v.Position)
	}
	if v.Color != [4]float32{1, 0, 0, 0.5} {
		t.Errorf("color = %v, want translucent red", v.Color)
	}
}

func TestBuildPathInstanceData(t *testing.T) {
	data := BuildPathInstanceData(PathInstance{Transform: visual.Mat4Translation(5, 6, 0)})

	if got := readF32(data, 0); got != 1 {
		t.Errorf("matrix_0.x = %v, want 1", got)
	}
	// Column-major: the translation column lands in matrix_3.
	if got := readF32(data, 48); got != 5 {
		t.Errorf("matrix_3.x = %v, want 5", got)
	}
	if got := readF32(data, 52); got != 6 {
		t.Errorf("matrix_3.y = %v, want 6", got)
	}
	if got := readF32(data, 60); got != 1 {
		t.Errorf("matrix_3.w = %v, want 1", got)
	}
}

func TestSolidCorners(t *testing.T) {
	c := visual.RGBA{R: 0.5, G: 0.25, B: 1, A: 1}
	corners := SolidCorners(c)
	for i, got := range corners {
		if got != c {
			t.Errorf("corner %d = %v, want %v", i, got, c)
		}
	}
}
