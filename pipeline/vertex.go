// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package pipeline

import (
	"encoding/binary"
	"math"
	"structs"

	"honnef.co/go/safeish"

	"github.com/gogpu/visual"
)

// PrimitiveVertexStride is the byte stride per textured quad vertex.
// Layout per vertex:
//
//	position      (vec3<f32>) = 12 bytes (location 0)
//	color         (vec4<f32>) = 16 bytes (location 1)
//	texture_coord (vec2<f32>) = 8 bytes  (location 2)
//
// Total = 36 bytes per vertex.
const PrimitiveVertexStride = 36

// PrimitiveInstanceStride is the byte stride of the per-call instance
// attributes for the sub-rectangle and wrap-aware variants.
// Layout per instance:
//
//	texture_rect (vec4<f32>) = 16 bytes (location 3)
//	wrap_mode    (vec2<u32>) = 8 bytes  (location 4)
//
// Total = 24 bytes per instance.
const PrimitiveInstanceStride = 24

// BoxVertexStride is the byte stride per box vertex.
// Layout per vertex:
//
//	position      (vec3<f32>) = 12 bytes (location 0)
//	fill_color    (vec4<f32>) = 16 bytes (location 1)
//	border_color  (vec4<f32>) = 16 bytes (location 2)
//	rect_coord    (vec2<f32>) = 8 bytes  (location 3)
//	texture_coord (vec2<f32>) = 8 bytes  (location 4)
//
// Total = 60 bytes per vertex.
const BoxVertexStride = 60

// BoxInstanceStride is the byte stride of the per-call box instance.
// Layout per instance:
//
//	rect              (vec4<f32>) = 16 bytes (location 5)
//	texture_rect      (vec4<f32>) = 16 bytes (location 6)
//	texture_wrap_mode (vec2<u32>) = 8 bytes  (location 7)
//	border_radius     (vec4<f32>) = 16 bytes (location 8)
//	border_thickness  (f32)       = 4 bytes  (location 9)
//	glow_radius       (f32)       = 4 bytes  (location 10)
//	glow_color        (vec4<f32>) = 16 bytes (location 11)
//	shadow_offset     (vec2<f32>) = 8 bytes  (location 12)
//	shadow_radius     (f32)       = 4 bytes  (location 13)
//	shadow_color      (vec4<f32>) = 16 bytes (location 14)
//
// Total = 108 bytes per instance.
const BoxInstanceStride = 108

// MaskVertexStride is the byte stride per masked quad vertex.
// Layout per vertex:
//
//	position      (vec3<f32>) = 12 bytes (location 0)
//	color         (vec4<f32>) = 16 bytes (location 1)
//	texture_coord (vec2<f32>) = 8 bytes  (location 2)
//	mask_coord    (vec2<f32>) = 8 bytes  (location 3)
//
// Total = 44 bytes per vertex.
const MaskVertexStride = 44

// PathVertexStride is the byte stride per path vertex.
// Layout per vertex:
//
//	position (vec3<f32>) = 12 bytes (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
//
// Total = 28 bytes per vertex.
const PathVertexStride = 28

// PathInstanceStride is the byte stride of the per-instance path
// transform: a 4x4 matrix as four column vectors.
// Layout per instance:
//
//	matrix_0 (vec4<f32>) = 16 bytes (location 2)
//	matrix_1 (vec4<f32>) = 16 bytes (location 3)
//	matrix_2 (vec4<f32>) = 16 bytes (location 4)
//	matrix_3 (vec4<f32>) = 16 bytes (location 5)
//
// Total = 64 bytes per instance.
const PathInstanceStride = 64

// TextVertexStride is the byte stride per glyph vertex.
// Layout per vertex:
//
//	position      (vec3<f32>) = 12 bytes (location 0)
//	color         (vec4<f32>) = 16 bytes (location 1)
//	texture_coord (vec2<f32>) = 8 bytes  (location 2)
//
// Total = 36 bytes per vertex.
const TextVertexStride = 36

// PrimitiveVertex is one textured quad vertex. Position is already in
// clip space; the vertex stage forwards it untouched.
type PrimitiveVertex struct {
	_        structs.HostLayout
	Position [3]float32
	Color    [4]float32
	TexCoord [2]float32
}

// PrimitiveInstance carries the per-call atlas sub-rectangle and wrap
// modes for the sub-rectangle and wrap-aware primitive variants.
type PrimitiveInstance struct {
	_           structs.HostLayout
	TextureRect [4]float32
	WrapU       uint32
	WrapV       uint32
}

// BoxVertex is one corner of a box quad. RectCoord is the corner
// position in the same local space as the instance rect, which the
// fragment stage evaluates the distance field in.
type BoxVertex struct {
	_           structs.HostLayout
	Position    [3]float32
	FillColor   [4]float32
	BorderColor [4]float32
	RectCoord   [2]float32
	TexCoord    [2]float32
}

// BoxInstance is the per-call box data: the un-inflated rectangle, the
// atlas mapping and the effect style.
type BoxInstance struct {
	_               structs.HostLayout
	Rect            [4]float32
	TextureRect     [4]float32
	WrapU           uint32
	WrapV           uint32
	Radii           [4]float32
	BorderThickness float32
	GlowRadius      float32
	GlowColor       [4]float32
	ShadowOffset    [2]float32
	ShadowRadius    float32
	ShadowColor     [4]float32
}

// MaskVertex is one corner of an alpha-masked quad, with independent
// color and mask coordinates.
type MaskVertex struct {
	_         structs.HostLayout
	Position  [3]float32
	Color     [4]float32
	TexCoord  [2]float32
	MaskCoord [2]float32
}

// PathVertex is one triangulated path vertex in the path's own local
// space; the instance transform places it.
type PathVertex struct {
	_        structs.HostLayout
	Position [3]float32
	Color    [4]float32
}

// PathInstance is the per-instance placement transform in column-major
// order.
type PathInstance struct {
	_         structs.HostLayout
	Transform [16]float32
}

// TextVertex is one glyph vertex sampling the coverage atlas.
type TextVertex struct {
	_        structs.HostLayout
	Position [3]float32
	Color    [4]float32
	TexCoord [2]float32
}

func putF32s(buf []byte, off int, vals []float32) int {
	for _, f := range vals {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(f))
		off += 4
	}
	return off
}

func putU32(buf []byte, off int, v uint32) int {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
	return off + 4
}

func writePrimitiveVertex(buf []byte, v *PrimitiveVertex) {
	off := putF32s(buf, 0, v.Position[:])
	off = putF32s(buf, off, v.Color[:])
	putF32s(buf, off, v.TexCoord[:])
}

func writeBoxVertex(buf []byte, v *BoxVertex) {
	off := putF32s(buf, 0, v.Position[:])
	off = putF32s(buf, off, v.FillColor[:])
	off = putF32s(buf, off, v.BorderColor[:])
	off = putF32s(buf, off, v.RectCoord[:])
	putF32s(buf, off, v.TexCoord[:])
}

func writeMaskVertex(buf []byte, v *MaskVertex) {
	off := putF32s(buf, 0, v.Position[:])
	off = putF32s(buf, off, v.Color[:])
	off = putF32s(buf, off, v.TexCoord[:])
	putF32s(buf, off, v.MaskCoord[:])
}

func writePathVertex(buf []byte, v *PathVertex) {
	off := putF32s(buf, 0, v.Position[:])
	putF32s(buf, off, v.Color[:])
}

func writeTextVertex(buf []byte, v *TextVertex) {
	off := putF32s(buf, 0, v.Position[:])
	off = putF32s(buf, off, v.Color[:])
	putF32s(buf, off, v.TexCoord[:])
}

// BuildPrimitiveVertexData serializes vertices into little-endian
// bytes at the pipeline's attribute offsets.
func BuildPrimitiveVertexData(verts []PrimitiveVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*PrimitiveVertexStride)
	for i := range verts {
		writePrimitiveVertex(data[i*PrimitiveVertexStride:], &verts[i])
	}
	return data
}

// BuildPrimitiveInstanceData serializes the per-call instance block.
func BuildPrimitiveInstanceData(inst PrimitiveInstance) []byte {
	data := make([]byte, PrimitiveInstanceStride)
	off := putF32s(data, 0, inst.TextureRect[:])
	off = putU32(data, off, inst.WrapU)
	putU32(data, off, inst.WrapV)
	return data
}

// BuildBoxVertexData serializes box vertices.
func BuildBoxVertexData(verts []BoxVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*BoxVertexStride)
	for i := range verts {
		writeBoxVertex(data[i*BoxVertexStride:], &verts[i])
	}
	return data
}

// BuildBoxInstanceData serializes the per-call box instance block.
func BuildBoxInstanceData(inst BoxInstance) []byte {
	data := make([]byte, BoxInstanceStride)
	off := putF32s(data, 0, inst.Rect[:])
	off = putF32s(data, off, inst.TextureRect[:])
	off = putU32(data, off, inst.WrapU)
	off = putU32(data, off, inst.WrapV)
	off = putF32s(data, off, inst.Radii[:])
	off = putF32s(data, off, []float32{inst.BorderThickness, inst.GlowRadius})
	off = putF32s(data, off, inst.GlowColor[:])
	off = putF32s(data, off, inst.ShadowOffset[:])
	off = putF32s(data, off, []float32{inst.ShadowRadius})
	putF32s(data, off, inst.ShadowColor[:])
	return data
}

// BuildMaskVertexData serializes mask vertices.
func BuildMaskVertexData(verts []MaskVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*MaskVertexStride)
	for i := range verts {
		writeMaskVertex(data[i*MaskVertexStride:], &verts[i])
	}
	return data
}

// BuildPathVertexData serializes path vertices.
func BuildPathVertexData(verts []PathVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*PathVertexStride)
	for i := range verts {
		writePathVertex(data[i*PathVertexStride:], &verts[i])
	}
	return data
}

// BuildPathInstanceData serializes one path placement transform in
// column-major order, matching the four column attributes.
func BuildPathInstanceData(inst PathInstance) []byte {
	data := make([]byte, PathInstanceStride)
	putF32s(data, 0, inst.Transform[:])
	return data
}

// BuildTextVertexData serializes glyph vertices.
func BuildTextVertexData(verts []TextVertex) []byte {
	if len(verts) == 0 {
		return nil
	}
	data := make([]byte, len(verts)*TextVertexStride)
	for i := range verts {
		writeTextVertex(data[i*TextVertexStride:], &verts[i])
	}
	return data
}

// QuadIndices generates the index pattern for a run of quads whose
// corners are emitted in top-left, bottom-left, bottom-right,
// top-right order: triangles (0,1,2) and (0,2,3) per quad.
func QuadIndices(quads int) []uint16 {
	indices := make([]uint16, quads*6)
	for i := 0; i < quads; i++ {
		base := i * 6
		vertex := uint16(i * 4)

		indices[base+0] = vertex + 0
		indices[base+1] = vertex + 1
		indices[base+2] = vertex + 2

		indices[base+3] = vertex + 0
		indices[base+4] = vertex + 2
		indices[base+5] = vertex + 3
	}
	return indices
}

// BoxQuadIndices returns the index pattern for one box draw: a single
// quad, or the main quad plus the detached shadow quad when the shadow
// has moved clear of the box.
func BoxQuadIndices(separateShadow bool) []uint16 {
	if separateShadow {
		return []uint16{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	}
	return []uint16{0, 1, 2, 0, 2, 3}
}

// BuildIndexData reinterprets uint16 indices as the raw bytes an index
// buffer upload takes.
func BuildIndexData(indices []uint16) []byte {
	if len(indices) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](indices)
}

// SolidCorners returns the same color for all four quad corners.
func SolidCorners(c visual.RGBA) [4]visual.RGBA {
	return [4]visual.RGBA{c, c, c, c}
}

func clipPosition(screen visual.Mat4, p visual.Vec2, depth float32) [3]float32 {
	t := screen.TransformXY(p, 0)
	return [3]float32{t.X, t.Y, depth}
}

// PrimitiveQuadVertices lays out one textured quad. Corner colors
// follow visual.Rect.Corners order: top-left, bottom-left,
// bottom-right, top-right, and travel straight-alpha; the fragment
// shaders premultiply their output. textureBounds is the local-space
// rectangle the texture stretches over; pass the zero Rect to stretch
// it over rect itself. screen projects local space to clip space and
// depth becomes the vertex Z.
func PrimitiveQuadVertices(rect, textureBounds visual.Rect, colors [4]visual.RGBA, screen visual.Mat4, depth float32) [4]PrimitiveVertex {
	if textureBounds == (visual.Rect{}) {
		textureBounds = rect
	}
	pos := rect.Corners()
	uv := rect.RelativeTo(textureBounds).Corners()

	var verts [4]PrimitiveVertex
	for i := range verts {
		verts[i] = PrimitiveVertex{
			Position: clipPosition(screen, pos[i], depth),
			Color:    colors[i].Array(),
			TexCoord: [2]float32{uv[i].X, uv[i].Y},
		}
	}
	return verts
}

// MaskQuadVertices lays out one masked quad with independent texture
// and mask placements. Zero bounds rects default to rect, stretching
// the respective texture over the quad.
func MaskQuadVertices(rect visual.Rect, colors [4]visual.RGBA, textureBounds, maskBounds visual.Rect, screen visual.Mat4, depth float32) [4]MaskVertex {
	if textureBounds == (visual.Rect{}) {
		textureBounds = rect
	}
	if maskBounds == (visual.Rect{}) {
		maskBounds = rect
	}
	pos := rect.Corners()
	uv := rect.RelativeTo(textureBounds).Corners()
	muv := rect.RelativeTo(maskBounds).Corners()

	var verts [4]MaskVertex
	for i := range verts {
		verts[i] = MaskVertex{
			Position:  clipPosition(screen, pos[i], depth),
			Color:     colors[i].Array(),
			TexCoord:  [2]float32{uv[i].X, uv[i].Y},
			MaskCoord: [2]float32{muv[i].X, muv[i].Y},
		}
	}
	return verts
}

// NewPathVertex makes one path vertex at a local-space point. The
// instance transform carries the placement, so no projection happens
// here.
func NewPathVertex(p visual.Vec2, depth float32, color visual.RGBA) PathVertex {
	return PathVertex{
		Position: [3]float32{p.X, p.Y, depth},
		Color:    color.Array(),
	}
}

// BoxQuad describes one styled box draw before layout.
type BoxQuad struct {
	// Rect is the box rectangle in local space. The instance carries it
	// un-inflated; the emitted quad grows around it.
	Rect visual.Rect

	// Style holds the radii and effect layers.
	Style visual.BoxStyle

	// FillColors and BorderColors are per-corner in Corners order.
	FillColors   [4]visual.RGBA
	BorderColors [4]visual.RGBA

	// TextureBounds is the local-space rectangle the texture stretches
	// over. Zero defaults to Rect.
	TextureBounds visual.Rect

	// TextureRect is the atlas sub-rectangle in normalized texture
	// coordinates. Zero defaults to the whole texture.
	TextureRect visual.Rect

	// WrapU and WrapV wrap the texture coordinate per axis.
	WrapU, WrapV visual.WrapMode
}

// BuildBoxQuad lays out the vertices and instance for one box draw.
//
// The main quad covers the box inflated by the border and glow margin.
// When the shadow escapes that quad entirely, four extra vertices form
// a detached shadow quad with zeroed colors, so only the shadow layer
// renders there; otherwise the main quad is extended over the union of
// both rectangles. Draw with BoxQuadIndices(separateShadow).
func BuildBoxQuad(q BoxQuad, screen visual.Mat4, depth float32) (verts []BoxVertex, inst BoxInstance, separateShadow bool) {
	bounds := q.Style.BoxBounds(q.Rect)
	shadowBounds := q.Style.ShadowBounds(q.Rect)
	separateShadow = q.Style.SeparateShadowQuad(q.Rect)
	if !separateShadow {
		bounds = bounds.Union(shadowBounds)
	}

	textureBounds := q.TextureBounds
	if textureBounds == (visual.Rect{}) {
		textureBounds = q.Rect
	}
	textureRect := q.TextureRect
	if textureRect == (visual.Rect{}) {
		textureRect = visual.UnitRect
	}

	pos := bounds.Corners()
	uv := bounds.RelativeTo(textureBounds).Corners()

	n := 4
	if separateShadow {
		n = 8
	}
	verts = make([]BoxVertex, 0, n)
	for i := 0; i < 4; i++ {
		verts = append(verts, BoxVertex{
			Position:    clipPosition(screen, pos[i], depth),
			FillColor:   q.FillColors[i].Array(),
			BorderColor: q.BorderColors[i].Array(),
			RectCoord:   [2]float32{pos[i].X, pos[i].Y},
			TexCoord:    [2]float32{uv[i].X, uv[i].Y},
		})
	}
	if separateShadow {
		// Colors and texture coordinates stay zero: the fill, border
		// and glow layers all come out transparent on this quad.
		for _, p := range shadowBounds.Corners() {
			verts = append(verts, BoxVertex{
				Position:  clipPosition(screen, p, depth),
				RectCoord: [2]float32{p.X, p.Y},
			})
		}
	}

	inst = BoxInstance{
		Rect:            [4]float32{q.Rect.X, q.Rect.Y, q.Rect.W, q.Rect.H},
		TextureRect:     [4]float32{textureRect.X, textureRect.Y, textureRect.W, textureRect.H},
		WrapU:           uint32(q.WrapU),
		WrapV:           uint32(q.WrapV),
		Radii:           q.Style.Radii,
		BorderThickness: q.Style.BorderThickness,
		GlowRadius:      q.Style.GlowRadius,
		GlowColor:       q.Style.GlowColor.Array(),
		ShadowOffset:    [2]float32{q.Style.ShadowOffset.X, q.Style.ShadowOffset.Y},
		ShadowRadius:    q.Style.ShadowRadius,
		ShadowColor:     q.Style.ShadowColor.Array(),
	}
	return verts, inst, separateShadow
}

// AppendGlyphVertices appends the six vertices of one glyph quad:
// two triangles in (top-left, bottom-left, top-right) and (top-right,
// bottom-left, bottom-right) order, drawn non-indexed. Glyphs whose
// atlas rectangle has no area are skipped.
func AppendGlyphVertices(dst []TextVertex, glyph, textureRect visual.Rect, color visual.RGBA, screen visual.Mat4, depth float32) []TextVertex {
	if textureRect.Area() <= 0 {
		return dst
	}

	c := color.Array()
	lt := TextVertex{
		Position: clipPosition(screen, glyph.Origin(), depth),
		Color:    c,
		TexCoord: [2]float32{textureRect.X, textureRect.Y},
	}
	lb := TextVertex{
		Position: clipPosition(screen, visual.V2(glyph.X, glyph.Y+glyph.H), depth),
		Color:    c,
		TexCoord: [2]float32{textureRect.X, textureRect.Y + textureRect.H},
	}
	rt := TextVertex{
		Position: clipPosition(screen, visual.V2(glyph.X+glyph.W, glyph.Y), depth),
		Color:    c,
		TexCoord: [2]float32{textureRect.X + textureRect.W, textureRect.Y},
	}
	rb := TextVertex{
		Position: clipPosition(screen, glyph.Max(), depth),
		Color:    c,
		TexCoord: [2]float32{textureRect.X + textureRect.W, textureRect.Y + textureRect.H},
	}
	return append(dst, lt, lb, rt, rt, lb, rb)
}
