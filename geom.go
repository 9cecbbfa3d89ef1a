// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import "math"

// Vec2 is a 2D point or direction in float32, the precision GPU
// pipelines operate in.
type Vec2 struct {
	X, Y float32
}

// V2 constructs a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float32 {
	return float32(math.Hypot(float64(v.X), float64(v.Y)))
}

// Abs returns v with both components made non-negative.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: abs32(v.X), Y: abs32(v.Y)}
}

// Max returns the componentwise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: max32(v.X, o.X), Y: max32(v.Y, o.Y)}
}

// Rect is an axis-aligned rectangle with origin at the top-left corner.
// Rectangles are used both for geometry (screen-space bounds) and for
// texture sub-regions in normalized UV space.
type Rect struct {
	X, Y, W, H float32
}

// R constructs a Rect from origin and size.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// UnitRect is the normalized [0,1] square, the texture rectangle that
// selects a whole texture.
var UnitRect = Rect{X: 0, Y: 0, W: 1, H: 1}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec2 {
	return Vec2{X: r.X, Y: r.Y}
}

// Size returns the rectangle extent.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.W, Y: r.H}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vec2 {
	return Vec2{X: r.X + r.W, Y: r.Y + r.H}
}

// Center returns the rectangle midpoint.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// HalfSize returns half the rectangle extent.
func (r Rect) HalfSize() Vec2 {
	return Vec2{X: r.W / 2, Y: r.H / 2}
}

// Area returns W*H. Negative sizes yield negative areas, which callers
// use to skip degenerate quads.
func (r Rect) Area() float32 {
	return r.W * r.H
}

// Inflate grows the rectangle by dx and dy on every side. Negative
// values shrink it.
func (r Rect) Inflate(dx, dy float32) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside r. Edges count as inside, so
// a point exactly on the maximum edge is still contained.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Intersects reports whether r and o overlap with positive area.
// Rectangles that merely share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x0 := min32(r.X, o.X)
	y0 := min32(r.Y, o.Y)
	x1 := max32(r.X+r.W, o.X+o.W)
	y1 := max32(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RelativeTo expresses r in the normalized coordinate space of base:
// base's origin maps to (0,0) and its far corner to (1,1). Corners of
// the result are the UV coordinates of r's corners within base.
func (r Rect) RelativeTo(base Rect) Rect {
	return Rect{
		X: (r.X - base.X) / base.W,
		Y: (r.Y - base.Y) / base.H,
		W: r.W / base.W,
		H: r.H / base.H,
	}
}

// Lerp returns the point at normalized coordinates (u,v) inside r.
func (r Rect) Lerp(u, v float32) Vec2 {
	return Vec2{X: r.X + u*r.W, Y: r.Y + v*r.H}
}

// Corners returns the rectangle corners in quad emission order:
// top-left, bottom-left, bottom-right, top-right.
func (r Rect) Corners() [4]Vec2 {
	return [4]Vec2{
		{X: r.X, Y: r.Y},
		{X: r.X, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X + r.W, Y: r.Y},
	}
}

// Mat4 is a 4x4 transformation matrix in column-major order, the
// layout GPU shaders consume directly: element (row r, column c) is
// stored at index c*4+r.
type Mat4 [16]float32

// Mat4Identity returns the identity matrix.
func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translation returns a matrix translating by (x, y, z).
func Mat4Translation(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Mat4Scaling returns a matrix scaling by (x, y, z).
func Mat4Scaling(x, y, z float32) Mat4 {
	m := Mat4Identity()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// Mat4Ortho returns a projection from pixel space to clip space for a
// target of the given size: x maps [0,w] to [-1,1] and y maps [0,h] to
// [1,-1], so the pixel origin lands in the top-left corner. Z passes
// through unchanged.
func Mat4Ortho(width, height float32) Mat4 {
	m := Mat4Identity()
	m[0] = 2 / width
	m[5] = -2 / height
	m[12] = -1
	m[13] = 1
	return m
}

// Mul returns m * o, applying o first.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * o[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Column returns column c as a 4-element array, the form instance
// buffers carry matrices in.
func (m Mat4) Column(c int) [4]float32 {
	return [4]float32{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// TransformXY applies m to the point (p.X, p.Y, z, 1) and returns the
// transformed X and Y. The caller keeps its own Z and a W of 1, which
// is how transformed flat geometry preserves its assigned depth.
func (m Mat4) TransformXY(p Vec2, z float32) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[4]*p.Y + m[8]*z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*z + m[13],
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fract32 returns the fractional part of v in [0,1), matching the WGSL
// fract builtin: v - floor(v), so negative inputs wrap upward.
func fract32(v float32) float32 {
	return v - float32(math.Floor(float64(v)))
}
