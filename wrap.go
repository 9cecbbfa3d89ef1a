// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"fmt"
	"image"
)

// WrapMode controls how texture coordinates outside [0,1] are treated
// before a texture is sampled. Modes are applied per axis, so U and V
// can wrap independently.
//
// The numeric values are part of the wire format: instances carry one
// uint32 per axis and shaders branch on the raw value.
type WrapMode uint32

const (
	// WrapNone passes coordinates through untouched. Out-of-range
	// coordinates then fail the bounds check and sample opaque white.
	WrapNone WrapMode = 0

	// WrapClamp clamps each coordinate to [0,1], extending edge texels.
	WrapClamp WrapMode = 1

	// WrapRepeat keeps only the fractional part of each coordinate,
	// tiling the texture.
	WrapRepeat WrapMode = 2
)

// String returns the mode name for logs and test output.
func (m WrapMode) String() string {
	switch m {
	case WrapNone:
		return "none"
	case WrapClamp:
		return "clamp"
	case WrapRepeat:
		return "repeat"
	default:
		return fmt.Sprintf("WrapMode(%d)", uint32(m))
	}
}

// Wrap applies the mode to a single coordinate.
func (m WrapMode) Wrap(c float32) float32 {
	switch m {
	case WrapClamp:
		return clamp01(c)
	case WrapRepeat:
		return fract32(c)
	default:
		return c
	}
}

// WrapUV applies independent wrap modes to the U and V axes.
func WrapUV(uv Vec2, wrapU, wrapV WrapMode) Vec2 {
	return Vec2{X: wrapU.Wrap(uv.X), Y: wrapV.Wrap(uv.Y)}
}

// TextureSource is a sampleable texture for the CPU reference path.
// Sample takes normalized coordinates with (0,0) at the top-left of
// the texture and returns straight-alpha color.
type TextureSource interface {
	Sample(uv Vec2) RGBA
}

// SolidSource is a TextureSource of a single uniform color.
type SolidSource struct {
	Color RGBA
}

// Sample returns the solid color regardless of coordinates.
func (s SolidSource) Sample(uv Vec2) RGBA {
	return s.Color
}

// ImageSource samples an image.Image with nearest-neighbor lookup.
// Coordinates are clamped to the image, matching a clamp-to-edge
// sampler on the GPU.
type ImageSource struct {
	Image image.Image
}

// Sample returns the texel nearest to uv.
func (s ImageSource) Sample(uv Vec2) RGBA {
	b := s.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return Transparent
	}
	x := int(uv.X * float32(b.Dx()))
	y := int(uv.Y * float32(b.Dy()))
	if x < 0 {
		x = 0
	}
	if x > b.Dx()-1 {
		x = b.Dx() - 1
	}
	if y < 0 {
		y = 0
	}
	if y > b.Dy()-1 {
		y = b.Dy() - 1
	}
	return FromColor(s.Image.At(b.Min.X+x, b.Min.Y+y))
}

// SampleBounded samples src at uv, returning opaque white when uv lies
// outside the unit square. Edges count as inside. This is the fallback
// rule bounds-checked fragments use so that a missing or out-of-range
// texture leaves the vertex color untinted.
func SampleBounded(src TextureSource, uv Vec2) RGBA {
	if !UnitRect.Contains(uv) {
		return White
	}
	return src.Sample(uv)
}

// SampleRect remaps uv from quad space into the texture sub-rectangle
// texRect and samples src there. Remapped coordinates outside texRect
// (edges inclusive) return opaque white, keeping neighbors in a shared
// atlas from bleeding in.
func SampleRect(src TextureSource, uv Vec2, texRect Rect) RGBA {
	mapped := Vec2{X: texRect.X + uv.X*texRect.W, Y: texRect.Y + uv.Y*texRect.H}
	if !texRect.Contains(mapped) {
		return White
	}
	return src.Sample(mapped)
}

// SampleWrapped applies the per-axis wrap modes to uv and then samples
// through the sub-rectangle like SampleRect. Wrapping runs first, in
// quad space, so a repeated coordinate tiles within the sub-rectangle
// rather than across the whole atlas.
func SampleWrapped(src TextureSource, uv Vec2, texRect Rect, wrapU, wrapV WrapMode) RGBA {
	return SampleRect(src, WrapUV(uv, wrapU, wrapV), texRect)
}
