// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

// BoxStyle describes the per-corner rounding and the effect layers of a
// rounded box: border, outer glow and drop shadow. The zero value is a
// plain sharp-cornered box with every effect disabled.
//
// All distances are in the same units as the box rectangle, normally
// pixels.
type BoxStyle struct {
	// Radii holds the corner radii in quadrant order: top-left,
	// top-right, bottom-left, bottom-right.
	Radii [4]float32

	// BorderThickness is the width of the border ring drawn outward
	// from the box edge. Zero disables the border.
	BorderThickness float32

	// GlowRadius is how far the glow falls off beyond the border.
	// Zero disables the glow.
	GlowRadius float32

	// GlowColor is the glow color at the border edge, fading to
	// transparent over GlowRadius.
	GlowColor RGBA

	// ShadowOffset shifts the drop shadow relative to the box.
	ShadowOffset Vec2

	// ShadowRadius is the shadow falloff distance. Zero disables the
	// shadow entirely.
	ShadowRadius float32

	// ShadowColor is the shadow color at the box edge.
	ShadowColor RGBA
}

// BorderInflation returns how far the border extends past the box
// rectangle. The extra unit covers the one-pixel falloff band that
// antialiases the outer edge.
func (s BoxStyle) BorderInflation() float32 {
	return s.BorderThickness + 1
}

// Inflation returns the total outward extent of border and glow, the
// margin the box quad must grow by so no effect pixel is clipped.
func (s BoxStyle) Inflation() float32 {
	return s.BorderInflation() + s.GlowRadius
}

// BoxBounds returns the quad rectangle for a box drawn at rect: the
// rectangle inflated by the border and glow extent.
func (s BoxStyle) BoxBounds(rect Rect) Rect {
	d := s.Inflation()
	return rect.Inflate(d, d)
}

// ShadowBounds returns the quad rectangle covering the drop shadow:
// the box inflated by the border and shadow extent, shifted by the
// shadow offset.
func (s BoxStyle) ShadowBounds(rect Rect) Rect {
	d := s.BorderInflation() + s.ShadowRadius
	return rect.Inflate(d, d).Translate(s.ShadowOffset)
}

// SeparateShadowQuad reports whether the shadow has moved clear of the
// box quad and needs its own quad. When the two rectangles still
// overlap the caller should instead draw one quad covering their
// union, since splitting would double-blend the overlap.
func (s BoxStyle) SeparateShadowQuad(rect Rect) bool {
	return !s.BoxBounds(rect).Intersects(s.ShadowBounds(rect))
}
