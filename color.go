// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import "image/color"

// RGBA is a color with red, green, blue and alpha components in [0, 1].
// It is the wire format every pipeline consumes: four float32 channels,
// packed directly into vertex and instance buffers.
type RGBA struct {
	R, G, B, A float32
}

// Common colors used by the shader defaults.
var (
	// White is the opaque-white fallback color returned by bounds-checked
	// and wrap-aware texture lookups that fall outside their sub-rectangle.
	White = RGBA{R: 1, G: 1, B: 1, A: 1}

	// Transparent is the background every box fragment starts from before
	// the effect layers are blended in.
	Transparent = RGBA{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	out := RGBA{
		R: float32(r) / 65535,
		G: float32(g) / 65535,
		B: float32(b) / 65535,
		A: float32(a) / 65535,
	}
	// color.Color is alpha-premultiplied; the pipelines carry straight alpha.
	return out.Unpremultiply()
}

// WithAlpha returns the color with its alpha replaced.
func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = a
	return c
}

// Premultiply returns a premultiplied color.
func (c RGBA) Premultiply() RGBA {
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply returns an unpremultiplied color.
func (c RGBA) Unpremultiply() RGBA {
	if c.A == 0 {
		return RGBA{}
	}
	return RGBA{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Mul multiplies two colors componentwise. This is the texture-tint
// operation every textured fragment performs: vertex color times sample.
func (c RGBA) Mul(o RGBA) RGBA {
	return RGBA{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

// Lerp interpolates componentwise between c and o. It matches the GPU
// mix() builtin on all four channels, which is how effect layers
// overwrite the accumulator: the result's alpha is interpolated too,
// not composited under.
func (c RGBA) Lerp(o RGBA, t float32) RGBA {
	return RGBA{
		R: c.R + (o.R-c.R)*t,
		G: c.G + (o.G-c.G)*t,
		B: c.B + (o.B-c.B)*t,
		A: c.A + (o.A-c.A)*t,
	}
}

// Array returns the color as a 4-element array in buffer order.
func (c RGBA) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func clamp255(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
