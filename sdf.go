// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

// FalloffExponent is the exponent shaping every effect falloff curve:
// a layer fades with weight 1 - t^FalloffExponent over its normalized
// distance t in [0,1]. The shaders inline the squared form, so changing
// this constant requires the matching shader edit.
const FalloffExponent = 2.0

// RadiusAt selects the corner radius for the quadrant containing coord.
// radii is ordered top-left, top-right, bottom-left, bottom-right. The
// comparisons use <= against the center so pixels exactly on a center
// line deterministically pick the right or bottom quadrant; both sides
// of every seam must agree on this tie-break or the center lines show
// a one-pixel discontinuity.
func RadiusAt(radii [4]float32, center, coord Vec2) float32 {
	idx := 0
	if center.X <= coord.X {
		idx |= 1
	}
	if center.Y <= coord.Y {
		idx |= 2
	}
	return radii[idx]
}

// BoxSDF evaluates the rounded-box field of rect at coord: it selects
// the quadrant radius and returns the componentwise outward delta
// max(|center - coord| - half_size + radius, 0) together with the
// selected radius.
func BoxSDF(rect Rect, radii [4]float32, coord Vec2) (delta Vec2, radius float32) {
	center := rect.Center()
	radius = RadiusAt(radii, center, coord)
	half := rect.HalfSize()
	d := center.Sub(coord).Abs().Sub(half)
	delta = Vec2{X: d.X + radius, Y: d.Y + radius}.Max(Vec2{})
	return delta, radius
}

// BoxDistance returns the distance from coord to the rounded boundary
// of rect: 0 strictly inside or on the boundary, positive outside,
// continuous everywhere.
func BoxDistance(rect Rect, radii [4]float32, coord Vec2) float32 {
	delta, radius := BoxSDF(rect, radii, coord)
	return max32(delta.Length()-radius, 0)
}

// falloffWeight is the blend weight of a layer at normalized falloff
// distance t. Matches the shaders, which inline the squared form of
// FalloffExponent.
func falloffWeight(t float32) float32 {
	return 1 - t*t
}

// guardedDiv divides x by y, short-circuiting a zero divisor to 0 so
// zero-radius effects produce no contribution instead of NaN.
func guardedDiv(x, y float32) float32 {
	if y == 0 {
		return 0
	}
	return x / y
}

// BoxFragment carries everything one box fragment invocation reads:
// the interpolated vertex attributes and the per-call instance data.
// Texture may be nil, which samples as opaque white exactly like the
// pipelines' fallback binding.
type BoxFragment struct {
	// Rect is the box rectangle in local space, un-inflated.
	Rect Rect

	// Style holds the radii and effect layers.
	Style BoxStyle

	// FillColor and BorderColor are the interpolated vertex colors.
	FillColor   RGBA
	BorderColor RGBA

	// Coord is the fragment position in the same local space as Rect.
	Coord Vec2

	// TexCoord is the texture coordinate in quad space, before wrap
	// and sub-rectangle remapping.
	TexCoord Vec2

	// Texture and TextureRect select the sampled atlas region;
	// WrapU/WrapV wrap TexCoord per axis before the remap.
	Texture     TextureSource
	TextureRect Rect
	WrapU       WrapMode
	WrapV       WrapMode
}

// ShadeBox is the reference evaluation of one box fragment. It mirrors
// the box fragment shader exactly: the effect layers are blended into a
// transparent accumulator in fixed back-to-front order, each active
// layer overwriting the previous mix result on all four channels.
func ShadeBox(f BoxFragment) RGBA {
	s := f.Style
	out := Transparent

	// Shadow, evaluated at the coordinate shifted against the offset.
	sd := BoxDistance(f.Rect, s.Radii, f.Coord.Sub(s.ShadowOffset))
	if sd < s.ShadowRadius {
		t := guardedDiv(sd, s.ShadowRadius)
		out = out.Lerp(s.ShadowColor, falloffWeight(t))
	}

	d := BoxDistance(f.Rect, s.Radii, f.Coord)

	// Glow band just outside the border.
	if d > s.BorderThickness && d <= s.BorderThickness+s.GlowRadius {
		t := guardedDiv(d-s.BorderThickness, s.GlowRadius)
		out = out.Lerp(s.GlowColor, falloffWeight(t))
	}

	// Border ring with a one-unit outer antialiasing margin. The inner
	// boundary excludes distance 0 only for zero-thickness borders,
	// which otherwise would tint the fill edge.
	if d < s.BorderThickness+1 && (d > 0 || s.BorderThickness > 0) {
		out = out.Lerp(f.BorderColor, falloffWeight(max32(d-s.BorderThickness, 0)))
	}

	// Fill, textured through the wrap-aware atlas chain.
	if d < 1 {
		fill := f.FillColor.Mul(sampleOrWhite(f.Texture, f.TexCoord, f.TextureRect, f.WrapU, f.WrapV))
		out = out.Lerp(fill, falloffWeight(d))
	}

	return out
}

func sampleOrWhite(src TextureSource, uv Vec2, texRect Rect, wrapU, wrapV WrapMode) RGBA {
	if src == nil {
		src = SolidSource{Color: White}
	}
	return SampleWrapped(src, uv, texRect, wrapU, wrapV)
}

// ShadePrimitive mirrors the direct primitive fragment: vertex color
// times the texture sample. A nil src samples opaque white.
func ShadePrimitive(color RGBA, src TextureSource, uv Vec2) RGBA {
	if src == nil {
		return color
	}
	return color.Mul(src.Sample(uv))
}

// ShadePrimitiveBounds mirrors the bounds-checked primitive fragment:
// samples outside the unit square are replaced by opaque white, so the
// vertex color passes through untinted there.
func ShadePrimitiveBounds(color RGBA, src TextureSource, uv Vec2) RGBA {
	if src == nil {
		return color
	}
	return color.Mul(SampleBounded(src, uv))
}

// ShadePrimitiveRect mirrors the sub-rectangle primitive fragment: the
// coordinate is remapped into texRect and sampled with no wrap and no
// bounds check.
func ShadePrimitiveRect(color RGBA, src TextureSource, uv Vec2, texRect Rect) RGBA {
	if src == nil {
		return color
	}
	return color.Mul(src.Sample(texRect.Lerp(uv.X, uv.Y)))
}

// ShadePrimitiveWrap mirrors the wrap-aware primitive fragment: uv is
// wrapped per axis, remapped into texRect and bounds-checked against
// it, sampling opaque white outside.
func ShadePrimitiveWrap(color RGBA, src TextureSource, uv Vec2, texRect Rect, wrapU, wrapV WrapMode) RGBA {
	if src == nil {
		return color
	}
	return color.Mul(SampleWrapped(src, uv, texRect, wrapU, wrapV))
}

// ShadeMask mirrors the mask fragment: the primary color is tinted by
// the primary texture, then its alpha is scaled by the single-channel
// intensity of the mask texture at an independent coordinate.
func ShadeMask(color RGBA, src TextureSource, uv Vec2, mask TextureSource, maskUV Vec2) RGBA {
	out := ShadePrimitive(color, src, uv)
	if mask != nil {
		out.A *= mask.Sample(maskUV).R
	}
	return out
}

// ShadeText mirrors the text fragment: the vertex color keeps its RGB
// and its alpha is multiplied by the coverage channel sampled from the
// glyph atlas.
func ShadeText(color RGBA, atlas TextureSource, uv Vec2) RGBA {
	if atlas == nil {
		return color
	}
	color.A *= atlas.Sample(uv).R
	return color
}
