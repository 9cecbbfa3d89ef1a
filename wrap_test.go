// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import (
	"image"
	"image/color"
	"testing"
)

func TestWrapModeWrap(t *testing.T) {
	tests := []struct {
		name string
		mode WrapMode
		in   float32
		want float32
	}{
		{"none passes through", WrapNone, 1.3, 1.3},
		{"none negative", WrapNone, -0.5, -0.5},
		{"clamp high", WrapClamp, 1.3, 1},
		{"clamp low", WrapClamp, -0.5, 0},
		{"clamp in range", WrapClamp, 0.7, 0.7},
		{"repeat high", WrapRepeat, 1.3, 0.3},
		{"repeat exact", WrapRepeat, 2, 0},
		{"repeat negative", WrapRepeat, -0.25, 0.75},
		{"repeat in range", WrapRepeat, 0.6, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Wrap(tt.in); !close32(got, tt.want) {
				t.Errorf("%v.Wrap(%v) = %v, want %v", tt.mode, tt.in, got, tt.want)
			}
		})
	}
}

func TestWrapModeString(t *testing.T) {
	if got := WrapRepeat.String(); got != "repeat" {
		t.Errorf("String = %q, want %q", got, "repeat")
	}
	if got := WrapMode(9).String(); got != "WrapMode(9)" {
		t.Errorf("String = %q, want %q", got, "WrapMode(9)")
	}
}

// testAtlas is a 2x2 image with a distinct opaque color per texel:
//
//	red    green
//	blue   yellow
func testAtlas() ImageSource {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	img.Set(1, 0, color.NRGBA{G: 255, A: 255})
	img.Set(0, 1, color.NRGBA{B: 255, A: 255})
	img.Set(1, 1, color.NRGBA{R: 255, G: 255, A: 255})
	return ImageSource{Image: img}
}

var (
	atlasRed    = RGBA{R: 1, A: 1}
	atlasGreen  = RGBA{G: 1, A: 1}
	atlasBlue   = RGBA{B: 1, A: 1}
	atlasYellow = RGBA{R: 1, G: 1, A: 1}
)

func TestImageSourceSample(t *testing.T) {
	src := testAtlas()
	tests := []struct {
		name string
		uv   Vec2
		want RGBA
	}{
		{"top-left texel", V2(0.25, 0.25), atlasRed},
		{"top-right texel", V2(0.75, 0.25), atlasGreen},
		{"bottom-left texel", V2(0.25, 0.75), atlasBlue},
		{"bottom-right texel", V2(0.75, 0.75), atlasYellow},
		{"clamped past right", V2(3, 0.25), atlasGreen},
		{"clamped past top", V2(0.25, -2), atlasRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := src.Sample(tt.uv); got != tt.want {
				t.Errorf("Sample(%+v) = %+v, want %+v", tt.uv, got, tt.want)
			}
		})
	}
}

func TestSampleBounded(t *testing.T) {
	src := testAtlas()
	if got := src.Sample(V2(0.25, 0.25)); got != atlasRed {
		t.Fatalf("direct sample = %+v, want red", got)
	}
	if got := SampleBounded(src, V2(0.25, 0.25)); got != atlasRed {
		t.Errorf("inside = %+v, want red", got)
	}
	// Edges are inclusive.
	if got := SampleBounded(src, V2(1, 1)); got != atlasYellow {
		t.Errorf("max corner = %+v, want yellow", got)
	}
	// Outside the unit square the sample is replaced by opaque white.
	if got := SampleBounded(src, V2(1.001, 0.5)); got != White {
		t.Errorf("outside x = %+v, want white", got)
	}
	if got := SampleBounded(src, V2(0.5, -0.1)); got != White {
		t.Errorf("outside y = %+v, want white", got)
	}
}

func TestSampleRect(t *testing.T) {
	src := testAtlas()
	// Sub-rectangle covering the top-right texel.
	texRect := R(0.5, 0, 0.5, 0.5)

	if got := SampleRect(src, V2(0.5, 0.5), texRect); got != atlasGreen {
		t.Errorf("center of sub-rect = %+v, want green", got)
	}
	// Coordinates past the sub-rectangle sample opaque white, not the
	// neighboring atlas entry.
	if got := SampleRect(src, V2(0.5, 1.5), texRect); got != White {
		t.Errorf("below sub-rect = %+v, want white", got)
	}
	if got := SampleRect(src, V2(-0.5, 0.5), texRect); got != White {
		t.Errorf("left of sub-rect = %+v, want white", got)
	}
	// The sub-rectangle edge itself is still inside.
	if got := SampleRect(src, V2(1, 0), texRect); got != atlasGreen {
		t.Errorf("sub-rect corner = %+v, want green", got)
	}
}

func TestSampleWrappedRepeatEqualsFraction(t *testing.T) {
	src := testAtlas()
	texRect := R(0.5, 0, 0.5, 0.5)

	a := SampleWrapped(src, V2(1.3, 0.25), texRect, WrapRepeat, WrapRepeat)
	b := SampleWrapped(src, V2(0.3, 0.25), texRect, WrapRepeat, WrapRepeat)
	if a != b {
		t.Errorf("repeat 1.3 = %+v, fraction 0.3 = %+v, want equal", a, b)
	}
	if a == White {
		t.Error("repeat sample fell outside the sub-rectangle")
	}
}

func TestSampleWrappedClampEqualsEdge(t *testing.T) {
	src := testAtlas()
	a := SampleWrapped(src, V2(-0.5, 0.25), UnitRect, WrapClamp, WrapClamp)
	b := SampleWrapped(src, V2(0, 0.25), UnitRect, WrapClamp, WrapClamp)
	if a != b {
		t.Errorf("clamp -0.5 = %+v, edge 0.0 = %+v, want equal", a, b)
	}
}

func TestSampleWrappedNoneFallsOutside(t *testing.T) {
	src := testAtlas()
	texRect := R(0.5, 0, 0.5, 0.5)
	// Without wrapping, an out-of-range coordinate remaps past the
	// sub-rectangle and hits the white fallback.
	if got := SampleWrapped(src, V2(1.3, 0.25), texRect, WrapNone, WrapNone); got != White {
		t.Errorf("none 1.3 = %+v, want white", got)
	}
	// Per-axis independence: U repeats while V stays out of range.
	if got := SampleWrapped(src, V2(1.3, 1.25), texRect, WrapRepeat, WrapNone); got != White {
		t.Errorf("mixed modes = %+v, want white", got)
	}
	if got := SampleWrapped(src, V2(1.3, 1.25), texRect, WrapRepeat, WrapRepeat); got == White {
		t.Error("both axes wrapped should stay inside the sub-rectangle")
	}
}

func TestSolidSource(t *testing.T) {
	src := SolidSource{Color: atlasBlue}
	if got := src.Sample(V2(100, -100)); got != atlasBlue {
		t.Errorf("Sample = %+v, want blue", got)
	}
}
