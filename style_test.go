// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package visual

import "testing"

func TestBoxStyleInflation(t *testing.T) {
	var s BoxStyle
	if got := s.BorderInflation(); !close32(got, 1) {
		t.Errorf("zero style BorderInflation = %v, want 1", got)
	}
	if got := s.Inflation(); !close32(got, 1) {
		t.Errorf("zero style Inflation = %v, want 1", got)
	}

	s.BorderThickness = 3
	s.GlowRadius = 5
	if got := s.BorderInflation(); !close32(got, 4) {
		t.Errorf("BorderInflation = %v, want 4", got)
	}
	if got := s.Inflation(); !close32(got, 9) {
		t.Errorf("Inflation = %v, want 9", got)
	}
}

func TestBoxStyleBounds(t *testing.T) {
	rect := R(100, 100, 50, 50)
	s := BoxStyle{BorderThickness: 2, GlowRadius: 4}

	got := s.BoxBounds(rect)
	if want := R(93, 93, 64, 64); !rectClose(got, want) {
		t.Errorf("BoxBounds = %+v, want %+v", got, want)
	}

	s.ShadowOffset = V2(10, 20)
	s.ShadowRadius = 6
	got = s.ShadowBounds(rect)
	// Inflated by thickness+1+shadow = 9, then shifted by the offset.
	if want := R(101, 111, 68, 68); !rectClose(got, want) {
		t.Errorf("ShadowBounds = %+v, want %+v", got, want)
	}
}

func TestSeparateShadowQuad(t *testing.T) {
	rect := R(0, 0, 50, 50)
	tests := []struct {
		name  string
		style BoxStyle
		want  bool
	}{
		{"no shadow", BoxStyle{}, false},
		{"small offset overlaps", BoxStyle{ShadowOffset: V2(5, 5), ShadowRadius: 2}, false},
		{"offset clear of the box", BoxStyle{ShadowOffset: V2(100, 0), ShadowRadius: 2}, true},
		{"large radius rejoins", BoxStyle{ShadowOffset: V2(60, 0), ShadowRadius: 20}, false},
		{"diagonal escape", BoxStyle{ShadowOffset: V2(70, 70), ShadowRadius: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.SeparateShadowQuad(rect); got != tt.want {
				t.Errorf("SeparateShadowQuad = %v, want %v", got, tt.want)
			}
		})
	}
}
