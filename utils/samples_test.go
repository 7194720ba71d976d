// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestCubicInterpolate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		y0, y1, y2, y3 float32
		x              float32
		want           float32
	}{
		{"start returns y1", 0, 1, 2, 3, 0, 1},
		{"end returns y2", 0, 1, 2, 3, 1, 2},
		{"midpoint of a line", 0, 1, 2, 3, 0.5, 1.5},
		{"constant", 0.25, 0.25, 0.25, 0.25, 0.7, 0.25},
		{"symmetric peak", 0, 1, 1, 0, 0.5, 1.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CubicInterpolate(tt.y0, tt.y1, tt.y2, tt.y3, tt.x)
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("CubicInterpolate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input float32
		want  int16
	}{
		{0, 0},
		{1, math.MaxInt16},
		{-1, -math.MaxInt16},
		{0.5, 16383},
		{-0.5, -16383},
		{1.5, math.MaxInt16},
		{-7, -math.MaxInt16},
	}

	for _, tt := range tests {
		if got := Float32ToInt16(tt.input); got != tt.want {
			t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestIntToFloat32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v        int
		bitDepth int
		want     float32
	}{
		{16384, 16, 0.5},
		{-32768, 16, -1},
		{4194304, 24, 0.5},
		{-1073741824, 32, -0.5},
		{64, 8, 0.5},
		{16384, 0, 0.5},
	}

	for _, tt := range tests {
		if got := IntToFloat32(tt.v, tt.bitDepth); got != tt.want {
			t.Errorf("IntToFloat32(%d, %d) = %v, want %v", tt.v, tt.bitDepth, got, tt.want)
		}
	}
}

func BenchmarkFloat32ToInt16(b *testing.B) {
	for b.Loop() {
		_ = Float32ToInt16(0.123)
	}
}
