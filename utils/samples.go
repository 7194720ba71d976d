// SPDX-License-Identifier: EPL-2.0

// Package utils holds per-sample conversions shared by the decoders, the
// resampler and the output backend.
package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples at x in [0, 1], where x = 0 yields y1 and x = 1 yields y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// Float32ToInt16 clamps x to [-1, 1] and scales it to signed 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 on both sides keeps the scale symmetric.
	return int16(x * 32767.0)
}

// IntToFloat32 normalizes a signed integer PCM sample of the given bit depth
// into [-1, 1). Unknown depths are treated as 16-bit.
func IntToFloat32(v int, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / 128.0
	case 24:
		return float32(v) / 8388608.0
	case 32:
		return float32(float64(v) / 2147483648.0)
	default:
		return float32(v) / 32768.0
	}
}
