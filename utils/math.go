// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Clamp limits v to [lo, hi]. NaN is mapped to lo.
func Clamp[T float32 | float64](v, lo, hi T) T {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01[T float32 | float64](v T) T {
	return Clamp(v, 0, 1)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// DBToGain converts decibels to a linear gain factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDB converts a linear gain factor to decibels, with silence at -100 dB.
func GainToDB(gain float64) float64 {
	if gain <= 0 {
		return -100
	}
	return math.Max(-100, 20*math.Log10(gain))
}
