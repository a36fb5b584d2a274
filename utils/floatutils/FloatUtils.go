// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipSlice clips each value in a slice in place and returns the
// indices of the values that were out of bounds. NaN values are
// replaced by the midpoint of [min, max].
func ClipSlice(values []float64, min, max float64) []int {
	var clipped []int
	for i, value := range values {
		if math.IsNaN(value) {
			clipped = append(clipped, i)
			values[i] = (min + max) / 2
			continue
		}
		if value < min || value > max {
			clipped = append(clipped, i)
		}
		values[i] = Clip(value, min, max)
	}
	return clipped
}

// Lerp linearly interpolates between a and b by t. The parameter t is
// not clamped.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InverseLerp returns the t for which Lerp(a, b, t) == value. If a == b
// then InverseLerp returns 0.
func InverseLerp(a, b, value float64) float64 {
	if a == b {
		return 0
	}
	return (value - a) / (b - a)
}

// IsFinite returns whether all values are neither NaN nor ±Inf
func IsFinite(values ...float64) bool {
	for _, value := range values {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return false
		}
	}
	return true
}
