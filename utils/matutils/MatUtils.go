// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// VecClipBounds performs an element-wise clipping of a vector's values
// such that each value a[i] is at least low[i] and at most high[i].
// VecClipBounds panics if the vectors have different lengths.
func VecClipBounds(a *mat.VecDense, low, high mat.Vector) {
	if a.Len() != low.Len() || a.Len() != high.Len() {
		panic(fmt.Sprintf("vecClipBounds: length mismatch \n\thave(%v, %v, %v)",
			a.Len(), low.Len(), high.Len()))
	}

	for i := 0; i < a.Len(); i++ {
		value := a.AtVec(i)

		if value < low.AtVec(i) {
			a.SetVec(i, low.AtVec(i))
		} else if value > high.AtVec(i) {
			a.SetVec(i, high.AtVec(i))
		}
	}
}

// Bounds returns the per-dimension bounds of a box given its lower and
// upper corners
func Bounds(low, high mat.Vector) []r1.Interval {
	bounds := make([]r1.Interval, low.Len())
	for i := range bounds {
		bounds[i] = r1.Interval{Min: low.AtVec(i), Max: high.AtVec(i)}
	}
	return bounds
}
