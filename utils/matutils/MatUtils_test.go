package matutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestVecClipBounds(t *testing.T) {
	a := mat.NewVecDense(3, []float64{-2, 0.5, 4})
	low := mat.NewVecDense(3, []float64{-1, -1, -1})
	high := mat.NewVecDense(3, []float64{1, 1, 2})

	VecClipBounds(a, low, high)
	assert.Equal(t, []float64{-1, 0.5, 2}, a.RawVector().Data)

	assert.Panics(t, func() {
		VecClipBounds(a, mat.NewVecDense(1, nil), high)
	})
}

func TestBounds(t *testing.T) {
	low := mat.NewVecDense(2, []float64{-1, 0})
	high := mat.NewVecDense(2, []float64{1, 3})

	want := []r1.Interval{{Min: -1, Max: 1}, {Min: 0, Max: 3}}
	assert.Equal(t, want, Bounds(low, high))
}
