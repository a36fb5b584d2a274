package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples starting state vectors uniformly from a box
// described by one interval per feature. Degenerate intervals
// (Min == Max) always produce Min.
type UniformStarter struct {
	bounds []r1.Interval
	seed   uint64
	rand   *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter
func NewUniformStarter(bounds []r1.Interval, seed uint64) *UniformStarter {
	source := rand.NewSource(seed)
	rand := distmv.NewUniform(bounds, source)

	return &UniformStarter{bounds, seed, rand}
}

// Start returns a starting state vector
func (u *UniformStarter) Start() *mat.VecDense {
	sample := u.rand.Rand(nil)
	for i, b := range u.bounds {
		if b.Min == b.Max {
			sample[i] = b.Min
		}
	}
	return mat.NewVecDense(len(u.bounds), sample)
}
