package body

import (
	"github.com/samuelfneumann/gowalker/utils/floatutils"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"
)

// TargetRotation maps the control triple (a, b, c), each in [-1, 1], to
// Euler angles within the joint limits. Each control is remapped to
// [0, 1] by (v+1)/2 and linearly interpolated into the range of its
// axis.
//
// The normalized position of each angle within its range is returned
// as well. Since the mapping is a bijection on [-1, 1], the normalized
// position equals (v+1)/2 for non-empty ranges. Empty ranges always
// normalize to 0.
//
// Controls outside [-1, 1] are not clamped.
func TargetRotation(limits JointLimits, a, b, c float64) (euler, normalized r3.Vec) {
	ranges := [3]r1.Interval{limits.XRange(), limits.YRange(), limits.ZRange()}
	controls := [3]float64{a, b, c}

	var angles, positions [3]float64
	for i, rng := range ranges {
		t := (controls[i] + 1.0) * 0.5
		angles[i] = floatutils.Lerp(rng.Min, rng.Max, t)
		positions[i] = floatutils.InverseLerp(rng.Min, rng.Max, angles[i])
	}

	euler = r3.Vec{X: angles[0], Y: angles[1], Z: angles[2]}
	normalized = r3.Vec{X: positions[0], Y: positions[1], Z: positions[2]}
	return euler, normalized
}

// Strength maps the control s in [-1, 1] to a torque limit in
// [0, maxForce]
func Strength(maxForce, s float64) float64 {
	return (s + 1.0) * 0.5 * maxForce
}
