// Package spatialutils provides the rotation helpers used to express
// body state in a frame. Rotations are unit quaternions stored as
// r3.Rotation. +Y is up and +Z is forward.
package spatialutils

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// parallelTolerance decides when two unit vectors are treated as
// parallel or anti-parallel by FromTo
const parallelTolerance = 1e-12

var (
	// Up is the world up axis
	Up = r3.Vec{Y: 1}

	// Forward is the local forward axis of every rotation
	Forward = r3.Vec{Z: 1}

	// Identity is the rotation which leaves vectors unchanged
	Identity = r3.Rotation{Real: 1}
)

// Deg2Rad converts degrees to radians
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Euler returns the rotation for the Euler angles x, y and z given in
// degrees. The rotation applies z first, then x, then y, each about
// the world axes.
func Euler(x, y, z float64) r3.Rotation {
	var rx, ry, rz quat.Number
	rx.Imag, rx.Real = math.Sincos(Deg2Rad(x) / 2)
	ry.Jmag, ry.Real = math.Sincos(Deg2Rad(y) / 2)
	rz.Kmag, rz.Real = math.Sincos(Deg2Rad(z) / 2)

	return r3.Rotation(quat.Mul(ry, quat.Mul(rx, rz)))
}

// Mul returns the rotation which applies b and then a
func Mul(a, b r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Mul(quat.Number(a), quat.Number(b)))
}

// Inverse returns the inverse of the unit rotation r
func Inverse(r r3.Rotation) r3.Rotation {
	return r3.Rotation(quat.Conj(quat.Number(r)))
}

// Normalize scales r to unit length. The zero quaternion normalizes to
// Identity.
func Normalize(r r3.Rotation) r3.Rotation {
	l := quat.Abs(quat.Number(r))
	if l == 0 {
		return Identity
	}
	return r3.Rotation(quat.Scale(1/l, quat.Number(r)))
}

// ForwardOf returns the forward axis of a body with rotation r
func ForwardOf(r r3.Rotation) r3.Vec {
	return r.Rotate(Forward)
}

// Yaw returns the rotation of angle radians about the up axis
func Yaw(angle float64) r3.Rotation {
	return r3.NewRotation(angle, Up)
}

// LookRotation returns the rotation whose forward axis points along
// the horizontal projection of direction. A direction without a
// horizontal component yields Identity.
func LookRotation(direction r3.Vec) r3.Rotation {
	direction.Y = 0
	if direction.X == 0 && direction.Z == 0 {
		return Identity
	}
	return Yaw(math.Atan2(direction.X, direction.Z))
}

// FromTo returns the shortest rotation that takes the direction from
// onto the direction to. Zero vectors yield Identity.
func FromTo(from, to r3.Vec) r3.Rotation {
	fromNorm, toNorm := r3.Norm(from), r3.Norm(to)
	if fromNorm == 0 || toNorm == 0 {
		return Identity
	}
	from = r3.Scale(1/fromNorm, from)
	to = r3.Scale(1/toNorm, to)

	d := r3.Dot(from, to)
	switch {
	case d >= 1-parallelTolerance:
		return Identity

	case d <= -1+parallelTolerance:
		// Half turn about any axis orthogonal to from
		axis := r3.Cross(from, r3.Vec{X: 1})
		if r3.Norm2(axis) < parallelTolerance {
			axis = r3.Cross(from, r3.Vec{Y: 1})
		}
		axis = r3.Unit(axis)
		return r3.Rotation{Imag: axis.X, Jmag: axis.Y, Kmag: axis.Z}
	}

	c := r3.Cross(from, to)
	return Normalize(r3.Rotation{Real: 1 + d, Imag: c.X, Jmag: c.Y, Kmag: c.Z})
}

// Components returns the (x, y, z, w) components of r
func Components(r r3.Rotation) [4]float64 {
	return [4]float64{r.Imag, r.Jmag, r.Kmag, r.Real}
}

// IsFinite returns whether every component of v is finite
func IsFinite(v r3.Vec) bool {
	for _, f := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
