// Package frame implements the orientation frame that humanoid
// observations and rewards are expressed in. The frame sits at the
// body's reference point and faces the target horizontally, so that
// anything expressed in it does not depend on the world heading.
package frame

import (
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"gonum.org/v1/gonum/spatial/r3"
)

// Orientation is a yaw-only coordinate frame. The zero value is the
// world frame.
type Orientation struct {
	position r3.Vec
	rotation r3.Rotation
}

// New returns an Orientation frame facing from reference toward target
func New(reference, target r3.Vec) *Orientation {
	o := &Orientation{}
	o.Update(reference, target)
	return o
}

// Update moves the frame to reference and turns its forward axis
// toward the horizontal projection of target - reference. If the
// target is directly above or below the reference, the frame faces
// the world forward axis.
func (o *Orientation) Update(reference, target r3.Vec) {
	o.position = reference
	o.rotation = spatialutils.LookRotation(r3.Sub(target, reference))
}

// Position returns the origin of the frame
func (o *Orientation) Position() r3.Vec {
	return o.position
}

// Rotation returns the rotation of the frame relative to the world
func (o *Orientation) Rotation() r3.Rotation {
	if o.rotation == (r3.Rotation{}) {
		return spatialutils.Identity
	}
	return o.rotation
}

// Forward returns the forward axis of the frame in world space. Its
// vertical component is always zero.
func (o *Orientation) Forward() r3.Vec {
	forward := o.Rotation().Rotate(spatialutils.Forward)
	forward.Y = 0
	return forward
}

// InverseTransformDirection expresses the world-space direction v in
// the frame
func (o *Orientation) InverseTransformDirection(v r3.Vec) r3.Vec {
	return spatialutils.Inverse(o.Rotation()).Rotate(v)
}

// InverseTransformPoint expresses the world-space point p in the frame
func (o *Orientation) InverseTransformPoint(p r3.Vec) r3.Vec {
	return o.InverseTransformDirection(r3.Sub(p, o.position))
}
