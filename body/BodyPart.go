// Package body implements the actuated segments of a humanoid: their
// joint limits, drive state, and the controller that registers,
// resets and actuates them.
package body

import (
	"fmt"

	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/sensor"
	"github.com/samuelfneumann/gowalker/utils/floatutils"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"gonum.org/v1/gonum/spatial/r3"
)

// DriveState is the actuation state of a joint after the most recent
// actuation call
type DriveState struct {
	// TargetEuler holds the target X, Y and Z angles in degrees
	TargetEuler r3.Vec

	// TargetRotation is TargetEuler as a rotation
	TargetRotation r3.Rotation

	// Strength is the current torque limit of the joint drive
	Strength float64

	// Normalized holds the position of each target angle within its
	// joint range, each in [0, 1]
	Normalized r3.Vec
}

// BodyPart stores the information needed for acting and observing for
// a single segment
type BodyPart struct {
	segment Segment
	body    physics.RigidBody
	joint   physics.Joint
	limits  JointLimits
	sensors sensor.Set

	startingPose physics.Pose
	drive        DriveState

	controller *Controller
}

// Segment returns the segment the BodyPart actuates
func (b *BodyPart) Segment() Segment {
	return b.segment
}

// Body returns the rigid body of the segment
func (b *BodyPart) Body() physics.RigidBody {
	return b.body
}

// HasJoint returns whether the segment is connected to a parent by a
// joint
func (b *BodyPart) HasJoint() bool {
	return b.joint != nil
}

// Limits returns the joint limits of the segment
func (b *BodyPart) Limits() JointLimits {
	return b.limits
}

// Sensors returns the sensors attached to the segment
func (b *BodyPart) Sensors() sensor.Set {
	return b.sensors
}

// StartingPose returns the pose the segment is reset to
func (b *BodyPart) StartingPose() physics.Pose {
	return b.startingPose
}

// DriveState returns the current actuation state of the joint
func (b *BodyPart) DriveState() DriveState {
	return b.drive
}

// Reset resets the body part to its starting pose with zero velocity,
// clears its contact flags, marks its height as in range and restores
// the drive of its joint.
func (b *BodyPart) Reset() {
	b.body.SetPose(b.startingPose)
	b.body.SetVelocity(r3.Vec{})
	b.body.SetAngularVelocity(r3.Vec{})

	b.sensors.Reset()
	b.resetDrive()
}

// resetDrive targets the zero angle of every axis at the full strength
// of the controller's drive
func (b *BodyPart) resetDrive() {
	drive := b.controller.Drive()
	b.drive = DriveState{
		TargetRotation: spatialutils.Identity,
		Strength:       drive.MaximumForce,
		Normalized: r3.Vec{
			X: floatutils.InverseLerp(b.limits.LowX, b.limits.HighX, 0),
			Y: floatutils.InverseLerp(-b.limits.Y, b.limits.Y, 0),
			Z: floatutils.InverseLerp(-b.limits.Z, b.limits.Z, 0),
		},
	}

	if b.joint == nil {
		return
	}
	b.joint.SetTarget(physics.JointTarget{Rotation: spatialutils.Identity})
	b.joint.SetDrive(drive)
}

// SetJointTargetRotation sets the target rotation of the joint from the
// control triple (x, y, z), each in [-1, 1]. Axes that the joint does
// not actuate should be given 0.
//
// SetJointTargetRotation panics if the segment has no joint.
func (b *BodyPart) SetJointTargetRotation(x, y, z float64) {
	if b.joint == nil {
		panic(fmt.Sprintf("setJointTargetRotation: segment %v has no joint",
			b.segment))
	}

	euler, normalized := TargetRotation(b.limits, x, y, z)
	rotation := spatialutils.Euler(euler.X, euler.Y, euler.Z)

	b.joint.SetTarget(physics.JointTarget{Euler: euler, Rotation: rotation})
	b.drive.TargetEuler = euler
	b.drive.TargetRotation = rotation
	b.drive.Normalized = normalized
}

// SetJointStrength sets the torque limit of the joint from the control
// s in [-1, 1]. The spring and damper of the drive stay at the
// controller's settings.
//
// SetJointStrength panics if the segment has no joint.
func (b *BodyPart) SetJointStrength(s float64) {
	if b.joint == nil {
		panic(fmt.Sprintf("setJointStrength: segment %v has no joint",
			b.segment))
	}

	drive := b.controller.Drive()
	drive.MaximumForce = Strength(drive.MaximumForce, s)

	b.joint.SetDrive(drive)
	b.drive.Strength = drive.MaximumForce
}
