// Package physics describes the physics world that a humanoid
// environment drives. The world owns position, velocity and orientation
// of every rigid body during integration; callers own joint targets and
// drive settings between integrations.
//
// Concrete worlds live in sub-packages, e.g. physics/planar.
package physics

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoSuchBody is returned when a world has no body with a given name
var ErrNoSuchBody = errors.New("no such body")

// Pose is a position and rotation in world space
type Pose struct {
	Position r3.Vec
	Rotation r3.Rotation
}

// Drive holds the spring-damper settings of a joint drive. The joint
// drives its body toward the target rotation with a torque no larger
// than MaximumForce.
type Drive struct {
	PositionSpring float64 `yaml:"positionSpring" json:"positionSpring"`
	PositionDamper float64 `yaml:"positionDamper" json:"positionDamper"`
	MaximumForce   float64 `yaml:"maximumForce" json:"maximumForce"`
}

// RigidBody is a simulated body segment
type RigidBody interface {
	Pose() Pose

	// LocalRotation returns the rotation relative to the parent body
	LocalRotation() r3.Rotation

	Velocity() r3.Vec
	AngularVelocity() r3.Vec

	SetPose(Pose)
	SetVelocity(r3.Vec)
	SetAngularVelocity(r3.Vec)
	SetMaxAngularVelocity(float64)
}

// JointTarget is the target of a joint drive. Euler holds the target in
// degrees about X, Y and Z, and Rotation the rotation it describes.
type JointTarget struct {
	Euler    r3.Vec
	Rotation r3.Rotation
}

// Joint connects a body to its parent and drives it toward a target
// rotation
type Joint interface {
	SetTarget(JointTarget)
	SetDrive(Drive)
}

// Target is the object the humanoid walks toward
type Target interface {
	Position() r3.Vec
	SetPosition(r3.Vec)
}

// ContactKind describes what a body came into contact with
type ContactKind int

const (
	// Ground contact with the floor
	Ground ContactKind = iota

	// TargetTrigger overlap with the target's trigger volume
	TargetTrigger
)

func (c ContactKind) String() string {
	if c == Ground {
		return "Ground"
	}
	return "TargetTrigger"
}

// ContactListener receives contact events for named bodies. Events are
// delivered from within World.Step.
type ContactListener interface {
	BeginContact(body string, kind ContactKind)
	EndContact(body string, kind ContactKind)
}

// World is a physics simulation containing named bodies and a target
type World interface {
	// Bind returns the rigid body and joint with the given name. The
	// joint is nil for bodies without a parent.
	Bind(name string) (RigidBody, Joint, error)

	Target() Target
	SetContactListener(ContactListener)

	// Step integrates the world over one control tick
	Step() error

	// Dt returns the simulated duration of one Step
	Dt() float64
}
