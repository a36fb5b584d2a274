package body

import (
	"errors"
	"fmt"

	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/sensor"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultMaxAngularVelocity is the angular velocity limit applied to
// every registered rigid body
const DefaultMaxAngularVelocity = 75.0

var (
	ErrInvalidSegment   = errors.New("invalid segment")
	ErrDuplicateSegment = errors.New("segment already registered")
	ErrMissingBody      = errors.New("missing rigid body")
	ErrMissingJoint     = errors.New("missing joint")
)

// Controller registers and actuates the body parts of a humanoid.
//
// Body parts are stored densely in registration order, which fixes the
// layout of observations. A separate index maps each segment to its
// position in that order.
type Controller struct {
	drive              physics.Drive
	maxAngularVelocity float64

	parts []*BodyPart
	index [NumSegments]int
}

// NewController returns a new Controller whose joints use the given
// drive settings. The drive's MaximumForce is the largest torque limit
// any joint may be given.
func NewController(drive physics.Drive, maxAngularVelocity float64) *Controller {
	c := &Controller{
		drive:              drive,
		maxAngularVelocity: maxAngularVelocity,
		parts:              make([]*BodyPart, 0, NumSegments),
	}
	for i := range c.index {
		c.index[i] = -1
	}
	return c
}

// SetUp registers a segment with its rigid body and joint. The segment's
// current pose is captured as its starting pose. Ground contact and
// height check sensors are attached with default settings if absent,
// and the joint (if any) is given the controller's drive.
//
// Every segment other than the root must have a joint.
func (c *Controller) SetUp(s Segment, rb physics.RigidBody, joint physics.Joint,
	limits JointLimits, sensors sensor.Set) error {
	if !s.Valid() {
		return fmt.Errorf("setUp: %w %v", ErrInvalidSegment, s)
	}
	if c.index[s] >= 0 {
		return fmt.Errorf("setUp: %w: %v", ErrDuplicateSegment, s)
	}
	if rb == nil {
		return fmt.Errorf("setUp: %w for segment %v", ErrMissingBody, s)
	}
	if joint == nil && !s.IsRoot() {
		return fmt.Errorf("setUp: %w for segment %v", ErrMissingJoint, s)
	}
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("setUp: segment %v: %w", s, err)
	}

	rb.SetMaxAngularVelocity(c.maxAngularVelocity)

	if sensors.Ground == nil {
		sensors.Ground = sensor.NewGroundContact(sensor.GroundContactConfig{})
	}
	if sensors.Height == nil {
		sensors.Height = sensor.NewHeightCheck(sensor.HeightCheckConfig{})
	}

	bp := &BodyPart{
		segment:      s,
		body:         rb,
		joint:        joint,
		limits:       limits,
		sensors:      sensors,
		startingPose: rb.Pose(),
		controller:   c,
	}
	bp.resetDrive()

	c.index[s] = len(c.parts)
	c.parts = append(c.parts, bp)
	return nil
}

// Part returns the body part of segment s, or nil if s is not registered
func (c *Controller) Part(s Segment) *BodyPart {
	if !s.Valid() || c.index[s] < 0 {
		return nil
	}
	return c.parts[c.index[s]]
}

// Index returns the registration index of segment s, or -1 if s is not
// registered
func (c *Controller) Index(s Segment) int {
	if !s.Valid() {
		return -1
	}
	return c.index[s]
}

// Parts returns the registered body parts in registration order
func (c *Controller) Parts() []*BodyPart {
	return c.parts
}

// Len returns the number of registered body parts
func (c *Controller) Len() int {
	return len(c.parts)
}

// Drive returns the drive settings of the controller
func (c *Controller) Drive() physics.Drive {
	return c.drive
}

// MaxForce returns the largest torque limit of any joint
func (c *Controller) MaxForce() float64 {
	return c.drive.MaximumForce
}

// SetStartingPose replaces the pose that segment s is reset to
func (c *Controller) SetStartingPose(s Segment, pose physics.Pose) error {
	bp := c.Part(s)
	if bp == nil {
		return fmt.Errorf("setStartingPose: segment %v not registered", s)
	}
	bp.startingPose = pose
	return nil
}

// Reset resets every body part in registration order
func (c *Controller) Reset() {
	for _, bp := range c.parts {
		bp.Reset()
	}
}

// AverageVelocity returns the mean linear velocity of all registered
// body parts, not only the root. With no registered parts the zero
// vector is returned.
func (c *Controller) AverageVelocity() r3.Vec {
	if len(c.parts) == 0 {
		return r3.Vec{}
	}

	var sum r3.Vec
	for _, bp := range c.parts {
		sum = r3.Add(sum, bp.body.Velocity())
	}
	return r3.Scale(1/float64(len(c.parts)), sum)
}
