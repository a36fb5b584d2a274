// Package planar implements a physics.World which simulates a humanoid
// in its sagittal plane with Box2D. Every segment is a box hinged to
// its parent by a motorized revolute joint. Only the X axis of a joint
// target can be realized in the plane; the Y and Z axes are ignored.
package planar

import (
	"errors"
	"fmt"
	"math"

	"github.com/ByteArena/box2d"
	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/utils/floatutils"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	staticBody  = 0
	dynamicBody = 2

	// All skeleton fixtures share a negative group so that the
	// segments never collide with each other
	skeletonGroup = -1
)

// ErrUnstable is returned when the simulation produces a non-finite
// body state
var ErrUnstable = errors.New("simulation became unstable")

// Config holds the physical constants of a World
type Config struct {
	Gravity float64 `yaml:"gravity" json:"gravity"`

	// TimeStep is the duration of a single box2d step. FrameSkip box2d
	// steps make up one control tick.
	TimeStep  float64 `yaml:"timeStep" json:"timeStep"`
	FrameSkip int     `yaml:"frameSkip" json:"frameSkip"`

	VelocityIterations int `yaml:"velocityIterations" json:"velocityIterations"`
	PositionIterations int `yaml:"positionIterations" json:"positionIterations"`

	// MotorGain converts the angle error of a joint into a motor speed,
	// which is clipped to MaxMotorSpeed
	MotorGain     float64 `yaml:"motorGain" json:"motorGain"`
	MaxMotorSpeed float64 `yaml:"maxMotorSpeed" json:"maxMotorSpeed"`

	// TorqueScale converts a drive's MaximumForce into a box2d motor
	// torque
	TorqueScale float64 `yaml:"torqueScale" json:"torqueScale"`

	Friction     float64 `yaml:"friction" json:"friction"`
	GroundLength float64 `yaml:"groundLength" json:"groundLength"`

	// TargetPosition is the starting (forward, up) position of the
	// target and TargetSize the half width of its trigger box
	TargetPosition [2]float64 `yaml:"targetPosition" json:"targetPosition"`
	TargetSize     float64    `yaml:"targetSize" json:"targetSize"`
}

// DefaultConfig returns the default configuration of a World
func DefaultConfig() Config {
	return Config{
		Gravity:            -9.81,
		TimeStep:           1.0 / 60.0,
		FrameSkip:          1,
		VelocityIterations: 6,
		PositionIterations: 2,
		MotorGain:          10.0,
		MaxMotorSpeed:      10.0,
		TorqueScale:        0.01,
		Friction:           0.9,
		GroundLength:       200.0,
		TargetPosition:     [2]float64{10.0, 1.0},
		TargetSize:         0.5,
	}
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.TimeStep <= 0 {
		return fmt.Errorf("validate: time step must be positive \n\thave(%v)",
			c.TimeStep)
	}
	if c.FrameSkip < 1 {
		return fmt.Errorf("validate: frame skip must be at least 1 "+
			"\n\thave(%v)", c.FrameSkip)
	}
	if c.VelocityIterations < 1 || c.PositionIterations < 1 {
		return fmt.Errorf("validate: solver iterations must be at least 1 "+
			"\n\thave(%v, %v)", c.VelocityIterations, c.PositionIterations)
	}
	if c.TorqueScale <= 0 || c.MaxMotorSpeed <= 0 || c.MotorGain <= 0 {
		return fmt.Errorf("validate: motor constants must be positive")
	}
	if c.GroundLength <= 0 || c.TargetSize <= 0 {
		return fmt.Errorf("validate: ground length and target size must " +
			"be positive")
	}
	return nil
}

// World is a planar Box2D simulation of a humanoid, a flat ground and
// a target trigger
type World struct {
	config Config
	world  box2d.B2World

	ground *box2d.B2Body
	target *target
	bodies map[string]*rigidBody
	joints map[string]*joint
	order  []string

	listener physics.ContactListener
}

// New returns a new World with the given skeleton
func New(config Config, skeleton []SegmentSpec) (*World, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	w := &World{
		config: config,
		world:  box2d.MakeB2World(box2d.B2Vec2{X: 0, Y: config.Gravity}),
		bodies: make(map[string]*rigidBody, len(skeleton)),
		joints: make(map[string]*joint, len(skeleton)),
		order:  make([]string, 0, len(skeleton)),
	}

	w.createGround()
	w.createTarget()

	for _, spec := range skeleton {
		if err := w.createSegment(spec); err != nil {
			return nil, fmt.Errorf("new: %v", err)
		}
	}

	w.world.SetContactListener(newContactDetector(w))
	return w, nil
}

func (w *World) createGround() {
	groundDef := box2d.NewB2BodyDef()
	groundDef.Type = staticBody
	w.ground = w.world.CreateBody(groundDef)
	w.ground.SetUserData(groundTag)

	half := w.config.GroundLength / 2
	groundShape := box2d.NewB2EdgeShape()
	groundShape.Set(box2d.MakeB2Vec2(-half, 0.0), box2d.MakeB2Vec2(half, 0.0))

	groundFix := box2d.MakeB2FixtureDef()
	groundFix.Shape = groundShape
	groundFix.Friction = w.config.Friction
	w.ground.CreateFixtureFromDef(&groundFix)
}

func (w *World) createTarget() {
	targetDef := box2d.NewB2BodyDef()
	targetDef.Type = staticBody
	targetDef.Position = box2d.MakeB2Vec2(w.config.TargetPosition[0],
		w.config.TargetPosition[1])
	b := w.world.CreateBody(targetDef)
	b.SetUserData(targetTag)

	targetShape := box2d.NewB2PolygonShape()
	targetShape.SetAsBox(w.config.TargetSize, w.config.TargetSize)

	targetFix := box2d.MakeB2FixtureDef()
	targetFix.Shape = targetShape
	targetFix.IsSensor = true
	b.CreateFixtureFromDef(&targetFix)

	w.target = &target{b}
}

func (w *World) createSegment(spec SegmentSpec) error {
	name := spec.Segment.String()
	if !spec.Segment.Valid() {
		return fmt.Errorf("createSegment: invalid segment %v", spec.Segment)
	}
	if _, ok := w.bodies[name]; ok {
		return fmt.Errorf("createSegment: duplicate segment %v", name)
	}

	var parent *rigidBody
	if !spec.Segment.IsRoot() {
		var ok bool
		parent, ok = w.bodies[spec.Parent.String()]
		if !ok {
			return fmt.Errorf("createSegment: parent %v of %v must be "+
				"created first", spec.Parent, name)
		}
	}

	bodyDef := box2d.MakeB2BodyDef()
	bodyDef.Type = dynamicBody
	bodyDef.Position = box2d.MakeB2Vec2(spec.Center[0], spec.Center[1])
	bodyDef.Angle = 0.0
	b := w.world.CreateBody(&bodyDef)
	b.SetUserData(name)

	shape := box2d.NewB2PolygonShape()
	shape.SetAsBox(spec.HalfExtents[0], spec.HalfExtents[1])

	fix := box2d.MakeB2FixtureDef()
	fix.Shape = shape
	fix.Density = spec.Density
	fix.Friction = w.config.Friction
	fix.Restitution = 0.0
	filter := box2d.MakeB2Filter()
	filter.GroupIndex = skeletonGroup
	fix.Filter = filter
	b.CreateFixtureFromDef(&fix)

	rb := &rigidBody{
		body:          b,
		parent:        parent,
		halfExtents:   spec.HalfExtents,
		maxAngularVel: math.Inf(1),
	}
	w.bodies[name] = rb
	w.order = append(w.order, name)

	if parent == nil {
		return nil
	}

	rjd := box2d.MakeB2RevoluteJointDef()
	rjd.BodyA = parent.body
	rjd.BodyB = b
	rjd.LocalAnchorA = box2d.MakeB2Vec2(
		spec.Anchor[0]-parent.body.GetPosition().X,
		spec.Anchor[1]-parent.body.GetPosition().Y,
	)
	rjd.LocalAnchorB = box2d.MakeB2Vec2(
		spec.Anchor[0]-spec.Center[0],
		spec.Anchor[1]-spec.Center[1],
	)
	rjd.EnableMotor = true
	rjd.MaxMotorTorque = 0.0
	rjd.MotorSpeed = 0.0

	revolute, ok := w.world.CreateJoint(&rjd).(*box2d.B2RevoluteJoint)
	if !ok {
		return fmt.Errorf("createSegment: could not create hinge for %v",
			name)
	}
	w.joints[name] = &joint{joint: revolute, config: &w.config}

	return nil
}

// Bind returns the rigid body and joint of the segment with the given
// name. The root has no joint.
func (w *World) Bind(name string) (physics.RigidBody, physics.Joint, error) {
	rb, ok := w.bodies[name]
	if !ok {
		return nil, nil, fmt.Errorf("bind: %w: %v", physics.ErrNoSuchBody,
			name)
	}

	j, ok := w.joints[name]
	if !ok {
		return rb, nil, nil
	}
	return rb, j, nil
}

// Target returns the target trigger
func (w *World) Target() physics.Target {
	return w.target
}

// SetContactListener sets the listener that contact events are sent to
func (w *World) SetContactListener(l physics.ContactListener) {
	w.listener = l
}

// Dt returns the simulated duration of one Step
func (w *World) Dt() float64 {
	return w.config.TimeStep * float64(w.config.FrameSkip)
}

// Step advances the world by FrameSkip box2d steps. Joint motors are
// updated before every box2d step.
func (w *World) Step() error {
	for i := 0; i < w.config.FrameSkip; i++ {
		for _, name := range w.order {
			if j, ok := w.joints[name]; ok {
				j.update()
			}
		}

		w.world.Step(w.config.TimeStep, w.config.VelocityIterations,
			w.config.PositionIterations)

		for _, name := range w.order {
			rb := w.bodies[name]
			rb.limitAngularVelocity()

			pos := rb.body.GetPosition()
			if !floatutils.IsFinite(pos.X, pos.Y, rb.body.GetAngle()) {
				return fmt.Errorf("step: %w: body %v", ErrUnstable, name)
			}
		}
	}
	return nil
}

// rigidBody implements physics.RigidBody for a box2d body
type rigidBody struct {
	body          *box2d.B2Body
	parent        *rigidBody
	halfExtents   [2]float64
	maxAngularVel float64
}

func (r *rigidBody) Pose() physics.Pose {
	return physics.Pose{
		Position: toVec(r.body.GetPosition()),
		Rotation: toRotation(r.body.GetAngle()),
	}
}

func (r *rigidBody) LocalRotation() r3.Rotation {
	if r.parent == nil {
		return toRotation(r.body.GetAngle())
	}
	return toRotation(r.body.GetAngle() - r.parent.body.GetAngle())
}

func (r *rigidBody) Velocity() r3.Vec {
	return toVec(r.body.GetLinearVelocity())
}

func (r *rigidBody) AngularVelocity() r3.Vec {
	return toAngularVelocity(r.body.GetAngularVelocity())
}

func (r *rigidBody) SetPose(p physics.Pose) {
	r.body.SetTransform(fromVec(p.Position), fromRotation(p.Rotation))
}

func (r *rigidBody) SetVelocity(v r3.Vec) {
	r.body.SetLinearVelocity(fromVec(v))
}

func (r *rigidBody) SetAngularVelocity(w r3.Vec) {
	r.body.SetAngularVelocity(fromAngularVelocity(w))
}

func (r *rigidBody) SetMaxAngularVelocity(max float64) {
	r.maxAngularVel = max
}

func (r *rigidBody) limitAngularVelocity() {
	omega := r.body.GetAngularVelocity()
	if math.Abs(omega) > r.maxAngularVel {
		r.body.SetAngularVelocity(math.Copysign(r.maxAngularVel, omega))
	}
}

// joint implements physics.Joint with a motorized revolute joint. The
// motor turns the joint toward the target angle at a speed proportional
// to the angle error, with a torque no larger than the drive allows.
type joint struct {
	joint  *box2d.B2RevoluteJoint
	config *Config

	targetAngle float64
	drive       physics.Drive
}

// SetTarget turns the hinge toward the X angle of t. A rotation of x
// about +X is a planar angle of -x.
func (j *joint) SetTarget(t physics.JointTarget) {
	j.targetAngle = spatialutils.Deg2Rad(-t.Euler.X)
}

func (j *joint) SetDrive(d physics.Drive) {
	j.drive = d
	j.joint.SetMaxMotorTorque(d.MaximumForce * j.config.TorqueScale)
}

func (j *joint) update() {
	err := j.targetAngle - j.joint.GetJointAngle()
	speed := floatutils.Clip(j.config.MotorGain*err, -j.config.MaxMotorSpeed,
		j.config.MaxMotorSpeed)
	j.joint.SetMotorSpeed(speed)
}

// target implements physics.Target with a static sensor body
type target struct {
	body *box2d.B2Body
}

func (t *target) Position() r3.Vec {
	return toVec(t.body.GetPosition())
}

// SetPosition moves the target to the projection of p onto the plane
func (t *target) SetPosition(p r3.Vec) {
	t.body.SetTransform(fromVec(p), 0.0)
}

var _ physics.World = (*World)(nil)

// Segments returns the names of the simulated segments in creation order
func (w *World) Segments() []string {
	return append([]string(nil), w.order...)
}

// Has returns whether the world simulates segment s
func (w *World) Has(s body.Segment) bool {
	_, ok := w.bodies[s.String()]
	return ok
}
