// Package humanoid implements an environment in which an 11-segment
// humanoid learns to walk toward a target. Each step maps a bounded
// control vector to joint targets and torque limits, lets a physics
// world integrate, and returns an observation expressed in a frame
// that faces the target.
package humanoid

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/frame"
	"github.com/samuelfneumann/gowalker/goal"
	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/sensor"
	ts "github.com/samuelfneumann/gowalker/timestep"
	"github.com/samuelfneumann/gowalker/utils/floatutils"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
)

var (
	// ErrEpisodeOver is returned when stepping a Humanoid whose episode
	// has ended
	ErrEpisodeOver = errors.New("episode is over, reset the environment")

	// ErrActionLength is returned when a control vector does not have
	// ActionLength values
	ErrActionLength = errors.New("wrong control vector length")
)

// SegmentConfig configures a single segment
type SegmentConfig struct {
	Limits body.JointLimits           `yaml:"limits" json:"limits"`
	Ground sensor.GroundContactConfig `yaml:"ground" json:"ground"`
	Height sensor.HeightCheckConfig   `yaml:"height" json:"height"`

	// Target attaches a target contact sensor when non-nil
	Target *sensor.TargetContactConfig `yaml:"target,omitempty" json:"target,omitempty"`
}

// Config configures a Humanoid
type Config struct {
	Drive              physics.Drive `yaml:"drive" json:"drive"`
	MaxAngularVelocity float64       `yaml:"maxAngularVelocity" json:"maxAngularVelocity"`

	// WalkingSpeed is the speed of the goal velocity, which points
	// along the forward axis of the orientation frame
	WalkingSpeed float64 `yaml:"walkingSpeed" json:"walkingSpeed"`

	Discount float64     `yaml:"discount" json:"discount"`
	Goal     goal.Config `yaml:"goal" json:"goal"`

	// Segments holds per-segment configuration keyed by segment name.
	// Segments which are not present use DefaultSegmentConfig.
	Segments map[string]SegmentConfig `yaml:"segments" json:"segments"`
}

// DefaultSegmentConfig returns the default configuration of segment s.
// Every segment uses its default joint limits. Only the head reacts to
// ground contact, which ends the episode with a penalty.
func DefaultSegmentConfig(s body.Segment) SegmentConfig {
	c := SegmentConfig{Limits: body.DefaultLimits(s)}
	if s == body.Head {
		c.Ground = sensor.GroundContactConfig{
			AgentDoneOnContact: true,
			PenalizeContact:    true,
			ContactPenalty:     -1.0,
		}
	}
	return c
}

// DefaultConfig returns the default configuration of a Humanoid
func DefaultConfig() Config {
	segments := make(map[string]SegmentConfig, body.NumSegments)
	for _, s := range body.Segments() {
		segments[s.String()] = DefaultSegmentConfig(s)
	}

	return Config{
		Drive: physics.Drive{
			PositionSpring: 40000,
			PositionDamper: 5000,
			MaximumForce:   20000,
		},
		MaxAngularVelocity: body.DefaultMaxAngularVelocity,
		WalkingSpeed:       10.0,
		Discount:           0.99,
		Goal: goal.Config{
			RespawnIfFallsOffPlatform: true,
			FallDistance:              goal.DefaultFallDistance,
		},
		Segments: segments,
	}
}

// Segment returns the configuration of segment s
func (c Config) Segment(s body.Segment) SegmentConfig {
	if sc, ok := c.Segments[s.String()]; ok {
		return sc
	}
	return DefaultSegmentConfig(s)
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.Drive.MaximumForce <= 0 {
		return fmt.Errorf("validate: maximum force must be positive "+
			"\n\thave(%v)", c.Drive.MaximumForce)
	}
	if c.Drive.PositionSpring < 0 || c.Drive.PositionDamper < 0 {
		return fmt.Errorf("validate: drive spring and damper must be "+
			"non-negative \n\thave(%v, %v)", c.Drive.PositionSpring,
			c.Drive.PositionDamper)
	}
	if c.MaxAngularVelocity <= 0 {
		return fmt.Errorf("validate: max angular velocity must be positive "+
			"\n\thave(%v)", c.MaxAngularVelocity)
	}
	if c.WalkingSpeed < 0 {
		return fmt.Errorf("validate: walking speed must be non-negative "+
			"\n\thave(%v)", c.WalkingSpeed)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1] "+
			"\n\thave(%v)", c.Discount)
	}
	if err := c.Goal.Validate(); err != nil {
		return fmt.Errorf("validate: goal: %v", err)
	}

	for name, sc := range c.Segments {
		if _, err := body.ParseSegment(name); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		if err := sc.Limits.Validate(); err != nil {
			return fmt.Errorf("validate: segment %v: %v", name, err)
		}
		if err := sc.Height.Validate(); err != nil {
			return fmt.Errorf("validate: segment %v: %v", name, err)
		}
	}
	return nil
}

// Option configures optional behaviour of a Humanoid
type Option func(*Humanoid)

// WithLogger sets the logger of a Humanoid
func WithLogger(logger *zap.Logger) Option {
	return func(h *Humanoid) {
		h.logger = logger
	}
}

// contactEvent is a contact reported by the physics world, held until
// the rewards of the tick are computed
type contactEvent struct {
	segment body.Segment
	kind    physics.ContactKind
	begin   bool
}

// goalRewarder is implemented by tasks that give a reward for reaching
// the target
type goalRewarder interface {
	GoalReward() float64
}

// Humanoid implements an environment.Environment in which a humanoid
// walks toward a target. A Humanoid is not safe for concurrent use.
type Humanoid struct {
	environment.Task

	config     Config
	world      physics.World
	controller *body.Controller
	frame      *frame.Orientation
	goal       *goal.Goal
	logger     *zap.Logger

	obsLen    int
	basePoses [body.NumSegments]physics.Pose

	state    State
	baseline float64

	// Per-tick accumulators
	reward     float64
	endRequest ts.EndType
	contacts   []contactEvent
	atTarget   bool

	currentTimeStep ts.TimeStep
}

// New returns a new Humanoid simulated by world. Every segment is bound
// to the world body of the same name. The first timestep of the first
// episode is returned as well.
func New(world physics.World, task environment.Task, c Config, seed uint64,
	opts ...Option) (*Humanoid, ts.TimeStep, error) {
	if world == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: nil world")
	}
	if task == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: nil task")
	}
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: %v", err)
	}

	h := &Humanoid{
		Task:       task,
		config:     c,
		world:      world,
		controller: body.NewController(c.Drive, c.MaxAngularVelocity),
		frame:      &frame.Orientation{},
		logger:     zap.NewNop(),
		state:      Uninitialized,
		contacts:   make([]contactEvent, 0, body.NumSegments),
	}
	for _, opt := range opts {
		opt(h)
	}

	for _, s := range body.Segments() {
		rb, joint, err := world.Bind(s.String())
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: %w", err)
		}

		sc := c.Segment(s)
		sensors := sensor.Set{
			Ground: sensor.NewGroundContact(sc.Ground),
			Height: sensor.NewHeightCheck(sc.Height),
		}
		if sc.Target != nil {
			sensors.Target = sensor.NewTargetContact(*sc.Target)
		}

		if err := h.controller.SetUp(s, rb, joint, sc.Limits,
			sensors); err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: %w", err)
		}
		h.basePoses[s] = rb.Pose()
	}
	h.obsLen = ObservationLength(h.controller.Len())

	target := world.Target()
	if target == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: world has no " +
			"target")
	}
	g, err := goal.New(target, c.Goal, seed, h.logger)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: %v", err)
	}
	h.goal = g

	world.SetContactListener(h)

	if walk, ok := h.Task.(*Walk); ok {
		walk.register(h)
	}

	h.updateFrame()
	h.baseline = h.distanceToTarget()
	h.state = Ready

	step, err := h.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("newHumanoid: %v", err)
	}
	return h, step, nil
}

// Reset starts a new episode and returns its first timestep. Every
// segment is returned to its starting pose, turned to the heading
// given by the task's Start, with zero velocity.
func (h *Humanoid) Reset() (ts.TimeStep, error) {
	if h.state == Uninitialized {
		return ts.TimeStep{}, fmt.Errorf("reset: humanoid not initialized")
	}

	yaw := 0.0
	if start := h.Start(); start != nil && start.Len() > 0 {
		yaw = start.AtVec(0)
	}
	if err := h.applyStartYaw(yaw); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}
	h.controller.Reset()

	h.reward = 0
	h.endRequest = ts.Unended
	h.contacts = h.contacts[:0]
	h.atTarget = false

	h.updateFrame()
	h.baseline = h.distanceToTarget()

	step := ts.New(ts.First, 0, h.config.Discount, h.observe(), 0)
	h.currentTimeStep = step
	h.state = Running

	return step, nil
}

// applyStartYaw turns the starting pose of every segment about the
// root by angle radians
func (h *Humanoid) applyStartYaw(angle float64) error {
	if !floatutils.IsFinite(angle) {
		return fmt.Errorf("applyStartYaw: non-finite heading %v", angle)
	}

	rotation := spatialutils.Yaw(angle)
	origin := h.basePoses[body.Root].Position
	for _, bp := range h.controller.Parts() {
		pose := h.basePoses[bp.Segment()]
		if angle != 0 {
			offset := rotation.Rotate(r3.Sub(pose.Position, origin))
			pose.Position = r3.Add(origin, offset)
			pose.Rotation = spatialutils.Mul(rotation, pose.Rotation)
		}
		if err := h.controller.SetStartingPose(bp.Segment(), pose); err != nil {
			return fmt.Errorf("applyStartYaw: %v", err)
		}
	}
	return nil
}

// Step takes one environmental step given the control vector action.
// Controls outside [MinAction, MaxAction] are clipped. The returned
// boolean indicates whether the episode ended.
//
// If the reward cannot be computed or the physics world fails, the
// error is returned and the episode must be reset.
func (h *Humanoid) Step(action *mat.VecDense) (ts.TimeStep, bool, error) {
	if h.state == Terminal {
		return h.currentTimeStep, true, fmt.Errorf("step: %w", ErrEpisodeOver)
	}
	if action.Len() != ActionLength {
		return h.currentTimeStep, false, fmt.Errorf("step: %w \n\twant(%v) "+
			"\n\thave(%v)", ErrActionLength, ActionLength, action.Len())
	}

	controls := make([]float64, ActionLength)
	for i := range controls {
		controls[i] = action.AtVec(i)
	}
	for _, i := range floatutils.ClipSlice(controls, MinAction, MaxAction) {
		h.logger.Warn("control out of range, clipping",
			zap.Int("index", i),
			zap.String("control", ControlName(i)),
			zap.Float64("value", action.AtVec(i)),
		)
	}
	actuate(h.controller, controls)

	h.reward = 0
	h.contacts = h.contacts[:0]

	if err := h.world.Step(); err != nil {
		h.state = Terminal
		return h.currentTimeStep, true, fmt.Errorf("step: %v", err)
	}
	h.goal.Update()
	h.updateFrame()

	step := ts.New(ts.Mid, 0, h.config.Discount, nil,
		h.currentTimeStep.Number+1)

	reward, err := h.GetReward(step, mat.NewVecDense(ActionLength, controls))
	if err != nil {
		h.state = Terminal
		h.logger.Error("could not compute reward", zap.Error(err))
		return h.currentTimeStep, true, fmt.Errorf("step: %w", err)
	}
	h.AddReward(reward)

	for _, bp := range h.controller.Parts() {
		if height := bp.Sensors().Height; height != nil {
			height.Update(bp.Body().Pose().Position.Y, h)
		}
	}

	h.processContacts()

	step.Reward = h.reward
	step.Observation = h.observe()

	last := h.End(&step)
	if last {
		h.state = Terminal
		h.logger.Debug("episode ended",
			zap.Stringer("reason", step.EndType()),
			zap.Int("steps", step.Number),
		)
	}
	h.currentTimeStep = step

	return step, last, nil
}

// processContacts forwards the contacts queued during the last physics
// step to the sensors and the goal in the order they were reported. The
// goal reward is applied after every other contact of the tick.
func (h *Humanoid) processContacts() {
	reached := false
	for _, c := range h.contacts {
		sensors := h.controller.Part(c.segment).Sensors()

		switch c.kind {
		case physics.Ground:
			if sensors.Ground == nil {
				continue
			}
			if c.begin {
				sensors.Ground.Begin(h)
			} else {
				sensors.Ground.End()
			}

		case physics.TargetTrigger:
			if sensors.Target != nil {
				if c.begin {
					sensors.Target.Begin(h)
				} else {
					sensors.Target.End()
				}
			}

			if !c.segment.IsRoot() {
				continue
			}
			h.atTarget = c.begin
			if c.begin {
				reached = true
				if h.goal.Touch() {
					h.EndEpisode(ts.Goal)
				}
			}
		}
	}
	h.contacts = h.contacts[:0]

	if reached {
		h.SetReward(h.goalReward())
	}
}

// goalReward returns the reward which overwrites the reward of a tick in
// which the root reaches the target
func (h *Humanoid) goalReward() float64 {
	if gr, ok := h.Task.(goalRewarder); ok {
		return gr.GoalReward()
	}
	return DefaultGoalReward
}

// BeginContact queues the start of a contact reported by the physics
// world
func (h *Humanoid) BeginContact(name string, kind physics.ContactKind) {
	h.queueContact(name, kind, true)
}

// EndContact queues the end of a contact reported by the physics world
func (h *Humanoid) EndContact(name string, kind physics.ContactKind) {
	h.queueContact(name, kind, false)
}

func (h *Humanoid) queueContact(name string, kind physics.ContactKind,
	begin bool) {
	s, err := body.ParseSegment(name)
	if err != nil || h.controller.Part(s) == nil {
		h.logger.Debug("ignoring contact of unknown body",
			zap.String("body", name), zap.Stringer("kind", kind))
		return
	}
	h.contacts = append(h.contacts, contactEvent{s, kind, begin})
}

// SetReward overwrites the reward accumulated in the current tick
func (h *Humanoid) SetReward(r float64) {
	h.reward = r
}

// AddReward adds to the reward accumulated in the current tick
func (h *Humanoid) AddReward(r float64) {
	h.reward += r
}

// EndEpisode requests that the episode end after the current tick. The
// first request of a tick determines the reason.
func (h *Humanoid) EndEpisode(reason ts.EndType) {
	if h.endRequest == ts.Unended {
		h.endRequest = reason
	}
}

func (h *Humanoid) rootPosition() r3.Vec {
	return h.controller.Part(body.Root).Body().Pose().Position
}

func (h *Humanoid) updateFrame() {
	h.frame.Update(h.rootPosition(), h.goal.Position())
}

func (h *Humanoid) distanceToTarget() float64 {
	return r3.Norm(r3.Sub(h.goal.Position(), h.rootPosition()))
}

// CurrentTimeStep returns the last timestep of the environment
func (h *Humanoid) CurrentTimeStep() ts.TimeStep {
	return h.currentTimeStep
}

// State returns the lifecycle state of the current episode
func (h *Humanoid) State() State {
	return h.state
}

// Baseline returns the distance from the root to the target at the
// start of the current episode
func (h *Humanoid) Baseline() float64 {
	return h.baseline
}

// Frame returns the orientation frame of the humanoid
func (h *Humanoid) Frame() *frame.Orientation {
	return h.frame
}

// Controller returns the controller of the humanoid's body parts
func (h *Humanoid) Controller() *body.Controller {
	return h.controller
}

// Goal returns the goal the humanoid walks toward
func (h *Humanoid) Goal() *goal.Goal {
	return h.goal
}

// Dt returns the simulated duration of one step
func (h *Humanoid) Dt() float64 {
	return h.world.Dt()
}

// ObservationSpec returns the observation specification of the
// environment
func (h *Humanoid) ObservationSpec() environment.Spec {
	return environment.NewBoxSpec(h.obsLen, environment.Observation,
		math.Inf(-1.0), math.Inf(1.0))
}

// ActionSpec returns the action specification of the environment
func (h *Humanoid) ActionSpec() environment.Spec {
	return environment.NewBoxSpec(ActionLength, environment.Action,
		MinAction, MaxAction)
}

// DiscountSpec returns the discount specification of the environment
func (h *Humanoid) DiscountSpec() environment.Spec {
	return environment.NewBoxSpec(1, environment.Discount,
		h.config.Discount, h.config.Discount)
}

var (
	_ environment.Environment = (*Humanoid)(nil)
	_ sensor.Agent            = (*Humanoid)(nil)
	_ physics.ContactListener = (*Humanoid)(nil)
)
