package humanoid

import (
	"errors"
	"fmt"
	"math"

	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/timestep"
	"github.com/samuelfneumann/gowalker/utils/floatutils"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNonFiniteReward is returned when a reward term is NaN or ±Inf
var ErrNonFiniteReward = errors.New("non-finite reward")

// DefaultGoalReward is the reward a tick is given when the root reaches
// the target
const DefaultGoalReward = 10.0

// RewardMode selects how the per-tick task reward is computed
type RewardMode string

const (
	// Distance rewards progress toward the target relative to the
	// distance at the start of the episode
	Distance RewardMode = "Distance"

	// VelocityLook rewards matching the goal velocity while looking
	// toward the target
	VelocityLook RewardMode = "VelocityLook"
)

// TaskConfig configures a Walk task
type TaskConfig struct {
	RewardMode RewardMode `yaml:"rewardMode" json:"rewardMode"`

	// GoalReward overwrites the reward of the tick in which the root
	// reaches the target
	GoalReward float64 `yaml:"goalReward" json:"goalReward"`

	// EpisodeCutoff is the maximum number of steps in an episode. Zero
	// means no limit.
	EpisodeCutoff int `yaml:"episodeCutoff" json:"episodeCutoff"`

	// RandomStartYaw turns the whole body to a random heading about the
	// root at the start of each episode
	RandomStartYaw bool `yaml:"randomStartYaw" json:"randomStartYaw"`
}

// Validate returns an error if the configuration is invalid
func (c TaskConfig) Validate() error {
	if c.RewardMode != Distance && c.RewardMode != VelocityLook {
		return fmt.Errorf("validate: unknown reward mode %q", c.RewardMode)
	}
	if c.EpisodeCutoff < 0 {
		return fmt.Errorf("validate: episode cutoff must be non-negative "+
			"\n\thave(%v)", c.EpisodeCutoff)
	}
	return nil
}

// Walk implements the task of walking toward a target. Each tick the
// humanoid is rewarded by the configured RewardMode, and the reward of
// the tick in which the root reaches the target is overwritten with
// GoalReward.
//
// Episodes end when a sensor requests it, when the target is reached
// and does not respawn, or when the episode cutoff is reached.
type Walk struct {
	TaskConfig
	env *Humanoid // Registered Humanoid environment

	// registered denotes whether or not a Humanoid environment has
	// been registered with the task
	registered bool

	stepLimit *environment.StepLimit
	starter   *environment.UniformStarter
}

// NewWalk returns a new Walk task
func NewWalk(c TaskConfig, seed uint64) (*Walk, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newWalk: %v", err)
	}

	yaw := r1.Interval{Min: 0, Max: 0}
	if c.RandomStartYaw {
		yaw.Max = 2 * math.Pi
	}

	return &Walk{
		TaskConfig: c,
		stepLimit:  environment.NewStepLimit(c.EpisodeCutoff),
		starter:    environment.NewUniformStarter([]r1.Interval{yaw}, seed),
	}, nil
}

// register registers the Walk task with a Humanoid environment
func (w *Walk) register(h *Humanoid) {
	w.env = h
	w.registered = true
}

// Start returns the starting heading of the body in radians as a
// single-element vector
func (w *Walk) Start() *mat.VecDense {
	return w.starter.Start()
}

// End checks if a timestep should be the last in the episode and
// adjusts the timestep accordingly. End returns whether the argument
// timestep is the last in the episode.
func (w *Walk) End(t *timestep.TimeStep) bool {
	if !w.registered {
		panic("end: no registered Humanoid environment to end")
	}

	if req := w.env.endRequest; req != timestep.Unended {
		t.StepType = timestep.Last
		t.SetEnd(req)
		return true
	}

	return w.stepLimit.End(t)
}

// AtGoal returns whether the root overlaps the target
func (w *Walk) AtGoal() bool {
	if !w.registered {
		panic("atGoal: no registered Humanoid environment")
	}
	return w.env.atTarget
}

// GetReward returns the task reward of the current tick. The frame of
// the registered environment must be up to date.
func (w *Walk) GetReward(_ timestep.TimeStep, _ *mat.VecDense) (float64, error) {
	if !w.registered {
		panic("getReward: no registered Humanoid environment to get " +
			"reward of")
	}

	switch w.RewardMode {
	case VelocityLook:
		forward := w.env.frame.Forward()
		velGoal := r3.Scale(w.env.config.WalkingSpeed, forward)
		headForward := spatialutils.ForwardOf(
			w.env.controller.Part(body.Head).Body().Pose().Rotation)

		r, err := VelocityLookReward(velGoal, w.env.controller.AverageVelocity(),
			forward, headForward, w.env.config.WalkingSpeed)
		if err != nil {
			return 0, fmt.Errorf("getReward: %w", err)
		}
		return r, nil

	default:
		return Progress(w.env.baseline, w.env.distanceToTarget()), nil
	}
}

// GoalReward returns the reward of the tick in which the root reaches
// the target
func (w *Walk) GoalReward() float64 {
	return w.TaskConfig.GoalReward
}

// RewardSpec returns the reward specification for the environment
func (w *Walk) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	low := mat.NewVecDense(1, []float64{w.Min()})
	high := mat.NewVecDense(1, []float64{w.Max()})

	return environment.NewSpec(shape, environment.Reward, low, high,
		environment.Continuous)
}

// Max returns the maximum possible reward. Sensors can add arbitrary
// rewards, so the reward is unbounded.
func (w *Walk) Max() float64 {
	return math.Inf(1.0)
}

// Min returns the minimum possible reward
func (w *Walk) Min() float64 {
	return math.Inf(-1.0)
}

// Progress returns the progress toward the target relative to the
// baseline distance, clamped to [-1, 1]. It is 0 at the baseline and 1
// at the target. A zero baseline yields 0.
func Progress(baseline, distance float64) float64 {
	if baseline == 0 {
		return 0
	}
	return floatutils.Clip((baseline-distance)/baseline, -1.0, 1.0)
}

// VelocityLookReward returns the product of a velocity matching term
// and a looking term. The velocity term decays from 1 when avgVel
// equals velGoal to 0 when they differ by at least speed. The looking
// term is (forward · headForward + 1) / 2 with the vertical component
// of headForward removed.
func VelocityLookReward(velGoal, avgVel, forward, headForward r3.Vec,
	speed float64) (float64, error) {
	delta := floatutils.Clip(r3.Norm(r3.Sub(avgVel, velGoal)), 0, speed)
	match := math.Pow(1-math.Pow(delta/speed, 2), 2)
	if !floatutils.IsFinite(match) {
		return 0, fmt.Errorf("velocityLookReward: %w in velocity term: "+
			"forward %v, average velocity %v, speed %v", ErrNonFiniteReward,
			forward, avgVel, speed)
	}

	headForward.Y = 0
	look := (r3.Dot(forward, headForward) + 1) * 0.5
	if !floatutils.IsFinite(look) {
		return 0, fmt.Errorf("velocityLookReward: %w in look term: "+
			"forward %v, head forward %v", ErrNonFiniteReward, forward,
			headForward)
	}

	return match * look, nil
}
