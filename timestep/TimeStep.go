// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended. Only Last timesteps carry an
// EndType other than Unended.
type EndType int

const (
	Unended EndType = iota

	// Goal means the root segment reached the target
	Goal

	// OutOfRange means a height check requested termination
	OutOfRange

	// GroundContact means a ground contact sensor requested termination
	GroundContact

	// Timeout means the episode step limit was reached
	Timeout
)

func (e EndType) String() string {
	switch e {
	case Goal:
		return "Goal"
	case OutOfRange:
		return "OutOfRange"
	case GroundContact:
		return "GroundContact"
	case Timeout:
		return "Timeout"
	default:
		return "Unended"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType    StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	endType     EndType
}

// New returns a new TimeStep
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
	}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd records why the episode ended. The first recorded reason wins
// so that a later ender cannot mask the cause of termination.
func (t *TimeStep) SetEnd(e EndType) {
	if t.endType == Unended {
		t.endType = e
	}
}

// EndType returns why the episode ended, or Unended if the TimeStep is
// not the last in its episode.
func (t *TimeStep) EndType() EndType {
	return t.endType
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
