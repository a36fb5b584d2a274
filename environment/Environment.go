// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/gowalker/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode should end. If the episode should
// end, End() modifies the argument timestep so that it is the last
// in the episode and records the reason for termination.
type Ender interface {
	End(*timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment as well as the starting and ending conditions of
// episodes.
//
// GetReward returns the reward for the action a which led to the
// (not yet finalized) timestep t. An error is returned when the
// reward cannot be computed, in which case the episode must be reset.
type Task interface {
	Starter
	Ender
	GetReward(t timestep.TimeStep, a *mat.VecDense) (float64, error)
	AtGoal() bool
	RewardSpec() Spec
	Min() float64
	Max() float64
}

// Environment implements a simulated environment, which includes a Task
// to complete
type Environment interface {
	Task
	Reset() (timestep.TimeStep, error) // Resets between episodes
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	CurrentTimeStep() timestep.TimeStep
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}
