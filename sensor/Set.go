// Package sensor implements the per-segment contact and height sensors
// of a humanoid. Sensors are owned by the physics side of a tick: the
// environment forwards contact events and body heights to them, and
// they may adjust the agent's reward or request the end of the episode.
// The observation encoder only reads their flags.
package sensor

import "github.com/samuelfneumann/gowalker/timestep"

// Agent is what a sensor reports to. SetReward overwrites the reward
// accumulated so far in the current tick while AddReward adds to it.
type Agent interface {
	SetReward(float64)
	AddReward(float64)
	EndEpisode(timestep.EndType)
}

// Set is the optional sensor capability record of a single segment. A
// nil field means the segment does not carry that sensor. The record is
// fixed once the segment is set up.
type Set struct {
	Ground *GroundContact
	Target *TargetContact
	Height *HeightCheck
}

// Reset clears the contact flags and marks the height as in range
func (s Set) Reset() {
	if s.Ground != nil {
		s.Ground.Reset()
	}
	if s.Target != nil {
		s.Target.Reset()
	}
	if s.Height != nil {
		s.Height.Reset()
	}
}

// TouchingGround returns whether the segment touches the ground. A
// segment without a ground sensor never touches the ground.
func (s Set) TouchingGround() bool {
	return s.Ground != nil && s.Ground.Touching
}

// InRange returns whether the segment is within its height range. A
// segment without a height check is always in range.
func (s Set) InRange() bool {
	return s.Height == nil || s.Height.InRange
}
