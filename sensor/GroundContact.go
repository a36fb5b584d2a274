package sensor

import "github.com/samuelfneumann/gowalker/timestep"

// GroundContactConfig configures how a GroundContact reacts when its
// segment touches the ground
type GroundContactConfig struct {
	// AgentDoneOnContact ends the episode when the segment touches the
	// ground
	AgentDoneOnContact bool `yaml:"agentDoneOnContact" json:"agentDoneOnContact"`

	// PenalizeContact overwrites the tick's reward with ContactPenalty
	// when the segment touches the ground
	PenalizeContact bool    `yaml:"penalizeContact" json:"penalizeContact"`
	ContactPenalty  float64 `yaml:"contactPenalty" json:"contactPenalty"`
}

// GroundContact tracks whether a segment touches the ground. It can be
// used as an observation, to penalize undesired contact, or to end the
// episode on contact.
type GroundContact struct {
	GroundContactConfig
	Touching bool
}

// NewGroundContact returns a new GroundContact
func NewGroundContact(config GroundContactConfig) *GroundContact {
	return &GroundContact{GroundContactConfig: config}
}

// Begin records the start of a ground contact
func (g *GroundContact) Begin(agent Agent) {
	g.Touching = true
	if g.PenalizeContact {
		agent.SetReward(g.ContactPenalty)
	}
	if g.AgentDoneOnContact {
		agent.EndEpisode(timestep.GroundContact)
	}
}

// End records the end of a ground contact
func (g *GroundContact) End() {
	g.Touching = false
}

// Reset clears the contact flag
func (g *GroundContact) Reset() {
	g.Touching = false
}
