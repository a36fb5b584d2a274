package sensor

import (
	"fmt"

	"github.com/samuelfneumann/gowalker/timestep"
)

// HeightCheckConfig configures a HeightCheck
type HeightCheckConfig struct {
	// Enabled turns the check on. A disabled check never changes
	// InRange after a reset.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// AgentDoneOutOfRange ends the episode when the segment leaves
	// [MinHeight, MaxHeight]
	AgentDoneOutOfRange bool `yaml:"agentDoneOutOfRange" json:"agentDoneOutOfRange"`

	MinHeight float64 `yaml:"minHeight" json:"minHeight"`
	MaxHeight float64 `yaml:"maxHeight" json:"maxHeight"`

	// RewardInRange is added every tick the segment is in range
	RewardInRange float64 `yaml:"rewardInRange" json:"rewardInRange"`

	// RewardOutOfRange overwrites the tick's reward when the segment is
	// out of range
	RewardOutOfRange float64 `yaml:"rewardOutOfRange" json:"rewardOutOfRange"`
}

// Validate returns an error if an enabled check has an empty range
func (c HeightCheckConfig) Validate() error {
	if c.Enabled && c.MinHeight > c.MaxHeight {
		return fmt.Errorf("validate: min height %v exceeds max height %v",
			c.MinHeight, c.MaxHeight)
	}
	return nil
}

// HeightCheck tracks whether a segment's height stays within a range
type HeightCheck struct {
	HeightCheckConfig
	InRange bool
}

// NewHeightCheck returns a new HeightCheck which starts in range
func NewHeightCheck(config HeightCheckConfig) *HeightCheck {
	return &HeightCheck{HeightCheckConfig: config, InRange: true}
}

// Update checks the segment height once per tick
func (h *HeightCheck) Update(height float64, agent Agent) {
	if !h.Enabled {
		return
	}

	if height < h.MinHeight || height > h.MaxHeight {
		h.InRange = false
		agent.SetReward(h.RewardOutOfRange)
		if h.AgentDoneOutOfRange {
			agent.EndEpisode(timestep.OutOfRange)
		}
		return
	}

	h.InRange = true
	agent.AddReward(h.RewardInRange)
}

// Reset marks the segment as in range
func (h *HeightCheck) Reset() {
	h.InRange = true
}
