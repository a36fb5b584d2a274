package sensor

import (
	"testing"

	"github.com/samuelfneumann/gowalker/timestep"
	"github.com/stretchr/testify/assert"
)

// recorder is an Agent which records what sensors report to it
type recorder struct {
	reward float64
	end    timestep.EndType
}

func (r *recorder) SetReward(v float64)            { r.reward = v }
func (r *recorder) AddReward(v float64)            { r.reward += v }
func (r *recorder) EndEpisode(e timestep.EndType) { r.end = e }

func TestGroundContact(t *testing.T) {
	agent := &recorder{reward: 0.5}
	g := NewGroundContact(GroundContactConfig{})
	g.Begin(agent)
	assert.True(t, g.Touching)
	assert.Equal(t, 0.5, agent.reward)
	assert.Equal(t, timestep.Unended, agent.end)

	g.End()
	assert.False(t, g.Touching)

	g = NewGroundContact(GroundContactConfig{
		AgentDoneOnContact: true,
		PenalizeContact:    true,
		ContactPenalty:     -1,
	})
	g.Begin(agent)
	assert.Equal(t, -1.0, agent.reward, "penalty should overwrite")
	assert.Equal(t, timestep.GroundContact, agent.end)

	g.Reset()
	assert.False(t, g.Touching)
}

func TestTargetContact(t *testing.T) {
	agent := &recorder{reward: 0.5}
	c := NewTargetContact(TargetContactConfig{Reward: DefaultTargetContactReward})
	c.Begin(agent)
	assert.True(t, c.Touching)
	assert.Equal(t, 1.5, agent.reward)

	c.Reset()
	assert.False(t, c.Touching)
}

func TestHeightCheck(t *testing.T) {
	config := HeightCheckConfig{
		Enabled:             true,
		AgentDoneOutOfRange: true,
		MinHeight:           0.5,
		MaxHeight:           2,
		RewardInRange:       0.1,
		RewardOutOfRange:    -2,
	}
	assert.NoError(t, config.Validate())

	agent := &recorder{reward: 1}
	h := NewHeightCheck(config)
	assert.True(t, h.InRange)

	h.Update(1, agent)
	assert.True(t, h.InRange)
	assert.InDelta(t, 1.1, agent.reward, 1e-12)
	assert.Equal(t, timestep.Unended, agent.end)

	h.Update(0.2, agent)
	assert.False(t, h.InRange)
	assert.Equal(t, -2.0, agent.reward)
	assert.Equal(t, timestep.OutOfRange, agent.end)

	h.Reset()
	assert.True(t, h.InRange)

	disabled := NewHeightCheck(HeightCheckConfig{})
	disabled.Update(-100, agent)
	assert.True(t, disabled.InRange)

	config.MinHeight = 3
	assert.Error(t, config.Validate())
}

func TestSet(t *testing.T) {
	var empty Set
	assert.False(t, empty.TouchingGround())
	assert.True(t, empty.InRange())
	empty.Reset()

	s := Set{
		Ground: NewGroundContact(GroundContactConfig{}),
		Target: NewTargetContact(TargetContactConfig{}),
		Height: NewHeightCheck(HeightCheckConfig{}),
	}
	s.Ground.Touching = true
	s.Target.Touching = true
	s.Height.InRange = false
	assert.True(t, s.TouchingGround())
	assert.False(t, s.InRange())

	s.Reset()
	assert.False(t, s.TouchingGround())
	assert.False(t, s.Target.Touching)
	assert.True(t, s.InRange())
}
