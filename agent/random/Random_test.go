package random

import (
	"testing"

	"github.com/samuelfneumann/gowalker/agent"
	"github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSelectActionWithinBounds(t *testing.T) {
	spec := environment.NewBoxSpec(27, environment.Action, -1, 1)

	configs := []Config{
		{Type: agent.UniformRandom},
		{Type: agent.GaussianRandom, StdDev: 2},
	}
	for _, c := range configs {
		t.Run(string(c.Type), func(t *testing.T) {
			r, err := New(c, spec, 1)
			require.NoError(t, err)
			assert.True(t, c.ValidAgent(r))

			for i := 0; i < 100; i++ {
				a := r.SelectAction(timestep.TimeStep{})
				require.Equal(t, 27, a.Len())
				for j := 0; j < a.Len(); j++ {
					assert.True(t, a.AtVec(j) >= -1 && a.AtVec(j) <= 1)
				}
			}
		})
	}
}

func TestSeeded(t *testing.T) {
	spec := environment.NewBoxSpec(4, environment.Action, -1, 1)
	c := Config{Type: agent.UniformRandom}

	r1, err := New(c, spec, 7)
	require.NoError(t, err)
	r2, err := New(c, spec, 7)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		assert.True(t, mat.Equal(r1.SelectAction(timestep.TimeStep{}),
			r2.SelectAction(timestep.TimeStep{})))
	}
}

func TestEvalSelectsCentre(t *testing.T) {
	spec := environment.NewBoxSpec(3, environment.Action, 0, 2)
	r, err := New(Config{Type: agent.UniformRandom}, spec, 0)
	require.NoError(t, err)

	r.Eval()
	assert.True(t, r.IsEval())
	assert.Equal(t, []float64{1, 1, 1},
		r.SelectAction(timestep.TimeStep{}).RawVector().Data)

	r.Train()
	assert.False(t, r.IsEval())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Config{Type: agent.UniformRandom}.Validate())
	assert.Error(t, Config{Type: agent.GaussianRandom}.Validate())
	assert.Error(t, Config{Type: "Greedy"}.Validate())

	spec := environment.NewBoxSpec(3, environment.Action, 0, 2)
	spec.Cardinality = environment.Discrete
	_, err := New(Config{Type: agent.UniformRandom}, spec, 0)
	assert.Error(t, err)
}
