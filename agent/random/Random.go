// Package random implements agents which select actions at random and
// never learn
package random

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/samuelfneumann/gowalker/agent"
	"github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/timestep"
	"github.com/samuelfneumann/gowalker/utils/matutils"
)

// Config implements an agent.Config for random agents
type Config struct {
	Type agent.Type `yaml:"type" json:"type"`

	// StdDev is the standard deviation of each action dimension of a
	// Gaussian random agent. Sampled actions are clipped to the action
	// bounds.
	StdDev float64 `yaml:"stdDev" json:"stdDev"`
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	switch c.Type {
	case agent.UniformRandom:
		return nil

	case agent.GaussianRandom:
		if c.StdDev <= 0 {
			return fmt.Errorf("validate: standard deviation must be "+
				"positive \n\thave(%v)", c.StdDev)
		}
		return nil
	}
	return fmt.Errorf("validate: no such random agent %q", c.Type)
}

// ValidAgent returns whether the argument agent is valid for the
// Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Random)
	return ok
}

// CreateAgent creates the agent that the config describes
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}
	r, err := New(c, env.ActionSpec(), seed)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}
	return r, nil
}

// Random implements an agent which samples each action independently
// of the observation. In evaluation mode, Random selects the centre of
// the action space.
type Random struct {
	sampler distmv.Rander
	low     *mat.VecDense
	high    *mat.VecDense
	centre  *mat.VecDense
	eval    bool
}

// New returns a new Random agent for a continuous action space
func New(c Config, actionSpec environment.Spec, seed uint64) (*Random,
	error) {
	if actionSpec.Cardinality != environment.Continuous {
		return nil, fmt.Errorf("new: random agents require continuous " +
			"actions")
	}

	low, high := actionSpec.LowerBound, actionSpec.UpperBound
	dims := low.Len()
	source := rand.NewSource(seed)

	centre := mat.NewVecDense(dims, nil)
	centre.AddVec(low, high)
	centre.ScaleVec(0.5, centre)

	var sampler distmv.Rander
	switch c.Type {
	case agent.UniformRandom:
		sampler = distmv.NewUniform(matutils.Bounds(low, high), source)

	case agent.GaussianRandom:
		variance := make([]float64, dims)
		for i := range variance {
			variance[i] = c.StdDev * c.StdDev
		}
		cov := mat.NewDiagDense(dims, variance)

		normal, ok := distmv.NewNormal(centre.RawVector().Data, cov, source)
		if !ok {
			return nil, fmt.Errorf("new: *Normal has non-positive-definite "+
				"covariance %v", matutils.Format(cov))
		}
		sampler = normal

	default:
		return nil, fmt.Errorf("new: no such random agent %q", c.Type)
	}

	return &Random{
		sampler: sampler,
		low:     low,
		high:    high,
		centre:  centre,
	}, nil
}

// SelectAction selects an action at random
func (r *Random) SelectAction(_ timestep.TimeStep) *mat.VecDense {
	if r.eval {
		return mat.VecDenseCopyOf(r.centre)
	}

	action := mat.NewVecDense(r.centre.Len(), r.sampler.Rand(nil))
	matutils.VecClipBounds(action, r.low, r.high)
	return action
}

// Eval sets the agent to evaluation mode
func (r *Random) Eval() { r.eval = true }

// Train sets the agent to training mode
func (r *Random) Train() { r.eval = false }

// IsEval returns whether the agent is in evaluation mode
func (r *Random) IsEval() bool { return r.eval }

// Step performs no update, a Random agent does not learn
func (r *Random) Step() error { return nil }

// Observe does nothing
func (r *Random) Observe(mat.Vector, timestep.TimeStep) error { return nil }

// ObserveFirst does nothing
func (r *Random) ObserveFirst(timestep.TimeStep) error { return nil }

// EndEpisode does nothing
func (r *Random) EndEpisode() {}
