package experiment

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/samuelfneumann/gowalker/agent"
	env "github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/experiment/checkpointer"
	"github.com/samuelfneumann/gowalker/experiment/tracker"
	ts "github.com/samuelfneumann/gowalker/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	env.Environment
	agent.Agent

	maxSteps        uint
	currentSteps    uint
	maxEpisodes     uint
	currentEpisodes uint

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        *zap.Logger
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for and episodes the maximum
// number of episodes, where zero means no episode limit. The t
// parameter is a slice of tracker.Tracker which determine what data
// is saved, and the c parameter a slice of Checkpointers called on
// every timestep.
func NewOnline(e env.Environment, a agent.Agent, steps, episodes uint,
	logger *zap.Logger, t []tracker.Tracker,
	c []checkpointer.Checkpointer) *Online {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Online{
		Environment:   e,
		Agent:         a,
		maxSteps:      steps,
		maxEpisodes:   episodes,
		trackers:      t,
		checkpointers: c,
		logger:        logger,
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Steps returns the number of steps taken in the experiment
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes run in the experiment
func (o *Online) Episodes() uint {
	return o.currentEpisodes
}

// RunEpisode runs a single episode of the experiment and returns
// whether the step or episode limit has been reached
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: could not reset: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.track(step); err != nil {
		return true, fmt.Errorf("runEpisode: %w", err)
	}

	episodeReturn := 0.0
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return true, fmt.Errorf("runEpisode: step %v: %w", step.Number,
				err)
		}
		episodeReturn += step.Reward

		if err := o.track(step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}

		if err := o.Agent.Observe(action, step); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %w", err)
		}
	}
	o.Agent.EndEpisode()
	o.currentEpisodes++

	o.logger.Info("episode finished",
		zap.Uint("episode", o.currentEpisodes),
		zap.Int("steps", step.Number),
		zap.Float64("return", episodeReturn),
		zap.Stringer("end", step.EndType()),
	)

	return o.done(), nil
}

func (o *Online) done() bool {
	if o.currentSteps >= o.maxSteps {
		return true
	}
	return o.maxEpisodes > 0 && o.currentEpisodes >= o.maxEpisodes
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// track sends the current timestep to each tracker and checkpointer
func (o *Online) track(t ts.TimeStep) error {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("track: checkpoint: %w", err)
		}
	}
	return nil
}
