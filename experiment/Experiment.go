// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/samuelfneumann/gowalker/agent/random"
	"github.com/samuelfneumann/gowalker/environment/envconfig"
	"github.com/samuelfneumann/gowalker/experiment/checkpointer"
	"github.com/samuelfneumann/gowalker/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments send each environment TimeStep to Trackers, which cache
// the data they need in RAM to be later saved to disk by Save(). Run()
// runs episodes until the step or episode limit is reached, and
// RunEpisode() runs a single episode.
//
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() method.
type Experiment interface {
	Run() error

	// RunEpisode returns whether the experiment's limits were reached
	RunEpisode() (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// Steps and Episodes return the number of steps and episodes run
	Steps() uint
	Episodes() uint
}

// Type is the kind of an Experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment.
type Config struct {
	Type        Type             `yaml:"type" json:"type"`
	MaxSteps    uint             `yaml:"maxSteps" json:"maxSteps"`
	MaxEpisodes uint             `yaml:"maxEpisodes" json:"maxEpisodes"`
	EnvConf     envconfig.Config `yaml:"environment" json:"environment"`
	AgentConf   random.Config    `yaml:"agent" json:"agent"`

	// RenderEvery renders the world to numbered PNG files in FramesDir
	// every RenderEvery steps of an episode. Zero disables rendering.
	RenderEvery int    `yaml:"renderEvery" json:"renderEvery"`
	FramesDir   string `yaml:"framesDir" json:"framesDir"`
}

// CreateExp creates the experiment described by the Config. The
// environment and agent are seeded with the seed of the environment
// configuration.
func (c Config) CreateExp(logger *zap.Logger, t []tracker.Tracker,
	check []checkpointer.Checkpointer) (Experiment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c.Type != OnlineExp {
		return nil, fmt.Errorf("createExp: no such experiment type %v",
			c.Type)
	}
	if c.RenderEvery < 0 {
		return nil, fmt.Errorf("createExp: render interval must be "+
			"non-negative \n\thave(%v)", c.RenderEvery)
	}

	env, world, _, err := c.EnvConf.CreateHumanoid(logger)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create environment: %w",
			err)
	}
	agent, err := c.AgentConf.CreateAgent(env, c.EnvConf.Seed)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	if c.RenderEvery > 0 {
		if err := os.MkdirAll(c.FramesDir, 0o755); err != nil {
			return nil, fmt.Errorf("createExp: %w", err)
		}
		render, err := checkpointer.NewNStep(c.RenderEvery,
			checkpointer.SaverFunc(world.Render),
			checkpointer.FilenameEnumerator(0,
				filepath.Join(c.FramesDir, "frame"), ".png"))
		if err != nil {
			return nil, fmt.Errorf("createExp: %w", err)
		}
		check = append(check[:len(check):len(check)], render)
	}

	return NewOnline(env, agent, c.MaxSteps, c.MaxEpisodes, logger, t,
		check), nil
}
