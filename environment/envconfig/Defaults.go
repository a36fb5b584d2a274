package envconfig

import (
	"github.com/samuelfneumann/gowalker/environment/humanoid"
	"github.com/samuelfneumann/gowalker/physics/planar"
)

// DefaultEpisodeCutoff is the default maximum number of steps in an
// episode
const DefaultEpisodeCutoff = 1000

// Default returns the default configuration of the Humanoid environment
// with the Walk task
func Default() Config {
	return Config{
		Environment: Humanoid,
		Task:        Walk,
		Seed:        0,
		Humanoid:    humanoid.DefaultConfig(),
		Walk:        DefaultWalk(),
		Physics:     planar.DefaultConfig(),
	}
}

// DefaultWalk returns the default configuration of the Walk task
func DefaultWalk() humanoid.TaskConfig {
	return humanoid.TaskConfig{
		RewardMode:    humanoid.Distance,
		GoalReward:    humanoid.DefaultGoalReward,
		EpisodeCutoff: DefaultEpisodeCutoff,
	}
}
