// Package goal implements the target that a humanoid walks toward:
// where it spawns, what happens when it is touched, and how it recovers
// when it falls off the platform.
package goal

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gowalker/physics"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat/distmv"
)

// DefaultFallDistance is the distance below its starting height at
// which a target is considered to have fallen off the platform
const DefaultFallDistance = 5.0

// Config configures a Goal
type Config struct {
	// SpawnRadius is the radius around the starting position in which
	// the target is placed when it respawns
	SpawnRadius float64 `yaml:"spawnRadius" json:"spawnRadius"`

	// RespawnIfTouched moves the target when it is touched. Otherwise
	// touching the target ends the episode.
	RespawnIfTouched bool `yaml:"respawnIfTouched" json:"respawnIfTouched"`

	// RespawnIfFallsOffPlatform moves the target back onto the platform
	// once it drops FallDistance below its starting height
	RespawnIfFallsOffPlatform bool    `yaml:"respawnIfFallsOffPlatform" json:"respawnIfFallsOffPlatform"`
	FallDistance              float64 `yaml:"fallDistance" json:"fallDistance"`
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.SpawnRadius < 0 {
		return fmt.Errorf("validate: spawn radius must be non-negative "+
			"\n\thave(%v)", c.SpawnRadius)
	}
	if c.RespawnIfFallsOffPlatform && c.FallDistance <= 0 {
		return fmt.Errorf("validate: fall distance must be positive "+
			"\n\thave(%v)", c.FallDistance)
	}
	return nil
}

// Goal places a physics.Target and reacts to it being touched
type Goal struct {
	Config
	target      physics.Target
	startingPos r3.Vec

	// Samples points in the unit cube, rejected until inside the unit
	// sphere
	rng    *distmv.Uniform
	logger *zap.Logger
}

// New returns a new Goal for target. The target's current position is
// its starting position. If the goal respawns when touched, the target
// is immediately moved to a random position.
func New(target physics.Target, c Config, seed uint64,
	logger *zap.Logger) (*Goal, error) {
	if target == nil {
		return nil, fmt.Errorf("newGoal: nil target")
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newGoal: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	bounds := []r1.Interval{{Min: -1, Max: 1}, {Min: -1, Max: 1}, {Min: -1, Max: 1}}
	g := &Goal{
		Config:      c,
		target:      target,
		startingPos: target.Position(),
		rng:         distmv.NewUniform(bounds, rand.NewSource(seed)),
		logger:      logger,
	}

	if g.RespawnIfTouched {
		g.MoveToRandomPosition()
	}
	return g, nil
}

// Position returns the current position of the target
func (g *Goal) Position() r3.Vec {
	return g.target.Position()
}

// StartingPosition returns the position the target spawns around
func (g *Goal) StartingPosition() r3.Vec {
	return g.startingPos
}

// MoveToRandomPosition moves the target to a random point within
// SpawnRadius of its starting position, at the starting height
func (g *Goal) MoveToRandomPosition() {
	var p r3.Vec
	for {
		sample := g.rng.Rand(nil)
		p = r3.Vec{X: sample[0], Y: sample[1], Z: sample[2]}
		if r3.Norm2(p) <= 1.0 {
			break
		}
	}

	pos := r3.Add(g.startingPos, r3.Scale(g.SpawnRadius, p))
	pos.Y = g.startingPos.Y
	g.target.SetPosition(pos)
}

// Update respawns the target if it fell off the platform. It should be
// called once per tick.
func (g *Goal) Update() {
	if !g.RespawnIfFallsOffPlatform {
		return
	}
	if g.target.Position().Y < g.startingPos.Y-g.FallDistance {
		g.logger.Info("target fell off platform",
			zap.Float64("height", g.target.Position().Y))
		g.MoveToRandomPosition()
	}
}

// Touch handles the agent touching the target. If the goal respawns
// when touched, the target is moved and Touch returns false. Otherwise
// Touch returns true to indicate that the episode should end.
func (g *Goal) Touch() bool {
	if g.RespawnIfTouched {
		g.MoveToRandomPosition()
		return false
	}
	return true
}
