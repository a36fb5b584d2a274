// Package checkpointer implements Checkpointers, which save snapshots
// of an experiment at chosen timesteps
package checkpointer

import (
	ts "github.com/samuelfneumann/gowalker/timestep"
)

// Saver is an object which can save a snapshot of itself to a file
type Saver interface {
	Save(filename string) error
}

// SaverFunc adapts a function to the Saver interface
type SaverFunc func(filename string) error

// Save calls f(filename)
func (f SaverFunc) Save(filename string) error {
	return f(filename)
}

// Checkpointer checkpoints/saves objects based on timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
