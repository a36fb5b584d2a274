package checkpointer

import (
	"fmt"

	ts "github.com/samuelfneumann/gowalker/timestep"
)

// nStep implements checkpointing every N steps of an episode
type nStep struct {
	interval int
	object   Saver

	// filename returns the name of the file to save the next snapshot
	// in, such as a FilenameEnumerator
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps of an
// episode, counting the first timestep of the episode
func NewNStep(n int, object Saver, filename func() string) (Checkpointer,
	error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: interval must be positive "+
			"\n\thave(%v)", n)
	}
	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint saves the tracked object if the step number of t is a
// multiple of the interval
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	if t.Number%n.interval == 0 {
		return n.object.Save(n.filename())
	}
	return nil
}
