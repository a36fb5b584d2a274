package trackers

import (
	"github.com/samuelfneumann/gowalker/experiment/tracker"
	"github.com/samuelfneumann/gowalker/timestep"
)

// EndType tracks and saves the reason each episode ended, in episode
// order
type EndType struct {
	endTypes []string
	counts   map[timestep.EndType]int
	filename string
}

// NewEndType returns a new EndType tracker which will save its data at
// filename
func NewEndType(filename string) *EndType {
	return &EndType{
		counts:   make(map[timestep.EndType]int),
		filename: filename,
	}
}

// Track records the end reason of t if t is the last timestep in the
// episode
func (e *EndType) Track(t timestep.TimeStep) {
	if !t.Last() {
		return
	}
	end := t.EndType()
	e.endTypes = append(e.endTypes, end.String())
	e.counts[end]++
}

// Count returns the number of episodes which ended for reason end
func (e *EndType) Count(end timestep.EndType) int {
	return e.counts[end]
}

// Data returns the end reason of all finished episodes
func (e *EndType) Data() []string {
	return e.endTypes
}

// Save saves the data tracked by the EndType Tracker to disk.
func (e *EndType) Save() error {
	return tracker.SaveData(e.filename, e.endTypes)
}
