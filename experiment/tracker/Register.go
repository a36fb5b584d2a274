package tracker

import (
	"github.com/samuelfneumann/gowalker/environment"
	"github.com/samuelfneumann/gowalker/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// registeredTracker calls the Track() method of the embedded Tracker
// with the current TimeStep of the registered Environment, and the
// argument to registeredTracker.Track() is ignored.
//
// This may be useful when an experiment is run on an Environment
// wrapper but the data of the wrapped Environment is needed.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a new Tracker with an Environment, to track data
// from the registered Environment only.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the current
// TimeStep of the registered Environment.
func (r *registeredTracker) Track(timestep.TimeStep) {
	r.Tracker.Track(r.env.CurrentTimeStep())
}
