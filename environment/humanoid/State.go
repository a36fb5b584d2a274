package humanoid

// State is the lifecycle state of a Humanoid episode
type State int

const (
	// Uninitialized means the segments have not been registered
	Uninitialized State = iota

	// Ready means the segments are registered and the baseline
	// distance to the target is known, but no episode has started
	Ready

	// Running means an episode is in progress
	Running

	// Terminal means the episode has ended. The Humanoid must be reset
	// before it can be stepped again.
	Terminal
)

func (s State) String() string {
	switch s {
	case Ready:
		return "Ready"
	case Running:
		return "Running"
	case Terminal:
		return "Terminal"
	default:
		return "Uninitialized"
	}
}
