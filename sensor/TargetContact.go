package sensor

// DefaultTargetContactReward is the reward added when a segment with a
// TargetContact touches the target
const DefaultTargetContactReward = 1.0

// TargetContactConfig configures a TargetContact
type TargetContactConfig struct {
	Reward float64 `yaml:"reward" json:"reward"`
}

// TargetContact rewards a segment for touching the target
type TargetContact struct {
	TargetContactConfig
	Touching bool
}

// NewTargetContact returns a new TargetContact
func NewTargetContact(config TargetContactConfig) *TargetContact {
	return &TargetContact{TargetContactConfig: config}
}

// Begin records that the segment touched the target and adds the
// contact reward
func (t *TargetContact) Begin(agent Agent) {
	t.Touching = true
	agent.AddReward(t.Reward)
}

// End records that the segment stopped touching the target
func (t *TargetContact) End() {
	t.Touching = false
}

// Reset clears the contact flag
func (t *TargetContact) Reset() {
	t.Touching = false
}
