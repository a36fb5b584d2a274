package humanoid

import (
	"github.com/samuelfneumann/gowalker/body"
)

// rotationControl is a segment whose joint target is set from the
// next Axes control values. Unused axes are given 0.
type rotationControl struct {
	Segment body.Segment
	Axes    int
}

// Layout of the control vector. The rotation targets come first,
// followed by one strength per actuated segment.
var (
	rotationLayout = []rotationControl{
		{body.Chest, 3},
		{body.ThighL, 2},
		{body.ThighR, 2},
		{body.ShinL, 1},
		{body.ShinR, 1},
		{body.ArmL, 3},
		{body.ArmR, 3},
		{body.ForearmL, 1},
		{body.ForearmR, 1},
	}

	strengthLayout = []body.Segment{
		body.Chest,
		body.Head,
		body.ThighL,
		body.ShinL,
		body.ThighR,
		body.ShinR,
		body.ArmL,
		body.ForearmL,
		body.ArmR,
		body.ForearmR,
	}
)

const (
	// RotationControls is the number of joint target values in the
	// control vector
	RotationControls = 17

	// StrengthControls is the number of joint strength values in the
	// control vector
	StrengthControls = 10

	// ActionLength is the length of the control vector
	ActionLength = RotationControls + StrengthControls

	// MinAction and MaxAction bound every control value
	MinAction = -1.0
	MaxAction = 1.0
)

// actuate applies the control vector to the joints of c. The control
// vector must have ActionLength values already clipped to
// [MinAction, MaxAction].
func actuate(c *body.Controller, action []float64) {
	i := 0
	for _, rc := range rotationLayout {
		var axes [3]float64
		copy(axes[:rc.Axes], action[i:i+rc.Axes])
		i += rc.Axes

		c.Part(rc.Segment).SetJointTargetRotation(axes[0], axes[1], axes[2])
	}

	for _, s := range strengthLayout {
		c.Part(s).SetJointStrength(action[i])
		i++
	}
}

// ControlName returns a human readable name for control index i, e.g.
// "thighL.y" or "armR.strength"
func ControlName(i int) string {
	axisNames := [3]string{"x", "y", "z"}
	for _, rc := range rotationLayout {
		if i < rc.Axes {
			return rc.Segment.String() + "." + axisNames[i]
		}
		i -= rc.Axes
	}
	if i >= 0 && i < len(strengthLayout) {
		return strengthLayout[i].String() + ".strength"
	}
	return "unknown"
}
