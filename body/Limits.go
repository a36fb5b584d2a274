package body

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"
)

// JointLimits describes the angular range of a joint in degrees. The X
// axis has an asymmetric range [LowX, HighX]; the Y and Z axes are
// symmetric in [-Y, Y] and [-Z, Z]. Single-axis joints such as knees
// and elbows use Y = Z = 0.
//
// JointLimits are fixed when a segment is set up.
type JointLimits struct {
	LowX  float64 `yaml:"lowX" json:"lowX"`
	HighX float64 `yaml:"highX" json:"highX"`
	Y     float64 `yaml:"y" json:"y"`
	Z     float64 `yaml:"z" json:"z"`
}

// XRange returns the range of the X axis
func (l JointLimits) XRange() r1.Interval {
	return r1.Interval{Min: l.LowX, Max: l.HighX}
}

// YRange returns the range of the Y axis
func (l JointLimits) YRange() r1.Interval {
	return r1.Interval{Min: -l.Y, Max: l.Y}
}

// ZRange returns the range of the Z axis
func (l JointLimits) ZRange() r1.Interval {
	return r1.Interval{Min: -l.Z, Max: l.Z}
}

// Validate returns an error if the limits describe an empty or
// inverted range
func (l JointLimits) Validate() error {
	if l.LowX > l.HighX {
		return fmt.Errorf("validate: low X limit %v exceeds high X limit %v",
			l.LowX, l.HighX)
	}
	if l.Y < 0 || l.Z < 0 {
		return fmt.Errorf("validate: Y and Z limits must be non-negative "+
			"\n\thave(%v, %v)", l.Y, l.Z)
	}
	return nil
}

var defaultLimits = [NumSegments]JointLimits{
	Pelvis:   {},
	Chest:    {LowX: -30, HighX: 30, Y: 30, Z: 30},
	Head:     {LowX: -30, HighX: 30, Y: 30, Z: 30},
	ArmL:     {LowX: -90, HighX: 90, Y: 60, Z: 60},
	ForearmL: {LowX: -135, HighX: 0},
	ArmR:     {LowX: -90, HighX: 90, Y: 60, Z: 60},
	ForearmR: {LowX: -135, HighX: 0},
	ThighL:   {LowX: -90, HighX: 30, Y: 30},
	ShinL:    {LowX: 0, HighX: 120},
	ThighR:   {LowX: -90, HighX: 30, Y: 30},
	ShinR:    {LowX: 0, HighX: 120},
}

// DefaultLimits returns the default joint limits of segment s. The root
// has no joint and so has empty limits.
func DefaultLimits(s Segment) JointLimits {
	if !s.Valid() {
		return JointLimits{}
	}
	return defaultLimits[s]
}
