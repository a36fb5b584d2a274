package body

import "fmt"

// Segment identifies one of the actuated body segments of the humanoid.
// Segments form a dense enumeration so that per-segment state can be
// stored in fixed-size arrays.
type Segment int

const (
	Pelvis Segment = iota
	Chest
	Head
	ArmL
	ForearmL
	ArmR
	ForearmR
	ThighL
	ShinL
	ThighR
	ShinR

	// NumSegments is the number of segments in the skeleton
	NumSegments int = iota
)

// Root is the segment that all positions are expressed relative to
const Root = Pelvis

var segmentNames = [NumSegments]string{
	"pelvis",
	"chest",
	"head",
	"armL",
	"forearmL",
	"armR",
	"forearmR",
	"thighL",
	"shinL",
	"thighR",
	"shinR",
}

// Segments returns every segment in enumeration order, which is also
// the order the humanoid registers them in.
func Segments() []Segment {
	segments := make([]Segment, NumSegments)
	for i := range segments {
		segments[i] = Segment(i)
	}
	return segments
}

// Valid returns whether s names a segment of the skeleton
func (s Segment) Valid() bool {
	return s >= 0 && int(s) < NumSegments
}

// IsRoot returns whether s is the root segment
func (s Segment) IsRoot() bool {
	return s == Root
}

func (s Segment) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Segment(%d)", int(s))
	}
	return segmentNames[s]
}

// ParseSegment returns the segment with the given name
func ParseSegment(name string) (Segment, error) {
	for i, segmentName := range segmentNames {
		if segmentName == name {
			return Segment(i), nil
		}
	}
	return 0, fmt.Errorf("parseSegment: %w %q", ErrInvalidSegment, name)
}
