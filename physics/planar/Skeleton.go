package planar

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/samuelfneumann/gowalker/body"
	"gonum.org/v1/gonum/spatial/r3"
)

// SegmentSpec describes a single box of the planar skeleton. All
// coordinates are in the sagittal plane: the first component points
// forward and the second points up.
type SegmentSpec struct {
	Segment body.Segment

	// Parent is the segment this one is hinged to. It is ignored for
	// the root.
	Parent body.Segment

	// Center and HalfExtents of the box when the skeleton stands upright
	Center      [2]float64
	HalfExtents [2]float64

	// Anchor is the world position of the hinge to the parent
	Anchor [2]float64

	Density float64
}

// DefaultSkeleton returns a standing humanoid about 1.7 units tall
// whose shins rest just above the ground. Left and right limbs overlap
// in the plane.
func DefaultSkeleton() []SegmentSpec {
	return []SegmentSpec{
		{
			Segment:     body.Pelvis,
			Center:      [2]float64{0, 1.0},
			HalfExtents: [2]float64{0.12, 0.08},
			Density:     1.0,
		},
		{
			Segment:     body.Chest,
			Parent:      body.Pelvis,
			Center:      [2]float64{0, 1.28},
			HalfExtents: [2]float64{0.12, 0.2},
			Anchor:      [2]float64{0, 1.08},
			Density:     1.0,
		},
		{
			Segment:     body.Head,
			Parent:      body.Chest,
			Center:      [2]float64{0, 1.6},
			HalfExtents: [2]float64{0.1, 0.12},
			Anchor:      [2]float64{0, 1.48},
			Density:     1.0,
		},
		{
			Segment:     body.ArmL,
			Parent:      body.Chest,
			Center:      [2]float64{0, 1.33},
			HalfExtents: [2]float64{0.04, 0.15},
			Anchor:      [2]float64{0, 1.46},
			Density:     1.0,
		},
		{
			Segment:     body.ForearmL,
			Parent:      body.ArmL,
			Center:      [2]float64{0, 1.03},
			HalfExtents: [2]float64{0.035, 0.15},
			Anchor:      [2]float64{0, 1.18},
			Density:     1.0,
		},
		{
			Segment:     body.ArmR,
			Parent:      body.Chest,
			Center:      [2]float64{0, 1.33},
			HalfExtents: [2]float64{0.04, 0.15},
			Anchor:      [2]float64{0, 1.46},
			Density:     1.0,
		},
		{
			Segment:     body.ForearmR,
			Parent:      body.ArmR,
			Center:      [2]float64{0, 1.03},
			HalfExtents: [2]float64{0.035, 0.15},
			Anchor:      [2]float64{0, 1.18},
			Density:     1.0,
		},
		{
			Segment:     body.ThighL,
			Parent:      body.Pelvis,
			Center:      [2]float64{0, 0.695},
			HalfExtents: [2]float64{0.06, 0.225},
			Anchor:      [2]float64{0, 0.92},
			Density:     1.0,
		},
		{
			Segment:     body.ShinL,
			Parent:      body.ThighL,
			Center:      [2]float64{0, 0.245},
			HalfExtents: [2]float64{0.05, 0.225},
			Anchor:      [2]float64{0, 0.47},
			Density:     1.0,
		},
		{
			Segment:     body.ThighR,
			Parent:      body.Pelvis,
			Center:      [2]float64{0, 0.695},
			HalfExtents: [2]float64{0.06, 0.225},
			Anchor:      [2]float64{0, 0.92},
			Density:     1.0,
		},
		{
			Segment:     body.ShinR,
			Parent:      body.ThighR,
			Center:      [2]float64{0, 0.245},
			HalfExtents: [2]float64{0.05, 0.225},
			Anchor:      [2]float64{0, 0.47},
			Density:     1.0,
		},
	}
}

// The plane is embedded in world space with its forward axis along +Z
// and its up axis along +Y. A counter-clockwise box2d angle θ is a
// rotation of -θ about +X.
var lateral = r3.Vec{X: 1}

func toVec(v box2d.B2Vec2) r3.Vec {
	return r3.Vec{Y: v.Y, Z: v.X}
}

func fromVec(v r3.Vec) box2d.B2Vec2 {
	return box2d.MakeB2Vec2(v.Z, v.Y)
}

func toRotation(angle float64) r3.Rotation {
	return r3.NewRotation(-angle, lateral)
}

// fromRotation returns the planar angle of r, found from where r takes
// the forward axis. Any component of r out of the plane is dropped.
func fromRotation(r r3.Rotation) float64 {
	if r == (r3.Rotation{}) {
		return 0
	}
	forward := r.Rotate(r3.Vec{Z: 1})
	if forward.Y == 0 && forward.Z == 0 {
		return 0
	}
	return math.Atan2(forward.Y, forward.Z)
}

// toAngularVelocity converts a box2d angular velocity to world space
func toAngularVelocity(omega float64) r3.Vec {
	return r3.Vec{X: -omega}
}

func fromAngularVelocity(w r3.Vec) float64 {
	return -w.X
}
