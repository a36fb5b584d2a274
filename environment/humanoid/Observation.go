package humanoid

import (
	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// velocity error, average velocity, goal velocity, root and head
	// rotation deltas, target position
	headerLength = 1 + 3 + 3 + 4 + 4 + 3

	// ground flag, height flag, velocity, angular velocity, position
	// relative to the root
	segmentLength = 1 + 1 + 3 + 3 + 3

	// local rotation and normalized strength of a jointed segment
	jointLength = 4 + 1
)

// ObservationLength returns the length of the observation vector of a
// humanoid with n segments, one of which is the root
func ObservationLength(n int) int {
	if n < 1 {
		return headerLength
	}
	return headerLength + n*segmentLength + (n-1)*jointLength
}

type observation []float64

func (o observation) scalar(f float64) observation {
	return append(o, f)
}

func (o observation) flag(b bool) observation {
	if b {
		return append(o, 1.0)
	}
	return append(o, 0.0)
}

func (o observation) vec(v r3.Vec) observation {
	return append(o, v.X, v.Y, v.Z)
}

func (o observation) rotation(r r3.Rotation) observation {
	c := spatialutils.Components(r)
	return append(o, c[:]...)
}

// observe encodes the state of the humanoid relative to its orientation
// frame. The frame must be up to date.
func (h *Humanoid) observe() *mat.VecDense {
	f := h.frame
	forward := f.Forward()
	avgVel := h.controller.AverageVelocity()
	velGoal := r3.Scale(h.config.WalkingSpeed, forward)

	root := h.controller.Part(body.Root).Body()
	head := h.controller.Part(body.Head).Body()

	obs := make(observation, 0, h.obsLen)
	obs = obs.scalar(r3.Norm(r3.Sub(velGoal, avgVel)))
	obs = obs.vec(f.InverseTransformDirection(avgVel))
	obs = obs.vec(f.InverseTransformDirection(velGoal))

	obs = obs.rotation(spatialutils.FromTo(
		spatialutils.ForwardOf(root.Pose().Rotation), forward))
	obs = obs.rotation(spatialutils.FromTo(
		spatialutils.ForwardOf(head.Pose().Rotation), forward))

	obs = obs.vec(f.InverseTransformPoint(h.goal.Position()))

	rootPos := root.Pose().Position
	for _, bp := range h.controller.Parts() {
		rb := bp.Body()
		sensors := bp.Sensors()

		obs = obs.flag(sensors.TouchingGround())
		obs = obs.flag(sensors.InRange())

		obs = obs.vec(f.InverseTransformDirection(rb.Velocity()))
		obs = obs.vec(f.InverseTransformDirection(rb.AngularVelocity()))
		obs = obs.vec(f.InverseTransformDirection(
			r3.Sub(rb.Pose().Position, rootPos)))

		if !bp.Segment().IsRoot() {
			obs = obs.rotation(rb.LocalRotation())
			obs = obs.scalar(bp.DriveState().Strength /
				h.controller.MaxForce())
		}
	}

	return mat.NewVecDense(len(obs), obs)
}
