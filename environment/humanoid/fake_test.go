package humanoid

import (
	"testing"

	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type fakeBody struct {
	pose      physics.Pose
	vel       r3.Vec
	angVel    r3.Vec
	maxAngVel float64
}

func (b *fakeBody) Pose() physics.Pose                { return b.pose }
func (b *fakeBody) LocalRotation() r3.Rotation        { return b.pose.Rotation }
func (b *fakeBody) Velocity() r3.Vec                  { return b.vel }
func (b *fakeBody) AngularVelocity() r3.Vec           { return b.angVel }
func (b *fakeBody) SetPose(p physics.Pose)            { b.pose = p }
func (b *fakeBody) SetVelocity(v r3.Vec)              { b.vel = v }
func (b *fakeBody) SetAngularVelocity(w r3.Vec)       { b.angVel = w }
func (b *fakeBody) SetMaxAngularVelocity(max float64) { b.maxAngVel = max }

type fakeJoint struct {
	target physics.JointTarget
	drive  physics.Drive
}

func (j *fakeJoint) SetTarget(t physics.JointTarget) { j.target = t }
func (j *fakeJoint) SetDrive(d physics.Drive)        { j.drive = d }

type fakeTarget struct {
	pos r3.Vec
}

func (t *fakeTarget) Position() r3.Vec     { return t.pos }
func (t *fakeTarget) SetPosition(p r3.Vec) { t.pos = p }

// fakeWorld is a scripted physics.World. Each Step runs the next script
// entry, if any, which may move bodies and report contacts.
type fakeWorld struct {
	bodies   map[string]*fakeBody
	joints   map[string]*fakeJoint
	target   *fakeTarget
	listener physics.ContactListener

	script []func(w *fakeWorld)
	steps  int
}

// Starting offsets of each segment from the origin of the body
var fakeOffsets = [body.NumSegments]r3.Vec{
	body.Pelvis:   {Y: 1.0},
	body.Chest:    {Y: 1.3},
	body.Head:     {Y: 1.6},
	body.ArmL:     {X: 0.2, Y: 1.3},
	body.ForearmL: {X: 0.2, Y: 1.0},
	body.ArmR:     {X: -0.2, Y: 1.3},
	body.ForearmR: {X: -0.2, Y: 1.0},
	body.ThighL:   {X: 0.1, Y: 0.7},
	body.ShinL:    {X: 0.1, Y: 0.25},
	body.ThighR:   {X: -0.1, Y: 0.7},
	body.ShinR:    {X: -0.1, Y: 0.25},
}

// newFakeWorld returns a world whose root stands 10 units from the
// target along the forward axis
func newFakeWorld() *fakeWorld {
	w := &fakeWorld{
		bodies: make(map[string]*fakeBody),
		joints: make(map[string]*fakeJoint),
		target: &fakeTarget{pos: r3.Vec{Y: 1.0, Z: 10.0}},
	}
	for _, s := range body.Segments() {
		w.bodies[s.String()] = &fakeBody{
			pose: physics.Pose{
				Position: fakeOffsets[s],
				Rotation: spatialutils.Identity,
			},
		}
		if !s.IsRoot() {
			w.joints[s.String()] = &fakeJoint{}
		}
	}
	return w
}

func (w *fakeWorld) Bind(name string) (physics.RigidBody, physics.Joint, error) {
	b, ok := w.bodies[name]
	if !ok {
		return nil, nil, physics.ErrNoSuchBody
	}
	if j, ok := w.joints[name]; ok {
		return b, j, nil
	}
	return b, nil, nil
}

func (w *fakeWorld) Target() physics.Target                      { return w.target }
func (w *fakeWorld) SetContactListener(l physics.ContactListener) { w.listener = l }
func (w *fakeWorld) Dt() float64                                  { return 0.02 }

func (w *fakeWorld) Step() error {
	if w.steps < len(w.script) {
		w.script[w.steps](w)
	}
	w.steps++
	return nil
}

func (w *fakeWorld) body(s body.Segment) *fakeBody {
	return w.bodies[s.String()]
}

// moveRoot places the root at z along the forward axis
func moveRoot(z float64) func(*fakeWorld) {
	return func(w *fakeWorld) {
		w.body(body.Pelvis).pose.Position = r3.Vec{Y: 1.0, Z: z}
	}
}

func newTestHumanoid(t *testing.T, w *fakeWorld, c Config,
	tc TaskConfig, opts ...Option) *Humanoid {
	t.Helper()

	task, err := NewWalk(tc, 1)
	require.NoError(t, err)

	h, _, err := New(w, task, c, 1, opts...)
	require.NoError(t, err)
	return h
}

func defaultTaskConfig() TaskConfig {
	return TaskConfig{
		RewardMode: Distance,
		GoalReward: DefaultGoalReward,
	}
}

func zeroAction() []float64 {
	return make([]float64, ActionLength)
}
