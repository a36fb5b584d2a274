package planar

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/gowalker/body"
	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type recorder struct {
	begins map[string]physics.ContactKind
}

func (r *recorder) BeginContact(name string, kind physics.ContactKind) {
	r.begins[name] = kind
}

func (r *recorder) EndContact(string, physics.ContactKind) {}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(DefaultConfig(), DefaultSkeleton())
	require.NoError(t, err)
	return w
}

func TestBind(t *testing.T) {
	w := newTestWorld(t)

	for _, s := range body.Segments() {
		rb, j, err := w.Bind(s.String())
		require.NoError(t, err, s.String())
		assert.NotNil(t, rb, s.String())
		if s.IsRoot() {
			assert.Nil(t, j, "root should not have a joint")
		} else {
			assert.NotNil(t, j, s.String())
		}
	}

	_, _, err := w.Bind("tail")
	assert.True(t, errors.Is(err, physics.ErrNoSuchBody))
}

func TestJointTargetIgnoresYZ(t *testing.T) {
	w := newTestWorld(t)

	for _, y := range []float64{-30, 0, 30} {
		for _, z := range []float64{-20, 0, 20} {
			_, j, err := w.Bind(body.ThighL.String())
			require.NoError(t, err)
			j.SetTarget(physics.JointTarget{
				Euler:    r3.Vec{X: -30, Y: y, Z: z},
				Rotation: spatialutils.Euler(-30, y, z),
			})
			assert.InDelta(t, math.Pi/6, w.joints[body.ThighL.String()].targetAngle,
				1e-12, "y=%v z=%v", y, z)
		}
	}

	_, j, err := w.Bind(body.ShinL.String())
	require.NoError(t, err)
	j.SetTarget(physics.JointTarget{Euler: r3.Vec{X: 120}})
	assert.InDelta(t, -2*math.Pi/3, w.joints[body.ShinL.String()].targetAngle,
		1e-12)
}

func TestNewRejectsOrphan(t *testing.T) {
	skeleton := DefaultSkeleton()[1:]
	_, err := New(DefaultConfig(), skeleton)
	assert.Error(t, err)

	config := DefaultConfig()
	config.FrameSkip = 0
	_, err = New(config, DefaultSkeleton())
	assert.Error(t, err)
}

func TestPlaneEmbedding(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-9)

	for _, angle := range []float64{0, 0.3, -1.2, math.Pi / 2, 3} {
		got := fromRotation(toRotation(angle))
		assert.InDelta(t, angle, got, 1e-9)
	}

	// A positive planar angle tips the forward axis upward
	forward := toRotation(math.Pi / 2).Rotate(r3.Vec{Z: 1})
	if diff := cmp.Diff(r3.Vec{Y: 1}, forward, approx); diff != "" {
		t.Errorf("unexpected forward axis (-want +got):\n%s", diff)
	}
}

func TestPoseRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	rb, _, err := w.Bind(body.Pelvis.String())
	require.NoError(t, err)

	start := rb.Pose()
	assert.InDelta(t, 1.0, start.Position.Y, 1e-9)
	assert.InDelta(t, 0.0, start.Position.X, 1e-9)

	want := physics.Pose{
		Position: r3.Vec{Y: 2, Z: 3},
		Rotation: toRotation(0.5),
	}
	rb.SetPose(want)
	got := rb.Pose()

	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(want.Position, got.Position, approx); diff != "" {
		t.Errorf("unexpected position (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.5, fromRotation(got.Rotation), 1e-9)

	rb.SetVelocity(r3.Vec{Y: 1, Z: 2})
	if diff := cmp.Diff(r3.Vec{Y: 1, Z: 2}, rb.Velocity(), approx); diff != "" {
		t.Errorf("unexpected velocity (-want +got):\n%s", diff)
	}
}

func TestTargetProjectedOntoPlane(t *testing.T) {
	w := newTestWorld(t)
	w.Target().SetPosition(r3.Vec{X: 4, Y: 1, Z: 6})
	assert.Equal(t, r3.Vec{Y: 1, Z: 6}, w.Target().Position())
}

func TestStepReportsGroundContact(t *testing.T) {
	w := newTestWorld(t)
	rec := &recorder{begins: make(map[string]physics.ContactKind)}
	w.SetContactListener(rec)

	for i := 0; i < 120; i++ {
		require.NoError(t, w.Step())
	}

	assert.NotEmpty(t, rec.begins)
	for name, kind := range rec.begins {
		assert.Equal(t, physics.Ground, kind, name)
	}
}

func TestImage(t *testing.T) {
	w := newTestWorld(t)
	img := w.Image()
	assert.Equal(t, ViewportW, img.Bounds().Dx())
	assert.Equal(t, ViewportH, img.Bounds().Dy())
}

func TestDt(t *testing.T) {
	config := DefaultConfig()
	config.FrameSkip = 4
	w, err := New(config, DefaultSkeleton())
	require.NoError(t, err)
	assert.InDelta(t, 4*config.TimeStep, w.Dt(), 1e-12)
}
