package body

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/gowalker/physics"
	"github.com/samuelfneumann/gowalker/sensor"
	"github.com/samuelfneumann/gowalker/utils/spatialutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type testBody struct {
	pose      physics.Pose
	vel       r3.Vec
	angVel    r3.Vec
	maxAngVel float64
}

func (b *testBody) Pose() physics.Pose                { return b.pose }
func (b *testBody) LocalRotation() r3.Rotation        { return b.pose.Rotation }
func (b *testBody) Velocity() r3.Vec                  { return b.vel }
func (b *testBody) AngularVelocity() r3.Vec           { return b.angVel }
func (b *testBody) SetPose(p physics.Pose)            { b.pose = p }
func (b *testBody) SetVelocity(v r3.Vec)              { b.vel = v }
func (b *testBody) SetAngularVelocity(w r3.Vec)       { b.angVel = w }
func (b *testBody) SetMaxAngularVelocity(max float64) { b.maxAngVel = max }

type testJoint struct {
	target physics.JointTarget
	drive  physics.Drive
}

func (j *testJoint) SetTarget(t physics.JointTarget) { j.target = t }
func (j *testJoint) SetDrive(d physics.Drive)        { j.drive = d }

var testDrive = physics.Drive{
	PositionSpring: 40000,
	PositionDamper: 5000,
	MaximumForce:   20000,
}

func TestTargetRotationRoundTrip(t *testing.T) {
	limits := []JointLimits{
		DefaultLimits(Chest),
		DefaultLimits(ThighL),
		DefaultLimits(ShinR),
		DefaultLimits(ForearmL),
		{LowX: -10, HighX: 80, Y: 5, Z: 45},
	}
	controls := []float64{-1, -0.75, -0.2, 0, 0.33, 0.9, 1}

	for _, l := range limits {
		for _, a := range controls {
			for _, b := range controls {
				euler, normalized := TargetRotation(l, a, b, a)

				assert.True(t, l.XRange().Min <= euler.X && euler.X <= l.XRange().Max)
				assert.InDelta(t, (a+1)/2, normalized.X, 1e-12)

				if l.Y > 0 {
					assert.InDelta(t, (b+1)/2, normalized.Y, 1e-12)
				} else {
					assert.Equal(t, 0.0, normalized.Y)
					assert.Equal(t, 0.0, euler.Y)
				}
				if l.Z == 0 {
					assert.Equal(t, 0.0, normalized.Z)
				}
			}
		}
	}
}

func TestTargetRotationExtremes(t *testing.T) {
	l := DefaultLimits(ArmL)

	euler, _ := TargetRotation(l, -1, -1, -1)
	assert.Equal(t, r3.Vec{X: -90, Y: -60, Z: -60}, euler)

	euler, _ = TargetRotation(l, 1, 1, 1)
	assert.Equal(t, r3.Vec{X: 90, Y: 60, Z: 60}, euler)

	euler, _ = TargetRotation(l, 0, 0, 0)
	assert.Equal(t, r3.Vec{}, euler)
}

func TestStrength(t *testing.T) {
	assert.Equal(t, 0.0, Strength(20000, -1))
	assert.Equal(t, 10000.0, Strength(20000, 0))
	assert.Equal(t, 20000.0, Strength(20000, 1))

	prev := Strength(20000, -1)
	for s := -0.9; s <= 1.0; s += 0.1 {
		current := Strength(20000, s)
		assert.Greater(t, current, prev)
		assert.True(t, current >= 0 && current <= 20000)
		prev = current
	}
}

func TestLimitsValidate(t *testing.T) {
	for _, s := range Segments() {
		assert.NoError(t, DefaultLimits(s).Validate(), s.String())
	}
	assert.Error(t, JointLimits{LowX: 10, HighX: -10}.Validate())
	assert.Error(t, JointLimits{Y: -1}.Validate())
}

func TestSegmentNames(t *testing.T) {
	assert.Equal(t, 11, NumSegments)
	for _, s := range Segments() {
		parsed, err := ParseSegment(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseSegment("tail")
	assert.True(t, errors.Is(err, ErrInvalidSegment))
	assert.True(t, Pelvis.IsRoot())
	assert.False(t, Segment(NumSegments).Valid())
}

func TestSetUpErrors(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)

	err := c.SetUp(Chest, nil, &testJoint{}, DefaultLimits(Chest), sensor.Set{})
	assert.True(t, errors.Is(err, ErrMissingBody))

	err = c.SetUp(Chest, &testBody{}, nil, DefaultLimits(Chest), sensor.Set{})
	assert.True(t, errors.Is(err, ErrMissingJoint))

	err = c.SetUp(Segment(42), &testBody{}, &testJoint{}, JointLimits{},
		sensor.Set{})
	assert.True(t, errors.Is(err, ErrInvalidSegment))

	require.NoError(t, c.SetUp(Pelvis, &testBody{}, nil, JointLimits{},
		sensor.Set{}))
	err = c.SetUp(Pelvis, &testBody{}, nil, JointLimits{}, sensor.Set{})
	assert.True(t, errors.Is(err, ErrDuplicateSegment))

	err = c.SetUp(Chest, &testBody{}, &testJoint{},
		JointLimits{LowX: 1, HighX: -1}, sensor.Set{})
	assert.Error(t, err)

	assert.Equal(t, 1, c.Len())
}

func TestSetUp(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)
	rb := &testBody{pose: physics.Pose{Position: r3.Vec{Y: 1.3}}}
	j := &testJoint{}

	require.NoError(t, c.SetUp(Chest, rb, j, DefaultLimits(Chest), sensor.Set{}))

	bp := c.Part(Chest)
	require.NotNil(t, bp)
	assert.Equal(t, 0, c.Index(Chest))
	assert.Equal(t, -1, c.Index(Head))
	assert.Nil(t, c.Part(Head))

	assert.Equal(t, DefaultMaxAngularVelocity, rb.maxAngVel)
	assert.Equal(t, testDrive, j.drive)
	assert.Equal(t, rb.pose, bp.StartingPose())
	assert.NotNil(t, bp.Sensors().Ground)
	assert.NotNil(t, bp.Sensors().Height)
	assert.Nil(t, bp.Sensors().Target)
}

func TestActuation(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)
	j := &testJoint{}
	require.NoError(t, c.SetUp(ShinL, &testBody{}, j, DefaultLimits(ShinL),
		sensor.Set{}))
	bp := c.Part(ShinL)

	bp.SetJointTargetRotation(1, 0, 0)
	assert.Equal(t, 120.0, bp.DriveState().TargetEuler.X)
	assert.Equal(t, j.target.Rotation, bp.DriveState().TargetRotation)
	assert.Equal(t, j.target.Euler, bp.DriveState().TargetEuler)

	bp.SetJointStrength(0.5)
	assert.Equal(t, 15000.0, bp.DriveState().Strength)
	assert.Equal(t, 15000.0, j.drive.MaximumForce)
	assert.Equal(t, testDrive.PositionSpring, j.drive.PositionSpring)
	assert.Equal(t, testDrive.PositionDamper, j.drive.PositionDamper)

	require.NoError(t, c.SetUp(Pelvis, &testBody{}, nil, JointLimits{},
		sensor.Set{}))
	assert.Panics(t, func() { c.Part(Pelvis).SetJointStrength(0) })
	assert.Panics(t, func() { c.Part(Pelvis).SetJointTargetRotation(0, 0, 0) })
}

func TestReset(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)
	start := physics.Pose{Position: r3.Vec{Y: 1}, Rotation: r3.Rotation{Real: 1}}
	rb := &testBody{pose: start}
	require.NoError(t, c.SetUp(Pelvis, rb, nil, JointLimits{}, sensor.Set{}))

	rb.pose = physics.Pose{Position: r3.Vec{X: 3, Y: 0.2}}
	rb.vel = r3.Vec{X: 1, Y: 2}
	rb.angVel = r3.Vec{Z: 5}

	sensors := c.Part(Pelvis).Sensors()
	sensors.Ground.Touching = true
	sensors.Height.InRange = false

	for i := 0; i < 2; i++ {
		c.Reset()

		assert.Equal(t, start, rb.pose)
		assert.Equal(t, r3.Vec{}, rb.vel)
		assert.Equal(t, r3.Vec{}, rb.angVel)
		assert.False(t, sensors.TouchingGround())
		assert.True(t, sensors.InRange())
	}
}

func TestResetRestoresDrive(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)
	j := &testJoint{}
	require.NoError(t, c.SetUp(ThighL, &testBody{}, j, DefaultLimits(ThighL),
		sensor.Set{}))
	bp := c.Part(ThighL)
	initial := bp.DriveState()

	bp.SetJointTargetRotation(1, -1, 0)
	bp.SetJointStrength(-1)
	require.Equal(t, 0.0, j.drive.MaximumForce)

	c.Reset()
	assert.Equal(t, initial, bp.DriveState())
	assert.Equal(t, testDrive.MaximumForce, bp.DriveState().Strength)
	assert.Equal(t, r3.Vec{}, bp.DriveState().TargetEuler)
	assert.InDelta(t, 0.75, bp.DriveState().Normalized.X, 1e-12)
	assert.InDelta(t, 0.5, bp.DriveState().Normalized.Y, 1e-12)
	assert.Equal(t, testDrive, j.drive)
	assert.Equal(t, physics.JointTarget{Rotation: spatialutils.Identity},
		j.target)
}

func TestAverageVelocity(t *testing.T) {
	c := NewController(testDrive, DefaultMaxAngularVelocity)
	assert.Equal(t, r3.Vec{}, c.AverageVelocity())

	require.NoError(t, c.SetUp(Pelvis, &testBody{vel: r3.Vec{X: 1}}, nil,
		JointLimits{}, sensor.Set{}))
	require.NoError(t, c.SetUp(Chest, &testBody{vel: r3.Vec{X: 3}},
		&testJoint{}, DefaultLimits(Chest), sensor.Set{}))

	want := r3.Vec{X: 2}
	if diff := cmp.Diff(want, c.AverageVelocity(),
		cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("unexpected average velocity (-want +got):\n%s", diff)
	}
}
