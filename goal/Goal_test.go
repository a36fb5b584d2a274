package goal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"
)

type target struct {
	pos r3.Vec
}

func (t *target) Position() r3.Vec     { return t.pos }
func (t *target) SetPosition(p r3.Vec) { t.pos = p }

func horizontalDistance(a, b r3.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

func TestNewKeepsPosition(t *testing.T) {
	start := r3.Vec{X: 1, Y: 2, Z: 3}
	tgt := &target{pos: start}

	g, err := New(tgt, Config{SpawnRadius: 4}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, start, g.Position())
	assert.Equal(t, start, g.StartingPosition())
}

func TestTouch(t *testing.T) {
	start := r3.Vec{Y: 1, Z: 10}
	g, err := New(&target{pos: start}, Config{}, 1, nil)
	require.NoError(t, err)
	assert.True(t, g.Touch(), "touch should end the episode")
	assert.Equal(t, start, g.Position())

	tgt := &target{pos: start}
	g, err = New(tgt, Config{SpawnRadius: 3, RespawnIfTouched: true}, 7, nil)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		assert.False(t, g.Touch())
		assert.Equal(t, start.Y, tgt.pos.Y)
		assert.LessOrEqual(t, horizontalDistance(start, tgt.pos), 3.0)
	}
}

func TestFallProtection(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	start := r3.Vec{Y: 1, Z: 10}
	tgt := &target{pos: start}

	g, err := New(tgt, Config{
		RespawnIfFallsOffPlatform: true,
		FallDistance:              DefaultFallDistance,
	}, 1, zap.New(core))
	require.NoError(t, err)

	tgt.pos = r3.Vec{Y: -3, Z: 10}
	g.Update()
	assert.Equal(t, r3.Vec{Y: -3, Z: 10}, tgt.pos, "not fallen far enough")

	tgt.pos = r3.Vec{Y: -4.5, Z: 12}
	g.Update()
	assert.Equal(t, start, tgt.pos)
	assert.Equal(t, 1, logs.Len())
}

func TestValidate(t *testing.T) {
	assert.Error(t, Config{SpawnRadius: -1}.Validate())
	assert.Error(t, Config{RespawnIfFallsOffPlatform: true}.Validate())
	assert.NoError(t, Config{}.Validate())

	_, err := New(nil, Config{}, 1, nil)
	assert.Error(t, err)
}
