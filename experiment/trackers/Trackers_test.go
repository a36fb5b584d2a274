package trackers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/gowalker/experiment/tracker"
	ts "github.com/samuelfneumann/gowalker/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"
)

// episode returns the timesteps of an episode with the given rewards
// which ends for reason end
func episode(rewards []float64, end ts.EndType) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, 0.99, nil, 0)}
	for i, r := range rewards {
		st := ts.Mid
		if i == len(rewards)-1 {
			st = ts.Last
		}
		step := ts.New(st, r, 0.99, nil, i+1)
		if st == ts.Last {
			step.SetEnd(end)
		}
		steps = append(steps, step)
	}
	return steps
}

func track(t tracker.Tracker, episodes ...[]ts.TimeStep) {
	for _, ep := range episodes {
		for _, step := range ep {
			t.Track(step)
		}
	}
}

func TestReturn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "return.bin")
	r := NewReturn(path)

	track(r,
		episode([]float64{0.5, 0.5, 10}, ts.Goal),
		episode([]float64{-1}, ts.GroundContact),
	)
	assert.Equal(t, []float64{11, -1}, r.Data())

	// An unfinished episode is not saved
	track(r, episode([]float64{1, 1}, ts.Timeout)[:2])
	assert.Len(t, r.Data(), 2)

	require.NoError(t, r.Save())
	data, err := tracker.LoadData[float64](path)
	require.NoError(t, err)
	assert.Equal(t, []float64{11, -1}, data)
}

func TestReturnPanicsOutOfOrder(t *testing.T) {
	r := NewReturn("")
	assert.Panics(t, func() { r.Track(ts.New(ts.Mid, 0, 1, nil, 3)) })
}

func TestEpisodeLength(t *testing.T) {
	path := filepath.Join(t.TempDir(), "length.bin")
	e := NewEpisodeLength(path)

	track(e,
		episode([]float64{0, 0, 0}, ts.Timeout),
		episode([]float64{0}, ts.Goal),
	)
	require.NoError(t, e.Save())

	data, err := tracker.LoadData[int](path)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, data)
}

func TestEndType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "end.bin")
	e := NewEndType(path)

	track(e,
		episode([]float64{0}, ts.Goal),
		episode([]float64{0, 0}, ts.GroundContact),
		episode([]float64{0}, ts.Goal),
	)
	assert.Equal(t, 2, e.Count(ts.Goal))
	assert.Equal(t, 1, e.Count(ts.GroundContact))
	assert.Equal(t, 0, e.Count(ts.Timeout))

	require.NoError(t, e.Save())
	data, err := tracker.LoadData[string](path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Goal", "GroundContact", "Goal"}, data)
}

func TestLoadDataMissing(t *testing.T) {
	_, err := tracker.LoadData[float64](filepath.Join(t.TempDir(), "none"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMovingAverage(t *testing.T) {
	pts := plotter.XYs{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}, {X: 4, Y: 0}}
	avg := movingAverage(pts, 2)

	assert.Equal(t, []float64{2, 3, 5, 3},
		[]float64{avg[0].Y, avg[1].Y, avg[2].Y, avg[3].Y})
}

func TestPlotReturns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "returns.png")
	require.NoError(t, PlotReturns([]float64{1, 2, 3, 2, 5}, 2, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, PlotReturns(nil, 2, path))
	assert.Error(t, PlotReturns([]float64{1}, 0, path))
}
