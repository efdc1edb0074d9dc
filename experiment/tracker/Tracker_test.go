package tracker

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/agent/qlearning"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the timesteps of an episode with the given rewards
func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, ts.Position{}, 0)}
	for i, r := range rewards {
		step := ts.New(ts.Mid, r, ts.Position{}, i+1)
		if i == len(rewards)-1 {
			step.StepType = ts.Last
			step.SetEnd(ts.TerminalStateReached)
		}
		steps = append(steps, step)
	}
	return steps
}

func TestReturn(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "returns.bin"))

	for _, step := range episode(-1, -1, 100) {
		r.Track(step)
	}
	for _, step := range episode(-10, -1, -1, 100) {
		r.Track(step)
	}

	// An unfinished episode is not recorded
	for _, step := range episode(-1, -1, 100)[:2] {
		r.Track(step)
	}
	for _, step := range episode(100) {
		r.Track(step)
	}

	assert.Equal(t, []float64{98, 88, 100}, r.Data())
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, ts.Position{}, 0))
	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, -1, ts.Position{}, 3))
	})
}

func TestEpisodeLength(t *testing.T) {
	e := NewEpisodeLength("")
	for _, step := range episode(-1, -1, 100) {
		e.Track(step)
	}
	for _, step := range episode(100) {
		e.Track(step)
	}
	assert.Equal(t, []float64{3, 1}, e.Data())
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	r := NewReturn(filepath.Join(dir, "returns.bin"))
	e := NewEpisodeLength(filepath.Join(dir, "lengths.bin"))

	for _, step := range episode(-1, 100) {
		r.Track(step)
		e.Track(step)
	}

	require.NoError(t, r.Save())
	require.NoError(t, e.Save())

	returns, err := LoadData(filepath.Join(dir, "returns.bin"))
	require.NoError(t, err)
	assert.Equal(t, []float64{99}, returns)

	lengths, err := LoadData(filepath.Join(dir, "lengths.bin"))
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, lengths)

	_, err = LoadData(filepath.Join(dir, "missing.bin"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveToMissingDirectory(t *testing.T) {
	r := NewReturn(filepath.Join(t.TempDir(), "missing", "returns.bin"))
	assert.Error(t, r.Save())
}

func TestRollingMean(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		window int
		want   []float64
	}{
		{"Window", []float64{1, 2, 3, 4, 5}, 2, []float64{1.5, 2.5, 3.5, 4.5}},
		{"Shrinks", []float64{1, 2, 3}, 100, []float64{2}},
		{"Single", []float64{1, 2, 3}, 1, []float64{1, 2, 3}},
		{"Empty", nil, 10, nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, RollingMean(test.data, test.window))
		})
	}

	assert.Panics(t, func() { RollingMean([]float64{1}, 0) })
}

func TestPlot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Plot(&buf, "Maze returns", []float64{-20, -5, 90, 95},
		DefaultWindow))

	html := buf.String()
	assert.True(t, strings.Contains(html, "Maze returns"))
	assert.True(t, strings.Contains(html, "Rolling mean (4)"))
}

func TestPlotFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "plots", "returns.html")
	require.NoError(t, PlotFile(filename, "Returns", []float64{1, 2}, 1))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestStepLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)

	StepLogger(logger)(qlearning.Snapshot{
		Update: 3,
		State:  ts.Position{Row: 1, Col: 2},
		Action: action.Down,
		Reward: -1,
	})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.DebugLevel, entry.Level)
	assert.Equal(t, 3, entry.Data["update"])
	assert.Equal(t, "(1, 2)", entry.Data["state"])
	assert.Equal(t, action.Down.String(), entry.Data["action"])
}
