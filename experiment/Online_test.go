package experiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent/qlearning"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const corridor = "2 0 1 0\n0 0 1 3\n1 0 0 0\n"

func newExperiment(t *testing.T, maxEpisodes, maxSteps, cutoff int,
	c ...checkpointer.Checkpointer) (*Online, *tracker.Return) {
	t.Helper()
	g, err := maze.LoadGrid(strings.NewReader(corridor))
	require.NoError(t, err)
	m, _, err := maze.New(g, maze.NewSolve(cutoff),
		maze.NewUniformStarter(g, rand.NewSource(1)))
	require.NoError(t, err)

	a, err := qlearning.Default(qlearning.Tabular).CreateAgent(m, 1)
	require.NoError(t, err)

	returns := tracker.NewReturn("")
	logger, _ := test.NewNullLogger()
	o := NewOnline(m, a, maxEpisodes, maxSteps,
		[]tracker.Tracker{returns}, c)
	o.SetLogger(logger)
	return o, returns
}

func TestRunBoundedEpisodes(t *testing.T) {
	o, returns := newExperiment(t, 5, 0, 100)
	require.NoError(t, o.Run(context.Background()))

	assert.Equal(t, 5, o.Episodes())
	assert.Len(t, returns.Data(), 5)
	assert.Greater(t, o.Steps(), 0)
}

func TestRunBoundedSteps(t *testing.T) {
	o, _ := newExperiment(t, 0, 37, 10)
	require.NoError(t, o.Run(context.Background()))
	assert.Equal(t, 37, o.Steps())
}

func TestRunCancelledBeforeStart(t *testing.T) {
	o, _ := newExperiment(t, 0, 0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := o.Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, o.Steps())
}

// cancelAfter cancels a context once it has seen a number of timesteps
type cancelAfter struct {
	steps  int
	seen   int
	cancel context.CancelFunc
}

func (c *cancelAfter) Checkpoint(ts.TimeStep) error {
	c.seen++
	if c.seen == c.steps {
		c.cancel()
	}
	return nil
}

func TestRunStopsBetweenSteps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := &cancelAfter{steps: 25, cancel: cancel}

	// Without a cutoff or limits the run only ends when cancelled
	o, _ := newExperiment(t, 0, 0, 0, stop)
	err := o.Run(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 25, o.Steps())
}

func TestEpisodeLog(t *testing.T) {
	o, _ := newExperiment(t, 1, 0, 3)
	logger, hook := test.NewNullLogger()
	o.SetLogger(logger)

	require.NoError(t, o.Run(context.Background()))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, 1, entry.Data["episode"])
	assert.Equal(t, o.ID().String(), entry.Data["run"])
	assert.True(t, strings.HasPrefix(entry.Message, "episode 1 return"))
}

func TestProgress(t *testing.T) {
	o, _ := newExperiment(t, 3, 0, 5)
	var out strings.Builder
	o.ShowProgress(&out)

	require.NoError(t, o.Run(context.Background()))
	assert.Contains(t, out.String(), "100.00%")
}
