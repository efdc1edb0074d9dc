package main

import (
	"strings"
	"testing"

	"github.com/samuelfneumann/gridlearn/agent/qlearning"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreedyPath(t *testing.T) {
	g, err := maze.LoadGrid(strings.NewReader("2 0 0\n0 0 0\n0 0 3\n"))
	require.NoError(t, err)
	m, _, err := maze.New(g, maze.NewSolve(0), maze.NewSingleStart(g))
	require.NoError(t, err)

	q, err := qlearning.New(m, qlearning.Default(qlearning.Tabular), 1)
	require.NoError(t, err)

	// All values are 0, so Up is always greedy and the agent bumps into
	// the top edge until every cell could have been visited
	path := greedyPath(m, q.ValueFunction(), ts.Position{})
	assert.Len(t, path, 10)
	for _, p := range path {
		assert.Equal(t, ts.Position{}, p)
	}
}

func TestPlaygroundLoads(t *testing.T) {
	g, err := maze.LoadGridFile("playground.txt")
	require.NoError(t, err)

	start, ok := g.Start()
	assert.True(t, ok)
	assert.Equal(t, ts.Position{}, start)
	assert.Len(t, g.Targets(), 1)
}
