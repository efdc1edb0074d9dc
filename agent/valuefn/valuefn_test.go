package valuefn

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/action"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/stretchr/testify/assert"
)

// stateValues evaluates actions from a fixed table of values per state
type stateValues map[ts.Position][action.Count]float64

func (v stateValues) Evaluate(s ts.Position, a action.Action) float64 {
	return v[s][a]
}

func TestGreedyFirstMaximum(t *testing.T) {
	values := stateValues{
		{Row: 0, Col: 0}: {0, 0, 0, 0},
		{Row: 0, Col: 1}: {1, 3, 3, 2},
		{Row: 1, Col: 0}: {-5, -2, -9, -2},
		{Row: 1, Col: 1}: {-1, -1, -1, 4},
	}

	assert.Equal(t, action.Up, Greedy(values, ts.Position{Row: 0, Col: 0}))
	assert.Equal(t, action.Down, Greedy(values, ts.Position{Row: 0, Col: 1}))
	assert.Equal(t, action.Down, Greedy(values, ts.Position{Row: 1, Col: 0}))
	assert.Equal(t, action.Right, Greedy(values, ts.Position{Row: 1, Col: 1}))
}

func TestTarget(t *testing.T) {
	next := ts.Position{Row: 1, Col: 1}
	values := stateValues{next: {1, 2, 8, 4}}

	tr := ts.Transition{Reward: -1, NextState: next}
	assert.Equal(t, -1+0.5*8, Target(values, tr, 0.5))

	tr.Terminal = true
	assert.Equal(t, -1.0, Target(values, tr, 0.5))
}

func TestTDError(t *testing.T) {
	state, next := ts.Position{}, ts.Position{Row: 0, Col: 1}
	values := stateValues{
		state: {0, 0, 0, 3},
		next:  {2, 0, 0, 0},
	}

	tr := ts.Transition{State: state, Action: action.Right, Reward: -1,
		NextState: next}
	assert.Equal(t, (-1+0.5*2)-3.0, TDError(values, tr, 0.5))
}
