package linear

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// stubFeatures returns fixed feature vectors for each state-action pair
type stubFeatures map[ts.Position][action.Count][]float64

func (s stubFeatures) Len() int { return 3 }

func (s stubFeatures) Features(p ts.Position, a action.Action) *mat.VecDense {
	f, ok := s[p]
	if !ok {
		return mat.NewVecDense(3, nil)
	}
	return mat.NewVecDense(3, append([]float64(nil), f[a]...))
}

var (
	state = ts.Position{Row: 0, Col: 0}
	next  = ts.Position{Row: 0, Col: 1}

	stub = stubFeatures{
		state: {
			action.Right: {1, 0.5, 0},
		},
		next: {
			action.Up:    {1, 1, 1},
			action.Down:  {1, 0, 0},
			action.Left:  {1, 0.5, 1},
			action.Right: {1, 0, 1},
		},
	}
)

func newStubLinear() *Linear {
	l := New(stub, 0.1, 0.9, nil)
	l.weights.SetVec(0, 0.5)
	l.weights.SetVec(1, -1)
	l.weights.SetVec(2, 2)
	return l
}

func TestNewIsZero(t *testing.T) {
	l := New(stub, 0.1, 0.9, nil)
	assert.Equal(t, []float64{0, 0, 0}, l.Raw())
	assert.Equal(t, 0.0, l.Evaluate(next, action.Up))
}

func TestEvaluate(t *testing.T) {
	l := newStubLinear()
	assert.InDelta(t, 0.0, l.Evaluate(state, action.Right), 1e-12)
	assert.InDelta(t, 1.5, l.Evaluate(next, action.Up), 1e-12)
	assert.InDelta(t, 2.5, l.Evaluate(next, action.Right), 1e-12)
	assert.Equal(t, action.Right, l.BestAction(next))
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		reward   float64
		terminal bool
		error    float64
	}{
		// target = -1 + 0.9 * 2.5, Q(s, a) = 0
		{"Bootstrap", -1, false, 1.25},
		{"Terminal", 100, true, 100},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := newStubLinear()
			before := l.Raw()
			f := stub[state][action.Right]

			tr := ts.Transition{
				State:     state,
				Action:    action.Right,
				Reward:    test.reward,
				NextState: next,
				Terminal:  test.terminal,
			}
			require.NoError(t, l.Update(tr))

			after := l.Raw()
			for i := range after {
				want := before[i] + 0.1*test.error*f[i]
				assert.InDelta(t, want, after[i], 1e-12, "weight %d", i)
			}
		})
	}
}

func TestUpdateInvalidAction(t *testing.T) {
	l := newStubLinear()
	before := l.Raw()

	err := l.Update(ts.Transition{Action: action.Action(-1)})
	var invalid *action.InvalidActionError
	assert.True(t, errors.As(err, &invalid))
	assert.Equal(t, before, l.Raw())
}

func TestGobRoundTrip(t *testing.T) {
	l := newStubLinear()

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(l))

	loaded := New(stub, 0.1, 0.9, nil)
	require.NoError(t, gob.NewDecoder(&buf).Decode(loaded))
	assert.Equal(t, l.Raw(), loaded.Raw())
}

// wideStub has a different number of features than stub
type wideStub struct{ stubFeatures }

func (wideStub) Len() int { return 5 }

func TestGobDecodeWrongLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(newStubLinear()))

	loaded := New(wideStub{}, 0.1, 0.9, nil)
	assert.Error(t, gob.NewDecoder(&buf).Decode(loaded))
	assert.Len(t, loaded.Raw(), 5)
}

func newGoalDistance(t *testing.T, src string) *GoalDistance {
	t.Helper()
	g, err := maze.LoadGrid(strings.NewReader(src))
	require.NoError(t, err)
	m, _, err := maze.New(g, maze.NewSolve(0), maze.NewSingleStart(g))
	require.NoError(t, err)
	return NewGoalDistance(m)
}

func TestGoalDistance(t *testing.T) {
	f := newGoalDistance(t, "2 0 1\n0 0 3\n")
	diagonal := math.Sqrt(13)

	tests := []struct {
		name  string
		state ts.Position
		a     action.Action
		want  []float64
	}{
		{"Move", ts.Position{Row: 0, Col: 0}, action.Right,
			[]float64{1, math.Sqrt2 / diagonal, 0}},
		{"IntoWall", ts.Position{Row: 0, Col: 1}, action.Right,
			[]float64{1, math.Sqrt2 / diagonal, 1}},
		{"OffGrid", ts.Position{Row: 0, Col: 0}, action.Up,
			[]float64{1, math.Sqrt(5) / diagonal, 1}},
		{"OntoTarget", ts.Position{Row: 1, Col: 1}, action.Right,
			[]float64{1, 0, 0}},
	}

	assert.Equal(t, 3, f.Len())
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := f.Features(test.state, test.a)
			require.Equal(t, 3, got.Len())
			for i, want := range test.want {
				assert.InDelta(t, want, got.AtVec(i), 1e-12, "feature %d", i)
			}
		})
	}
}

func TestGoalDistanceNoTargets(t *testing.T) {
	f := newGoalDistance(t, "2 0\n0 0\n")
	for _, a := range action.All() {
		assert.Equal(t, 0.0, f.Features(ts.Position{}, a).AtVec(Distance))
	}
}

func TestGoalDistanceNearestTarget(t *testing.T) {
	f := newGoalDistance(t, "3 0 0 0 3\n")
	got := f.Features(ts.Position{Col: 2}, action.Right).AtVec(Distance)
	assert.InDelta(t, 1/math.Hypot(1, 5), got, 1e-12)
}
