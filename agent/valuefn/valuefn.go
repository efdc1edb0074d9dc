// Package valuefn implements the greedy action selection and temporal
// difference target shared by all action-value representations
package valuefn

import (
	"github.com/samuelfneumann/gridlearn/action"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Evaluator evaluates actions in states
type Evaluator interface {
	Evaluate(s ts.Position, a action.Action) float64
}

// Values returns the value of each action in state s, indexed by action
func Values(e Evaluator, s ts.Position) *mat.VecDense {
	values := mat.NewVecDense(action.Count, nil)
	for _, a := range action.All() {
		values.SetVec(int(a), e.Evaluate(s, a))
	}
	return values
}

// Greedy returns the action with maximum value in state s. If multiple
// actions have the maximum value, the first is returned.
func Greedy(e Evaluator, s ts.Position) action.Action {
	return action.Action(matutils.MaxVec(Values(e, s)))
}

// Max returns the maximum action value in state s
func Max(e Evaluator, s ts.Position) float64 {
	return mat.Max(Values(e, s))
}

// Target returns the Q-learning update target for transition t:
// the reward if t is terminal, and the reward plus the discounted
// maximum next action value otherwise
func Target(e Evaluator, t ts.Transition, discount float64) float64 {
	if t.Terminal {
		return t.Reward
	}
	return t.Reward + discount*Max(e, t.NextState)
}

// TDError returns the temporal difference error of transition t
func TDError(e Evaluator, t ts.Transition, discount float64) float64 {
	return Target(e, t, discount) - e.Evaluate(t.State, t.Action)
}
