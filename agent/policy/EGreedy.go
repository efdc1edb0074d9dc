// Package policy implements ε-greedy policies over action-value
// functions
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/agent"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// EGreedy implements an ε-greedy policy over a ValueFunction. With
// probability ε a uniform random action is selected, otherwise the
// greedy action is selected. In evaluation mode the policy is greedy.
//
// The policy shares its ValueFunction with the learner that updates it,
// so updates are reflected in the actions the policy selects.
type EGreedy struct {
	agent.ValueFunction
	epsilon float64

	explore distuv.Bernoulli
	uniform distuv.Categorical
	eval    bool
}

// NewEGreedy returns a new EGreedy policy with exploration probability
// e over vf, using the random source src
func NewEGreedy(vf agent.ValueFunction, e float64,
	src rand.Source) (*EGreedy, error) {
	if vf == nil {
		panic("newEGreedy: value function cannot be nil")
	}
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: ε must be in [0, 1], got %v", e)
	}

	weights := make([]float64, action.Count)
	for i := range weights {
		weights[i] = 1.0
	}

	return &EGreedy{
		ValueFunction: vf,
		epsilon:       e,
		explore:       distuv.Bernoulli{P: e, Src: src},
		uniform:       distuv.NewCategorical(weights, src),
	}, nil
}

// NewGreedy returns a new greedy policy over vf
func NewGreedy(vf agent.ValueFunction) *EGreedy {
	// Greedy policies never sample, so no source is needed
	p, err := NewEGreedy(vf, 0.0, nil)
	if err != nil {
		panic(fmt.Sprintf("newGreedy: %v", err))
	}
	return p
}

// ChooseAction selects an action in state s
func (e *EGreedy) ChooseAction(s ts.Position) action.Action {
	if !e.eval && e.explore.Rand() == 1.0 {
		return action.Action(e.uniform.Rand())
	}
	return e.BestAction(s)
}

// SelectAction selects an action at the observation of timestep t
func (e *EGreedy) SelectAction(t ts.TimeStep) action.Action {
	return e.ChooseAction(t.Observation)
}

// Epsilon returns the exploration probability of the policy
func (e *EGreedy) Epsilon() float64 {
	return e.epsilon
}

// SetEpsilon sets the exploration probability of the policy
func (e *EGreedy) SetEpsilon(epsilon float64) error {
	if epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("setEpsilon: ε must be in [0, 1], got %v", epsilon)
	}
	e.epsilon = epsilon
	e.explore.P = epsilon
	return nil
}

// Eval sets the policy to evaluation mode, where it acts greedily
func (e *EGreedy) Eval() {
	e.eval = true
}

// Train sets the policy to training mode
func (e *EGreedy) Train() {
	e.eval = false
}

// IsEval returns whether the policy is in evaluation mode
func (e *EGreedy) IsEval() bool {
	return e.eval
}
