// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/gridlearn/action"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how weights are
// updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(a action.Action, nextObs ts.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(ts.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should share the same ValueFunction so that any
// changes the learner makes are reflected in the actions the Policy
// chooses
type Policy interface {
	SelectAction(t ts.TimeStep) action.Action
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// ValueFunction is an estimate of action values. Tabular and linear
// representations both implement ValueFunction, so that policies and
// learners never depend on how values are represented.
type ValueFunction interface {
	// Evaluate returns the estimated value of taking action a in state s
	Evaluate(s ts.Position, a action.Action) float64

	// BestAction returns the action with the highest value in state s.
	// Ties are broken in favour of the lowest action index.
	BestAction(s ts.Position) action.Action

	// Update performs a temporal difference update using transition t
	Update(t ts.Transition) error
}
