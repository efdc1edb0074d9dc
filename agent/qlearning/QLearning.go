// Package qlearning implements the Q-Learning algorithm with an
// ε-greedy behaviour policy over any agent.ValueFunction
package qlearning

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/policy"
	"github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// QLearning implements the Q-Learning algorithm. The behaviour policy
// and the learner share one ValueFunction.
type QLearning struct {
	*policy.EGreedy
	valueFn agent.ValueFunction

	step     ts.TimeStep
	action   action.Action
	nextStep ts.TimeStep
	pending  bool // whether an observed transition awaits an update

	updates  int
	last     Snapshot
	haveLast bool
	hooks    []func(Snapshot)
}

// New creates a new QLearning agent for env from the Config c
func New(env environment.Environment, c Config,
	seed uint64) (*QLearning, error) {
	vf, err := c.ValueFunction(env, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	q, err := NewWithValueFunction(vf, c.Epsilon, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	step := env.CurrentTimeStep()
	if step.First() {
		if err := q.ObserveFirst(step); err != nil {
			return nil, fmt.Errorf("new: %v", err)
		}
	}

	return q, nil
}

// NewWithValueFunction creates a new QLearning agent which learns vf
// and behaves ε-greedily with respect to it
func NewWithValueFunction(vf agent.ValueFunction, e float64,
	seed uint64) (*QLearning, error) {
	behaviour, err := policy.NewEGreedy(vf, e, rand.NewSource(seed))
	if err != nil {
		return nil, fmt.Errorf("newWithValueFunction: %v", err)
	}

	return &QLearning{EGreedy: behaviour, valueFn: vf}, nil
}

// ObserveFirst observes and records the first episodic timestep
func (q *QLearning) ObserveFirst(t ts.TimeStep) error {
	if !t.First() {
		log.Warnf("observeFirst: should only be called on the first "+
			"timestep (current timestep = %d)", t.Number)
	}
	q.step = ts.TimeStep{}
	q.nextStep = t
	q.pending = false

	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (q *QLearning) Observe(a action.Action, nextStep ts.TimeStep) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("observe: %w", err)
	}

	q.step = q.nextStep
	q.action = a
	q.nextStep = nextStep
	q.pending = true

	return nil
}

// Step updates the value function using the last observed transition
func (q *QLearning) Step() error {
	if !q.pending {
		return fmt.Errorf("step: no transition observed since last update")
	}

	tr := ts.NewTransition(q.step, q.action, q.nextStep)
	if err := q.Learn(tr); err != nil {
		return fmt.Errorf("step: %w", err)
	}
	q.pending = false

	return nil
}

// Learn updates the value function using transition tr and notifies
// all registered observers
func (q *QLearning) Learn(tr ts.Transition) error {
	if err := q.valueFn.Update(tr); err != nil {
		return fmt.Errorf("learn: %w", err)
	}
	q.updates++

	snapshot := Snapshot{
		Update:    q.updates,
		State:     tr.State,
		Action:    tr.Action,
		Reward:    tr.Reward,
		NextState: tr.NextState,
		Terminal:  tr.Terminal,
	}
	for _, a := range action.All() {
		snapshot.Values[a] = q.valueFn.Evaluate(tr.State, a)
	}

	q.last, q.haveLast = snapshot, true
	for _, hook := range q.hooks {
		hook(snapshot)
	}

	return nil
}

// EndEpisode performs cleanup at the end of an episode
func (q *QLearning) EndEpisode() {
	q.pending = false
}

// ValueFunction returns the value function learned by the agent
func (q *QLearning) ValueFunction() agent.ValueFunction {
	return q.valueFn
}

// Updates returns the number of updates performed
func (q *QLearning) Updates() int {
	return q.updates
}

// Register registers fn to be called with a Snapshot after every update
func (q *QLearning) Register(fn func(Snapshot)) {
	if fn == nil {
		panic("register: fn cannot be nil")
	}
	q.hooks = append(q.hooks, fn)
}

// LastSnapshot returns the Snapshot of the most recent update and
// whether any update has occurred
func (q *QLearning) LastSnapshot() (Snapshot, bool) {
	return q.last, q.haveLast
}
