// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/action"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes how an episode ended
type EndType int

const (
	// Nil indicates the episode has not ended
	Nil EndType = iota

	// TerminalStateReached indicates the agent reached a terminal
	// (target) state. Learners should not bootstrap from such a step.
	TerminalStateReached

	// Timeout indicates the episode was cut off at a step limit. The
	// last state is not terminal, so learners should still bootstrap.
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Nil"
	}
}

// Position is a (row, col) cell in a grid. Positions are the
// observations of maze environments.
type Position struct {
	Row, Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

// Move returns the position reached by applying a's delta to p. Move
// does not check bounds or walls.
func (p Position) Move(a action.Action) Position {
	dr, dc := a.Delta()
	return Position{p.Row + dr, p.Col + dc}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Observation Position
	Number      int
	endType     EndType
}

// New constructs a new TimeStep
func New(t StepType, r float64, o Position, n int) TimeStep {
	return TimeStep{StepType: t, Reward: r, Observation: o, Number: n}
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// SetEnd sets the way in which the episode ended
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns how the episode ended, or Nil if it has not ended
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// Terminal returns whether the TimeStep is a last step which ended
// because a terminal state was reached
func (t *TimeStep) Terminal() bool {
	return t.Last() && t.endType == TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  At: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Observation, t.Number)
}

// Transition is a single (state, action, reward, next state) transition
// in an environment. Transitions are consumed immediately by learners.
type Transition struct {
	State     Position
	Action    action.Action
	Reward    float64
	NextState Position
	Terminal  bool
}

// NewTransition constructs a Transition from the TimeStep an action was
// taken in and the TimeStep that followed
func NewTransition(step TimeStep, a action.Action, next TimeStep) Transition {
	return Transition{
		State:     step.Observation,
		Action:    a,
		Reward:    next.Reward,
		NextState: next.Observation,
		Terminal:  next.Terminal(),
	}
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | %v --%v--> %v  |  Reward: %.2f  |  "+
		"Terminal: %v", t.State, t.Action, t.NextState, t.Reward, t.Terminal)
}
