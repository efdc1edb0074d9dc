// Package action implements the discrete actions an agent can take in a
// grid maze
package action

import "fmt"

// Action is one of the four moves available to an agent in a maze.
// Actions are enumerated (0, 1, 2, 3) so that they can be used directly
// as indices into action-value storage.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// Count is the number of actions available in every state
const Count int = 4

// row and column deltas, indexed by Action
var deltas = [Count][2]int{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// All returns every action in enumeration order
func All() [Count]Action {
	return [Count]Action{Up, Down, Left, Right}
}

// InvalidActionError is returned when an action index outside of the
// enumerated set of actions is used
type InvalidActionError struct {
	Index int
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %d: actions must be in [0, %d)",
		e.Index, Count)
}

// FromIndex converts a raw action index into an Action, returning an
// *InvalidActionError if the index is not one of the enumerated actions
func FromIndex(i int) (Action, error) {
	a := Action(i)
	if err := a.Validate(); err != nil {
		return 0, err
	}
	return a, nil
}

// Validate returns an *InvalidActionError if a is not one of the
// enumerated actions
func (a Action) Validate() error {
	if a < Up || int(a) >= Count {
		return &InvalidActionError{int(a)}
	}
	return nil
}

// Delta returns the (row, col) offset of the action. Delta panics if
// the action is invalid.
func (a Action) Delta() (int, int) {
	if err := a.Validate(); err != nil {
		panic(fmt.Sprintf("delta: %v", err))
	}
	d := deltas[a]
	return d[0], d[1]
}

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}
