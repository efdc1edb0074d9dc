package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/gridlearn/action"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Snapshot is a read-only record of a single update. Values holds the
// action values at State after the update, indexed by action.
type Snapshot struct {
	Update    int
	State     ts.Position
	Action    action.Action
	Reward    float64
	NextState ts.Position
	Terminal  bool
	Values    [action.Count]float64
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Update %d | State: %v  |  Action: %v  |  "+
		"Reward: %.2f  |  Q: %.3f", s.Update, s.State, s.Action, s.Reward,
		s.Values)
}
