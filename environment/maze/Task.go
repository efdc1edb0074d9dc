package maze

import (
	env "github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

const (
	TimeStepReward float64 = -1.0
	WallReward     float64 = -10.0
	TargetReward   float64 = 100.0
)

// Solve is the task of reaching any target cell of a maze. Each move
// costs TimeStepReward, bumping into a wall or the edge of the maze
// costs WallReward and leaves the agent in place, and reaching a target
// gives TargetReward and ends the episode.
type Solve struct {
	stepLimit env.Ender
}

// NewSolve returns a new Solve task. Episodes are cut off after cutoff
// steps, or never if cutoff is 0.
func NewSolve(cutoff int) *Solve {
	return &Solve{stepLimit: env.NewStepLimit(cutoff)}
}

// GetReward returns the reward for a move from state to next. The
// moved argument is false if the move was blocked.
func (s *Solve) GetReward(g *Grid, next ts.Position, moved bool) float64 {
	if !moved {
		return WallReward
	}
	if g.IsTarget(next.Row, next.Col) {
		return TargetReward
	}
	return TimeStepReward
}

// End determines whether the episode ends on t, given whether t's
// observation is a terminal state. End modifies t to be a Last step
// if the episode has ended.
func (s *Solve) End(t *ts.TimeStep, terminal bool) bool {
	if terminal {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
		return true
	}
	return s.stepLimit.End(t)
}
