// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	"github.com/samuelfneumann/gridlearn/action"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() ts.Position
}

// Ender determines when episodes should end. If End returns true, it
// should have modified the argument TimeStep to be a Last step with the
// appropriate EndType.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Model is the pure, read-only view of an environment's dynamics. None
// of its methods modify the environment, so a Model can be used to
// simulate moves without committing them.
type Model interface {
	// Dims returns the number of rows and columns in the environment
	Dims() (rows, cols int)

	// PredictNextState returns the state reached by taking action a in
	// state s
	PredictNextState(s ts.Position, a action.Action) ts.Position

	// Transition returns the next state, reward, and whether the next
	// state is terminal when taking action a in state s
	Transition(s ts.Position, a action.Action) (ts.Position, float64, bool)

	IsWall(row, col int) bool
	IsTarget(row, col int) bool
	InBounds(row, col int) bool

	// Targets returns the positions of all target states
	Targets() []ts.Position
}

// Environment implements a simualted environment, which includes a Task to
// complete
type Environment interface {
	Model

	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes an action in the environment, returning the next
	// TimeStep and whether or not the episode ended
	Step(a action.Action) (ts.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent TimeStep
	CurrentTimeStep() ts.TimeStep
}
