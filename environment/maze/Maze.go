// Package maze implements grid maze environments loaded from text
// sources
package maze

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/action"
	env "github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Maze is a grid maze environment. The agent's position is owned by the
// Maze and only changes through Reset and Step.
type Maze struct {
	*Solve
	grid    *Grid
	starter env.Starter

	position    ts.Position
	currentStep ts.TimeStep
}

// New creates a new Maze on grid g with task t, sampling starting
// positions from s. The Maze starts ready to use, and its first
// TimeStep is returned.
func New(g *Grid, t *Solve, s env.Starter) (*Maze, ts.TimeStep, error) {
	if g == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: grid cannot be nil")
	}
	if t == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: task cannot be nil")
	}
	if s == nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: starter cannot be nil")
	}

	if _, ok := g.Start(); !ok {
		log.Warn("maze has no start cell, defaulting start to (0, 0)")
	}
	if len(g.Targets()) == 0 {
		log.Warn("maze has no target cells, episodes only end at the " +
			"step limit")
	}

	m := &Maze{Solve: t, grid: g, starter: s}
	step, err := m.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	return m, step, nil
}

// Reset resets the maze to a new starting position and returns the
// first TimeStep of the episode
func (m *Maze) Reset() (ts.TimeStep, error) {
	start := m.starter.Start()
	if m.grid.IsWall(start.Row, start.Col) {
		return ts.TimeStep{}, fmt.Errorf("reset: start %v is a wall or out "+
			"of bounds", start)
	}

	m.position = start
	step := ts.New(ts.First, 0, start, 0)
	m.currentStep = step

	return step, nil
}

// Step takes action a from the current position, moving the agent and
// returning the next TimeStep and whether the episode ended
func (m *Maze) Step(a action.Action) (ts.TimeStep, bool, error) {
	if err := a.Validate(); err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	next, reward, terminal := m.Transition(m.position, a)
	m.position = next

	nextStep := ts.New(ts.Mid, reward, next, m.currentStep.Number+1)
	last := m.End(&nextStep, terminal)
	m.currentStep = nextStep

	return nextStep, last, nil
}

// Transition returns the next state, reward, and terminal flag for
// taking action a in state s without modifying the Maze. Moves off the
// grid or into a wall leave the agent in s. Transition panics if a is
// not a valid action.
func (m *Maze) Transition(s ts.Position, a action.Action) (ts.Position,
	float64, bool) {
	candidate := s.Move(a)

	if m.grid.IsWall(candidate.Row, candidate.Col) {
		return s, m.GetReward(m.grid, s, false), false
	}

	reward := m.GetReward(m.grid, candidate, true)
	return candidate, reward, m.grid.IsTarget(candidate.Row, candidate.Col)
}

// PredictNextState returns the state reached by taking action a in
// state s without modifying the Maze
func (m *Maze) PredictNextState(s ts.Position, a action.Action) ts.Position {
	next, _, _ := m.Transition(s, a)
	return next
}

// CurrentTimeStep returns the last TimeStep of the Maze
func (m *Maze) CurrentTimeStep() ts.TimeStep {
	return m.currentStep
}

// Position returns the agent's current position
func (m *Maze) Position() ts.Position {
	return m.position
}

// Grid returns the grid the Maze is played on
func (m *Maze) Grid() *Grid {
	return m.grid
}

// Dims returns the number of rows and columns in the maze
func (m *Maze) Dims() (rows, cols int) {
	return m.grid.Dims()
}

// IsWall returns whether (row, col) is a wall or out of bounds
func (m *Maze) IsWall(row, col int) bool {
	return m.grid.IsWall(row, col)
}

// IsTarget returns whether (row, col) is a target
func (m *Maze) IsTarget(row, col int) bool {
	return m.grid.IsTarget(row, col)
}

// InBounds returns whether (row, col) is within the maze
func (m *Maze) InBounds(row, col int) bool {
	return m.grid.InBounds(row, col)
}

// Targets returns the positions of all targets in the maze
func (m *Maze) Targets() []ts.Position {
	return m.grid.Targets()
}

func (m *Maze) String() string {
	r, c := m.Dims()
	return fmt.Sprintf("Maze | At: %v  |  Targets: %v  |  Bounds: (%d, %d)",
		m.position, m.grid.targets, r, c)
}
