package timestep

import (
	"testing"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/stretchr/testify/assert"
)

func TestMove(t *testing.T) {
	p := Position{2, 3}
	assert.Equal(t, Position{1, 3}, p.Move(action.Up))
	assert.Equal(t, Position{3, 3}, p.Move(action.Down))
	assert.Equal(t, Position{2, 2}, p.Move(action.Left))
	assert.Equal(t, Position{2, 4}, p.Move(action.Right))
}

func TestNewTransition(t *testing.T) {
	step := New(Mid, -1, Position{0, 0}, 3)

	t.Run("Terminal", func(t *testing.T) {
		next := New(Last, 100, Position{0, 1}, 4)
		next.SetEnd(TerminalStateReached)

		tr := NewTransition(step, action.Right, next)
		assert.Equal(t, Transition{
			State:     Position{0, 0},
			Action:    action.Right,
			Reward:    100,
			NextState: Position{0, 1},
			Terminal:  true,
		}, tr)
	})

	t.Run("Timeout", func(t *testing.T) {
		next := New(Last, -1, Position{1, 0}, 4)
		next.SetEnd(Timeout)

		tr := NewTransition(step, action.Down, next)
		assert.False(t, tr.Terminal, "timeouts should not be terminal")
	})
}
