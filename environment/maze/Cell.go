package maze

import "fmt"

// Cell is the kind of a single cell in a maze grid
type Cell int

const (
	Empty Cell = iota
	Wall
	Start
	Target
)

// ParseCell converts a grid source code into a Cell
func ParseCell(code int) (Cell, error) {
	c := Cell(code)
	switch c {
	case Empty, Wall, Start, Target:
		return c, nil
	}
	return 0, fmt.Errorf("cell code %d not in {0, 1, 2, 3}", code)
}

// Free returns whether an agent may start an episode in the cell
func (c Cell) Free() bool {
	return c == Empty || c == Start
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Start:
		return "Start"
	case Target:
		return "Target"
	default:
		return fmt.Sprintf("Cell(%d)", int(c))
	}
}
