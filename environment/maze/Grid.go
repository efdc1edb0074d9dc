package maze

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/matutils"
	"gonum.org/v1/gonum/mat"
)

// Grid is an immutable rectangular matrix of cells. Grids are fixed for
// the lifetime of a run.
type Grid struct {
	cells      []Cell // row-major
	rows, cols int

	start    ts.Position
	hasStart bool
	targets  []ts.Position
	free     []ts.Position
}

// NewGrid creates a grid from a matrix of cells. If no Start cell
// exists, the start position defaults to (0, 0).
func NewGrid(cells [][]Cell) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, &MalformedGridError{Reason: "grid has no cells"}
	}

	rows, cols := len(cells), len(cells[0])
	g := &Grid{
		cells: make([]Cell, 0, rows*cols),
		rows:  rows,
		cols:  cols,
	}

	for i, row := range cells {
		if len(row) != cols {
			return nil, &MalformedGridError{
				Line: i + 1,
				Reason: fmt.Sprintf("row has %d columns, expected %d",
					len(row), cols),
			}
		}

		for j, c := range row {
			switch c {
			case Start:
				// The first start cell in row-major order is used
				if !g.hasStart {
					g.start = ts.Position{Row: i, Col: j}
					g.hasStart = true
				}
			case Target:
				g.targets = append(g.targets, ts.Position{Row: i, Col: j})
			case Empty, Wall:
			default:
				return nil, &MalformedGridError{
					Line:   i + 1,
					Column: j + 1,
					Reason: fmt.Sprintf("invalid cell %v", c),
				}
			}

			if c.Free() {
				g.free = append(g.free, ts.Position{Row: i, Col: j})
			}
			g.cells = append(g.cells, c)
		}
	}

	return g, nil
}

// LoadGrid parses a grid from a whitespace-delimited matrix of cell
// codes, one row per line. Blank lines are ignored. A
// *MalformedGridError is returned if the rows have inconsistent column
// counts or contain codes outside of {0, 1, 2, 3}.
func LoadGrid(r io.Reader) (*Grid, error) {
	var cells [][]Cell
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if len(cells) > 0 && len(fields) != len(cells[0]) {
			return nil, &MalformedGridError{
				Line: line,
				Reason: fmt.Sprintf("row has %d columns, expected %d",
					len(fields), len(cells[0])),
			}
		}

		row := make([]Cell, len(fields))
		for j, field := range fields {
			code, err := strconv.Atoi(field)
			if err != nil {
				return nil, &MalformedGridError{
					Line:   line,
					Column: j + 1,
					Reason: fmt.Sprintf("%q is not an integer", field),
				}
			}

			row[j], err = ParseCell(code)
			if err != nil {
				return nil, &MalformedGridError{
					Line:   line,
					Column: j + 1,
					Reason: err.Error(),
				}
			}
		}
		cells = append(cells, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loadGrid: could not read grid: %w", err)
	}

	return NewGrid(cells)
}

// LoadGridFile loads a grid from the file at path
func LoadGridFile(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loadGridFile: %w", err)
	}
	defer file.Close()

	return LoadGrid(file)
}

// Dims returns the number of rows and columns in the grid
func (g *Grid) Dims() (rows, cols int) {
	return g.rows, g.cols
}

// At returns the cell at (row, col). At panics if the position is out
// of bounds.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("at: (%d, %d) out of bounds (%d, %d)", row, col,
			g.rows, g.cols))
	}
	return g.cells[row*g.cols+col]
}

// InBounds returns whether (row, col) lies within the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsWall returns whether (row, col) is a wall. Positions outside of
// the grid are considered walls.
func (g *Grid) IsWall(row, col int) bool {
	if !g.InBounds(row, col) {
		return true
	}
	return g.At(row, col) == Wall
}

// IsTarget returns whether (row, col) is a target cell
func (g *Grid) IsTarget(row, col int) bool {
	return g.InBounds(row, col) && g.At(row, col) == Target
}

// Start returns the recorded start position and whether a Start cell
// was present in the grid. If there was none, the position is (0, 0).
func (g *Grid) Start() (ts.Position, bool) {
	return g.start, g.hasStart
}

// Targets returns the positions of all target cells in row-major order
func (g *Grid) Targets() []ts.Position {
	targets := make([]ts.Position, len(g.targets))
	copy(targets, g.targets)
	return targets
}

// FreeCells returns the positions of all Empty and Start cells in
// row-major order
func (g *Grid) FreeCells() []ts.Position {
	free := make([]ts.Position, len(g.free))
	copy(free, g.free)
	return free
}

// Matrix returns the grid as a matrix of cell codes
func (g *Grid) Matrix() *mat.Dense {
	data := make([]float64, len(g.cells))
	for i, c := range g.cells {
		data[i] = float64(c)
	}
	return mat.NewDense(g.rows, g.cols, data)
}

func (g *Grid) String() string {
	return matutils.Format(g.Matrix())
}
