// Package render draws mazes and the action values of agents in them,
// as PNG images and as coloured terminal text
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/agent/valuefn"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// DefaultCellSize is the default width and height of a cell in pixels
const DefaultCellSize = 40

var (
	background   = color.Black
	wallColour   = color.White
	agentColour  = color.RGBA{0, 0, 255, 255}
	startColour  = agentColour
	targetColour = color.RGBA{255, 255, 0, 255}
	gridLine     = color.RGBA{128, 128, 128, 255}
)

// Frame draws a grid with the agent at position agent. If values is
// not nil, the cells neighbouring the agent are shaded by the value of
// the action that moves into them: green for positive values and red
// for negative values, brighter for larger magnitudes relative to the
// largest magnitude over all states and actions.
func Frame(g *maze.Grid, agent ts.Position, values valuefn.Evaluator,
	cellSize int) image.Image {
	if cellSize <= 0 {
		panic(fmt.Sprintf("frame: cell size must be positive, got %d",
			cellSize))
	}

	rows, cols := g.Dims()
	dc := gg.NewContext(cols*cellSize, rows*cellSize)
	dc.SetColor(background)
	dc.Clear()

	size := float64(cellSize)
	fill := func(p ts.Position, c color.Color) {
		dc.DrawRectangle(float64(p.Col)*size, float64(p.Row)*size, size, size)
		dc.SetColor(c)
		dc.Fill()
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			switch g.At(r, c) {
			case maze.Wall:
				fill(ts.Position{Row: r, Col: c}, wallColour)
			case maze.Start:
				fill(ts.Position{Row: r, Col: c}, startColour)
			case maze.Target:
				fill(ts.Position{Row: r, Col: c}, targetColour)
			}
		}
	}

	if values != nil && !g.IsWall(agent.Row, agent.Col) {
		maxAbs := MaxAbs(g, values)
		for _, a := range action.All() {
			neighbour := agent.Move(a)
			if g.IsWall(neighbour.Row, neighbour.Col) ||
				g.IsTarget(neighbour.Row, neighbour.Col) {
				continue
			}

			if c, ok := ValueColour(values.Evaluate(agent, a), maxAbs); ok {
				fill(neighbour, c)
			}
			dc.DrawRectangle(float64(neighbour.Col)*size,
				float64(neighbour.Row)*size, size, size)
			dc.SetColor(gridLine)
			dc.SetLineWidth(1)
			dc.Stroke()
		}
	}

	fill(agent, agentColour)

	return dc.Image()
}

// SavePNG draws a Frame and saves it as a PNG image to path
func SavePNG(path string, g *maze.Grid, agent ts.Position,
	values valuefn.Evaluator, cellSize int) error {
	img := Frame(g, agent, values, cellSize)
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("savePNG: %w", err)
	}
	return nil
}

// MaxAbs returns the largest absolute action value over all cells of
// g that are not walls, or 1 if all values are 0
func MaxAbs(g *maze.Grid, values valuefn.Evaluator) float64 {
	rows, cols := g.Dims()

	max := 0.0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g.IsWall(r, c) {
				continue
			}
			for _, a := range action.All() {
				v := values.Evaluate(ts.Position{Row: r, Col: c}, a)
				max = math.Max(max, math.Abs(v))
			}
		}
	}

	if max == 0 {
		return 1
	}
	return max
}

// ValueColour returns the shade of value relative to the magnitude
// max. Values of 0 have no colour.
func ValueColour(value, max float64) (color.Color, bool) {
	ratio := math.Min(math.Abs(value)/max, 1)
	intensity := uint8(ratio * 255)

	switch {
	case value > 0:
		return color.RGBA{0, intensity, 0, 255}, true
	case value < 0:
		return color.RGBA{intensity, 0, 0, 255}, true
	}
	return nil, false
}
