package render

import (
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Text draws a grid as coloured terminal text with the agent at
// position agent. Cells on path are marked with a dot.
func Text(g *maze.Grid, agent ts.Position, path []ts.Position) string {
	onPath := make(map[ts.Position]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	rows, cols := g.Dims()
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := ts.Position{Row: r, Col: c}

			switch {
			case p == agent:
				b.WriteString(aurora.Blue("A ").String())
			case g.At(r, c) == maze.Wall:
				b.WriteString(aurora.White("# ").String())
			case g.At(r, c) == maze.Target:
				b.WriteString(aurora.Yellow("T ").String())
			case g.At(r, c) == maze.Start:
				b.WriteString(aurora.Blue("S ").String())
			case onPath[p]:
				b.WriteString(aurora.Green(". ").String())
			default:
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
