package maze

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"gonum.org/v1/gonum/stat/distuv"
)

// UniformStarter samples starting positions uniformly from the Empty
// and Start cells of a grid. If the grid has no such cells, the grid's
// recorded start position is always returned.
type UniformStarter struct {
	free     []ts.Position
	fallback ts.Position
	dist     *distuv.Categorical
}

// NewUniformStarter returns a new UniformStarter over the free cells
// of g which samples using the random source src
func NewUniformStarter(g *Grid, src rand.Source) *UniformStarter {
	free := g.FreeCells()
	fallback, _ := g.Start()

	starter := &UniformStarter{free: free, fallback: fallback}
	if len(free) == 0 {
		return starter
	}

	weights := make([]float64, len(free))
	for i := range weights {
		weights[i] = 1.0
	}
	dist := distuv.NewCategorical(weights, src)
	starter.dist = &dist

	return starter
}

// Start returns a starting position
func (u *UniformStarter) Start() ts.Position {
	if u.dist == nil {
		return u.fallback
	}
	return u.free[int(u.dist.Rand())]
}

// SingleStart always starts episodes in the same position
type SingleStart struct {
	position ts.Position
}

// NewSingleStart returns a Starter that always starts in the grid's
// recorded start position
func NewSingleStart(g *Grid) environment.Starter {
	start, _ := g.Start()
	return SingleStart{start}
}

// Start returns the starting position
func (s SingleStart) Start() ts.Position {
	return s.position
}
