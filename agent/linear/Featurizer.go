package linear

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/environment"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Featurizer computes feature vectors of state-action pairs
type Featurizer interface {
	// Len returns the number of features in each feature vector
	Len() int

	// Features returns a new feature vector for taking action a in
	// state s
	Features(s ts.Position, a action.Action) *mat.VecDense
}

// Indices of the GoalDistance features
const (
	Bias = iota
	Distance
	Blocked

	GoalDistanceFeatures
)

// GoalDistance computes three features of a state-action pair from a
// pure environment Model, so that no move is ever committed:
//
//	Bias:     always 1
//	Distance: Euclidean distance from the predicted next state to the
//	          nearest target, divided by the length of the grid's
//	          diagonal, or 0 if there are no targets
//	Blocked:  1 if the intended move leaves the grid or enters a wall,
//	          0 otherwise
type GoalDistance struct {
	model    environment.Model
	targets  [][]float64
	diagonal float64
}

// NewGoalDistance returns a new GoalDistance featurizer for model
func NewGoalDistance(model environment.Model) *GoalDistance {
	if model == nil {
		panic("newGoalDistance: model cannot be nil")
	}

	rows, cols := model.Dims()
	targets := model.Targets()
	if len(targets) == 0 {
		log.Warn("no targets to measure distance to, the distance " +
			"feature will always be 0")
	}

	points := make([][]float64, len(targets))
	for i, t := range targets {
		points[i] = []float64{float64(t.Row), float64(t.Col)}
	}

	return &GoalDistance{
		model:    model,
		targets:  points,
		diagonal: math.Hypot(float64(rows), float64(cols)),
	}
}

// Len returns the number of features
func (g *GoalDistance) Len() int {
	return GoalDistanceFeatures
}

// Features returns the feature vector for taking action a in state s
func (g *GoalDistance) Features(s ts.Position, a action.Action) *mat.VecDense {
	f := mat.NewVecDense(GoalDistanceFeatures, nil)
	f.SetVec(Bias, 1.0)

	next := g.model.PredictNextState(s, a)
	f.SetVec(Distance, g.distance(next))

	intended := s.Move(a)
	if g.model.IsWall(intended.Row, intended.Col) {
		f.SetVec(Blocked, 1.0)
	}

	return f
}

// distance returns the normalized distance from p to its nearest target
func (g *GoalDistance) distance(p ts.Position) float64 {
	if len(g.targets) == 0 {
		return 0
	}

	point := []float64{float64(p.Row), float64(p.Col)}
	min := math.Inf(1)
	for _, t := range g.targets {
		min = math.Min(min, floats.Distance(point, t, 2))
	}
	return min / g.diagonal
}
