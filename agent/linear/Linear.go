// Package linear implements action-value functions that are linear in
// hand-crafted features of state-action pairs
package linear

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/gridlearn/action"
	"github.com/samuelfneumann/gridlearn/agent/valuefn"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/matutils/initializers/weights"
)

// Linear estimates the value of a state-action pair as the dot product
// of a weight vector and the pair's feature vector
type Linear struct {
	weights  *mat.VecDense
	features Featurizer

	learningRate float64
	discount     float64
}

// New returns a new Linear value function over features f. Weights
// are initialized with init, or with zeroes if init is nil.
func New(f Featurizer, learningRate, discount float64,
	init weights.Initializer) *Linear {
	if f == nil {
		panic("new: featurizer cannot be nil")
	}

	w := mat.NewVecDense(f.Len(), nil)
	if init != nil {
		// The matrix shares w's backing data
		init.Initialize(mat.NewDense(1, f.Len(), w.RawVector().Data))
	}

	return &Linear{
		weights:      w,
		features:     f,
		learningRate: learningRate,
		discount:     discount,
	}
}

// Evaluate returns the value of action a in state s
func (l *Linear) Evaluate(s ts.Position, a action.Action) float64 {
	return mat.Dot(l.weights, l.features.Features(s, a))
}

// BestAction returns the action with the largest value in state s
func (l *Linear) BestAction(s ts.Position) action.Action {
	return valuefn.Greedy(l, s)
}

// Update performs the semi-gradient Q-learning update
//
//	w <- w + α * δ * f(s, a)
//
// where δ is the temporal difference error of the transition.
func (l *Linear) Update(tr ts.Transition) error {
	if err := tr.Action.Validate(); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	f := l.features.Features(tr.State, tr.Action)
	tdError := valuefn.TDError(l, tr, l.discount)
	l.weights.AddScaledVec(l.weights, l.learningRate*tdError, f)

	return nil
}

// Featurizer returns the featurizer used by the value function
func (l *Linear) Featurizer() Featurizer {
	return l.features
}

// Raw returns a copy of the weights as a flat slice
func (l *Linear) Raw() []float64 {
	return mat.Col(nil, 0, l.weights)
}

// GobEncode implements the gob.GobEncoder interface
func (l *Linear) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	weightBytes, err := l.weights.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not marshal weights: %v",
			err)
	}

	if err := enc.Encode(weightBytes); err != nil {
		return nil, fmt.Errorf("gobencode: could not encode weights: %v",
			err)
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. Featurizers are
// not serialized, so only weights can be decoded into a Linear created
// by New, and the number of weights must match its featurizer.
func (l *Linear) GobDecode(in []byte) error {
	if l.features == nil {
		return fmt.Errorf("gobdecode: cannot decode without a featurizer")
	}
	dec := gob.NewDecoder(bytes.NewReader(in))

	var weightBytes []byte
	if err := dec.Decode(&weightBytes); err != nil {
		return fmt.Errorf("gobdecode: could not decode weights: %v", err)
	}

	w := &mat.VecDense{}
	if err := w.UnmarshalBinary(weightBytes); err != nil {
		return fmt.Errorf("gobdecode: could not unmarshal weights: %v", err)
	}
	if w.Len() != l.features.Len() {
		return fmt.Errorf("gobdecode: have %d weights but featurizer "+
			"has %d features", w.Len(), l.features.Len())
	}

	l.weights = w
	return nil
}
