// Package tabular implements a tabular action-value function over grid
// positions
package tabular

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

// Table is a dense table of action values with one row per grid cell
// and one column per action. Row i of the table holds the values of
// cell (i / cols, i % cols).
type Table struct {
	table      *mat.Dense
	rows, cols int

	learningRate float64
	discount     float64
}

// NewTable returns a new Table for a grid of rows x cols cells. The
// table is initialized with init, or with zeroes if init is nil.
func NewTable(rows, cols int, learningRate, discount float64,
	init weights.Initializer) *Table {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("newTable: grid dimensions must be positive, "+
			"got (%d, %d)", rows, cols))
	}

	table := mat.NewDense(rows*cols, action.Count, nil)
	if init != nil {
		init.Initialize(table)
	}

	return &Table{
		table:        table,
		rows:         rows,
		cols:         cols,
		learningRate: learningRate,
		discount:     discount,
	}
}

func (t *Table) index(s ts.Position) (int, error) {
	if s.Row < 0 || s.Row >= t.rows || s.Col < 0 || s.Col >= t.cols {
		return 0, fmt.Errorf("state %v outside of (%d, %d) table", s,
			t.rows, t.cols)
	}
	return s.Row*t.cols + s.Col, nil
}

// Evaluate returns the value of action a in state s. Evaluate panics if
// s is outside the table or a is invalid.
func (t *Table) Evaluate(s ts.Position, a action.Action) float64 {
	i, err := t.index(s)
	if err != nil {
		panic(fmt.Sprintf("evaluate: %v", err))
	}
	if err := a.Validate(); err != nil {
		panic(fmt.Sprintf("evaluate: %v", err))
	}
	return t.table.At(i, int(a))
}

// BestAction returns the action with the largest value in state s
func (t *Table) BestAction(s ts.Position) action.Action {
	return valuefn.Greedy(t, s)
}

// Update performs the Q-learning update
//
//	Q(s, a) <- Q(s, a) + α * (target - Q(s, a))
//
// where target is the reward on terminal transitions and the reward plus
// the discounted maximum value of the next state otherwise.
func (t *Table) Update(tr ts.Transition) error {
	if err := tr.Action.Validate(); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	i, err := t.index(tr.State)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}
	if _, err := t.index(tr.NextState); err != nil {
		return fmt.Errorf("update: %v", err)
	}

	target := valuefn.Target(t, tr, t.discount)
	old := t.table.At(i, int(tr.Action))
	t.table.Set(i, int(tr.Action), old+t.learningRate*(target-old))

	return nil
}

// Dims returns the dimensions of the grid the table covers
func (t *Table) Dims() (rows, cols int) {
	return t.rows, t.cols
}

// Raw returns a copy of the table as a flat slice keyed by
// (row, col, action) in row-major order
func (t *Table) Raw() []float64 {
	raw := make([]float64, t.rows*t.cols*action.Count)
	for i := 0; i < t.rows*t.cols; i++ {
		mat.Row(raw[i*action.Count:(i+1)*action.Count], i, t.table)
	}
	return raw
}

// Matrix returns a read-only view of the underlying table
func (t *Table) Matrix() mat.Matrix {
	return t.table
}

// GobEncode implements the gob.GobEncoder interface
func (t *Table) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	tableBytes, err := t.table.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobencode: could not marshal table: %v", err)
	}

	for _, v := range []interface{}{tableBytes, t.rows, t.cols,
		t.learningRate, t.discount} {
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("gobencode: %v", err)
		}
	}

	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. Decoding into a
// Table created by NewTable fails without modifying it if the encoded
// table covers a grid of different dimensions.
func (t *Table) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var tableBytes []byte
	if err := dec.Decode(&tableBytes); err != nil {
		return fmt.Errorf("gobdecode: could not decode table: %v", err)
	}

	var rows, cols int
	var learningRate, discount float64
	for _, v := range []interface{}{&rows, &cols, &learningRate,
		&discount} {
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("gobdecode: %v", err)
		}
	}

	table := &mat.Dense{}
	if err := table.UnmarshalBinary(tableBytes); err != nil {
		return fmt.Errorf("gobdecode: could not unmarshal table: %v", err)
	}

	r, c := table.Dims()
	if r != rows*cols || c != action.Count {
		return fmt.Errorf("gobdecode: table shape (%d, %d) does not "+
			"match grid (%d, %d)", r, c, rows, cols)
	}

	// A configured Table keeps its own hyperparameters and only takes the
	// saved values
	if t.table != nil {
		if rows != t.rows || cols != t.cols {
			return fmt.Errorf("gobdecode: saved table covers a (%d, %d) "+
				"grid but want (%d, %d)", rows, cols, t.rows, t.cols)
		}
		t.table = table
		return nil
	}

	t.table = table
	t.rows, t.cols = rows, cols
	t.learningRate, t.discount = learningRate, discount

	return nil
}
