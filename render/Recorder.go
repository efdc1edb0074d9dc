package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/gridlearn/agent/valuefn"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Recorder saves a PNG frame of every timestep of every n-th episode
// to a directory. Recorder implements tracker.Tracker.
type Recorder struct {
	grid     *maze.Grid
	values   valuefn.Evaluator
	dir      string
	every    int
	cellSize int

	episode int
	err     error
}

// NewRecorder returns a new Recorder which draws frames of grid g and
// the action values of values every n episodes into dir
func NewRecorder(g *maze.Grid, values valuefn.Evaluator, dir string,
	n int) *Recorder {
	if n <= 0 {
		panic("newRecorder: n must be positive")
	}
	return &Recorder{
		grid:     g,
		values:   values,
		dir:      dir,
		every:    n,
		cellSize: DefaultCellSize,
		episode:  0,
	}
}

// Track saves a frame of t if t is part of a recorded episode. Episodes
// are counted from 1.
func (r *Recorder) Track(t ts.TimeStep) {
	if t.First() {
		r.episode++
	}
	if r.err != nil || r.episode%r.every != 0 {
		return
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		r.err = err
		return
	}

	name := fmt.Sprintf("episode-%d-step-%d.png", r.episode, t.Number)
	r.err = SavePNG(filepath.Join(r.dir, name), r.grid, t.Observation,
		r.values, r.cellSize)
}

// Save returns the first error encountered while recording. Frames are
// saved as they are tracked.
func (r *Recorder) Save() error {
	if r.err != nil {
		return fmt.Errorf("save: %w", r.err)
	}
	return nil
}
