// Package checkpointer implements saving and loading of serializable
// models, and checkpointing them during an experiment
package checkpointer

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	ts "github.com/samuelfneumann/gridlearn/timestep"
)

// Serializable is an object that can be saved/serialized
type Serializable interface {
	gob.GobEncoder
	gob.GobDecoder
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}

// ModelLoadError is returned when a saved model is missing, unreadable,
// or does not fit the object it is loaded into
type ModelLoadError struct {
	Path string
	Err  error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("could not load model from %v: %v", e.Path, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// Save serializes obj to the file at path, creating its directory if
// needed
func Save(path string, obj Serializable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(obj); err != nil {
		return fmt.Errorf("save: could not encode model: %v", err)
	}
	return file.Close()
}

// Load deserializes the model saved at path into obj. Any failure is
// returned as a *ModelLoadError, in which case obj is unchanged.
func Load(path string, obj Serializable) error {
	file, err := os.Open(path)
	if err != nil {
		return &ModelLoadError{Path: path, Err: err}
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(obj); err != nil {
		return &ModelLoadError{Path: path, Err: err}
	}
	return nil
}
