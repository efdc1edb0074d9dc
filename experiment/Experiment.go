// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"

	"github.com/samuelfneumann/gridlearn/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments will track environment TimeSteps, caching each TimeStep
// in RAM to be later saved to disk. The Save() function will then take
// all cached data and save it to disk. This is usually performed after
// an experiment has been run. The Run() method will run all episodes
// until the episode or timestep limit is reached or the context is
// done. The RunEpisode() function will run a single episode.
//
// Experiments only stop between timesteps, never during an
// environment step or an agent update.
type Experiment interface {
	Run(ctx context.Context) error

	// RunEpisode runs a single episode and returns whether the
	// experiment's limits have been reached
	RunEpisode(ctx context.Context) (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}
