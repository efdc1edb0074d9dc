package experiment

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/agent"
	env "github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	ts "github.com/samuelfneumann/gridlearn/timestep"
	"github.com/samuelfneumann/gridlearn/utils/progressbar"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	environment env.Environment
	agent       agent.Agent

	// Limits on the experiment, 0 means unbounded
	maxEpisodes int
	maxSteps    int

	currentEpisodes int
	currentSteps    int

	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer

	id       uuid.UUID
	logger   log.FieldLogger
	progress *progressbar.ProgressBar
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The experiment runs for maxEpisodes
// episodes or maxSteps timesteps, whichever comes first, where 0 means
// no limit. Trackers t determine what data is saved, and checkpointers
// c save the agent's model during the experiment.
func NewOnline(e env.Environment, a agent.Agent, maxEpisodes,
	maxSteps int, t []tracker.Tracker,
	c []checkpointer.Checkpointer) *Online {
	if maxEpisodes < 0 || maxSteps < 0 {
		panic("newOnline: limits cannot be negative")
	}

	id := uuid.New()
	return &Online{
		environment:   e,
		agent:         a,
		maxEpisodes:   maxEpisodes,
		maxSteps:      maxSteps,
		trackers:      t,
		checkpointers: c,
		id:            id,
		logger:        log.WithField("run", id.String()),
	}
}

// ID returns the unique identifier of the experiment run
func (o *Online) ID() uuid.UUID {
	return o.id
}

// SetLogger sets the logger used for per-episode logging
func (o *Online) SetLogger(l log.FieldLogger) {
	o.logger = l.WithField("run", o.id.String())
}

// ShowProgress writes a progress bar over episodes to w. Experiments
// without an episode limit have no progress bar.
func (o *Online) ShowProgress(w io.Writer) {
	if o.maxEpisodes > 0 {
		o.progress = progressbar.New(w, 50, o.maxEpisodes)
	}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// Episodes returns the number of finished episodes
func (o *Online) Episodes() int {
	return o.currentEpisodes
}

// Steps returns the number of timesteps taken
func (o *Online) Steps() int {
	return o.currentSteps
}

// done returns whether the limits of the experiment have been reached
func (o *Online) done() bool {
	return (o.maxEpisodes > 0 && o.currentEpisodes >= o.maxEpisodes) ||
		(o.maxSteps > 0 && o.currentSteps >= o.maxSteps)
}

// RunEpisode runs a single episode of the experiment. If ctx is done
// the episode stops at the next step boundary and ctx.Err() is
// returned.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step, err := o.environment.Reset()
	if err != nil {
		return true, fmt.Errorf("runEpisode: could not reset: %v", err)
	}
	if err := o.agent.ObserveFirst(step); err != nil {
		return true, fmt.Errorf("runEpisode: %v", err)
	}
	o.track(step)

	episodeReturn := 0.0
	for !step.Last() && !o.done() {
		if err := ctx.Err(); err != nil {
			return true, err
		}

		// Select action, step in environment
		a := o.agent.SelectAction(step)
		step, _, err = o.environment.Step(a)
		if err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		o.currentSteps++
		episodeReturn += step.Reward

		// Cache the environment step in each Tracker
		o.track(step)

		// Observe the timestep and step the agent
		if err := o.agent.Observe(a, step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
		if err := o.agent.Step(); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}

		if err := o.checkpoint(step); err != nil {
			return true, fmt.Errorf("runEpisode: %v", err)
		}
	}
	o.agent.EndEpisode()

	if step.Last() {
		o.currentEpisodes++
		o.logger.WithFields(log.Fields{
			"episode": o.currentEpisodes,
			"return":  episodeReturn,
			"steps":   step.Number,
			"end":     step.EndType().String(),
		}).Infof("episode %d return %v", o.currentEpisodes, episodeReturn)

		if o.progress != nil {
			o.progress.Increment()
			o.progress.Display()
		}
	}

	// Return whether or not the experiment limits have been reached
	return o.done(), nil
}

// Run runs the entire experiment until its limits are reached or ctx
// is done, in which case ctx.Err() is returned
func (o *Online) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		ended, err := o.RunEpisode(ctx)
		if err != nil {
			return err
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// track tracks the current timestep by caching its data in each tracker
func (o *Online) track(t ts.TimeStep) {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
}

// checkpoint checkpoints the agent with each checkpointer
func (o *Online) checkpoint(t ts.TimeStep) error {
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
