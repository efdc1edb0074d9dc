package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/qlearning"
	"github.com/samuelfneumann/gridlearn/config"
	"github.com/samuelfneumann/gridlearn/environment/maze"
	"github.com/samuelfneumann/gridlearn/experiment"
	"github.com/samuelfneumann/gridlearn/experiment/checkpointer"
	"github.com/samuelfneumann/gridlearn/experiment/tracker"
	"github.com/samuelfneumann/gridlearn/render"
	ts "github.com/samuelfneumann/gridlearn/timestep"
)

var defaults = config.Default()

var (
	configFile = flag.String("config", "gridlearn.toml", "TOML configuration file")
	envFile    = flag.String("env", ".env", "file of GRIDLEARN_* environment overrides")
	verbose    = flag.Bool("v", false, "log every update")

	// Flags which override configuration keys, only applied when set
	_ = flag.String("maze", defaults.Maze, "maze grid file")
	_ = flag.String("agent", defaults.Agent, "value function: tabular or linear")
	_ = flag.Int("episodes", defaults.Episodes, "number of episodes, 0 for unbounded")
	_ = flag.Int("max-steps", defaults.MaxSteps, "number of timesteps, 0 for unbounded")
	_ = flag.Int("cutoff", defaults.Cutoff, "maximum steps per episode, 0 for none")
	_ = flag.Float64("alpha", defaults.Alpha, "learning rate")
	_ = flag.Float64("gamma", defaults.Gamma, "discount factor")
	_ = flag.Float64("epsilon", defaults.Epsilon, "exploration probability")
	_ = flag.Float64("init-scale", defaults.InitScale, "scale of uniform initial weights, 0 for zero")
	_ = flag.Uint64("seed", defaults.Seed, "random seed")
	_ = flag.String("save", defaults.Save, "file to save the model to")
	_ = flag.String("load", defaults.Load, "file to load a model from")
	_ = flag.Bool("eval", defaults.Eval, "act greedily with a loaded model")
	_ = flag.Int("checkpoint", defaults.Checkpoint, "episodes between model checkpoints, 0 for none")
	_ = flag.String("results", defaults.Results, "HTML file to plot returns to")
	_ = flag.String("returns", defaults.Returns, "file to save episodic returns to")
	_ = flag.String("lengths", defaults.Lengths, "file to save episode lengths to")
	_ = flag.Int("window", defaults.Window, "rolling mean window of the returns plot")
	_ = flag.String("render", defaults.Render, "directory to save PNG frames to")
	_ = flag.Int("render-every", defaults.RenderEvery, "episodes between rendered episodes")
	_ = flag.String("log-level", defaults.LogLevel, "log level")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal(err)
	}
}

// loadConfig loads the configuration file, applies environment
// overrides, and then applies any flags that were set
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(*envFile); err != nil {
		return config.Config{}, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config", "env", "v":
			return
		}
		if err == nil {
			err = cfg.Set(f.Name, f.Value.String())
		}
	})
	if err != nil {
		return config.Config{}, err
	}

	if *verbose {
		cfg.LogLevel = log.DebugLevel.String()
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg config.Config) error {
	grid, err := maze.LoadGridFile(cfg.Maze)
	if err != nil {
		return err
	}

	m, _, err := maze.New(grid, maze.NewSolve(cfg.Cutoff),
		maze.NewUniformStarter(grid, rand.NewSource(cfg.Seed)))
	if err != nil {
		return err
	}
	log.WithField("maze", cfg.Maze).Debugf("\n%v", grid)

	q, err := qlearning.New(m, cfg.AgentConfig(), cfg.Seed)
	if err != nil {
		return err
	}
	model := q.ValueFunction().(checkpointer.Serializable)

	if cfg.Load != "" {
		var loadErr *checkpointer.ModelLoadError
		err := checkpointer.Load(cfg.Load, model)
		switch {
		case errors.As(err, &loadErr):
			log.WithError(loadErr).Warn("continuing with a new model")
		case err != nil:
			return err
		default:
			log.WithField("path", cfg.Load).Info("loaded model")
			if cfg.Eval {
				q.Eval()
			}
		}
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		q.Register(tracker.StepLogger(log.StandardLogger()))
	}

	returns := tracker.NewReturn(cfg.Returns)
	lengths := tracker.NewEpisodeLength(cfg.Lengths)
	trackers := []tracker.Tracker{returns, lengths}

	var saved []tracker.Tracker
	if cfg.Returns != "" {
		saved = append(saved, returns)
	}
	if cfg.Lengths != "" {
		saved = append(saved, lengths)
	}
	if cfg.Render != "" {
		recorder := render.NewRecorder(grid, q.ValueFunction(), cfg.Render,
			cfg.RenderEvery)
		trackers = append(trackers, recorder)
		saved = append(saved, recorder)
	}

	var checkpointers []checkpointer.Checkpointer
	if cfg.Checkpoint > 0 {
		ext := filepath.Ext(cfg.Save)
		name := strings.TrimSuffix(cfg.Save, ext) + "-"
		checkpointers = append(checkpointers, checkpointer.NewNEpisode(
			cfg.Checkpoint, model, checkpointer.FilenameEnumerator(0, name,
				ext)))
	}

	e := experiment.NewOnline(m, q, cfg.Episodes, cfg.MaxSteps, trackers,
		checkpointers)
	e.ShowProgress(os.Stderr)
	log.WithFields(log.Fields{
		"run":      e.ID().String(),
		"agent":    cfg.AgentConfig().Type(),
		"episodes": cfg.Episodes,
	}).Info("starting training")

	err = e.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.WithField("episodes", e.Episodes()).Info("training stopped")
	} else if err != nil {
		return err
	}

	for _, t := range saved {
		if err := t.Save(); err != nil {
			log.WithError(err).Error("could not save tracked data")
		}
	}

	if cfg.Save != "" {
		if err := checkpointer.Save(cfg.Save, model); err != nil {
			return err
		}
		log.WithField("path", cfg.Save).Info("saved model")
	}

	if cfg.Results != "" {
		title := fmt.Sprintf("%v returns", cfg.AgentConfig().Type())
		err := tracker.PlotFile(cfg.Results, title, returns.Data(),
			cfg.Window)
		if err != nil {
			return err
		}
	}

	start, _ := grid.Start()
	path := greedyPath(m, q.ValueFunction(), start)
	fmt.Print(render.Text(grid, start, path))

	return nil
}

// greedyPath returns the states visited by following the greedy policy
// of vf from start, until a target is reached or every cell could have
// been visited
func greedyPath(m *maze.Maze, vf agent.ValueFunction,
	start ts.Position) []ts.Position {
	rows, cols := m.Dims()

	path := []ts.Position{start}
	s := start
	for i := 0; i < rows*cols && !m.IsTarget(s.Row, s.Col); i++ {
		s = m.PredictNextState(s, vf.BestAction(s))
		path = append(path, s)
	}
	return path
}
