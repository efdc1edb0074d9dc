// Package config implements the configuration of training runs. A
// Config starts from defaults, which are overridden by a TOML file, then
// by GRIDLEARN_* environment variables (optionally loaded from a .env
// file), and finally by command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/agent/qlearning"
)

// Config is the configuration of a training run
type Config struct {
	Maze     string `toml:"maze"`      // grid source file
	Agent    string `toml:"agent"`     // "tabular" or "linear"
	Episodes int    `toml:"episodes"`  // 0 means unbounded
	MaxSteps int    `toml:"max_steps"` // 0 means unbounded
	Cutoff   int    `toml:"cutoff"`    // per-episode step cap, 0 for none

	Alpha     float64 `toml:"alpha"`
	Gamma     float64 `toml:"gamma"`
	Epsilon   float64 `toml:"epsilon"`
	InitScale float64 `toml:"init_scale"`
	Seed      uint64  `toml:"seed"`

	Save       string `toml:"save"`
	Load       string `toml:"load"`
	Eval       bool   `toml:"eval"`
	Checkpoint int    `toml:"checkpoint"` // episodes between checkpoints

	Results     string `toml:"results"` // HTML reward plot
	Returns     string `toml:"returns"`
	Lengths     string `toml:"lengths"`
	Window      int    `toml:"window"`
	Render      string `toml:"render"` // PNG frame directory
	RenderEvery int    `toml:"render_every"`

	LogLevel string `toml:"log_level"`
}

// Default returns the default Config
func Default() Config {
	agent := qlearning.Default(qlearning.Tabular)
	return Config{
		Maze:        "playground.txt",
		Agent:       agent.Representation,
		Alpha:       agent.LearningRate,
		Gamma:       agent.Discount,
		Epsilon:     agent.Epsilon,
		Seed:        1,
		Window:      100,
		RenderEvery: 100,
		LogLevel:    log.InfoLevel.String(),
	}
}

// Load returns the Config in the TOML file at path, with unset keys
// taking their default values. If path does not exist, the default
// Config is returned.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	md, err := toml.DecodeFile(path, &config)
	if errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Warn("config file not found, using " +
			"defaults")
		return Default(), nil
	} else if err != nil {
		return Config{}, fmt.Errorf("load: %v", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load: unknown keys in %v: %v", path,
			strings.Join(keys, ", "))
	}

	return config, nil
}

// Validate returns an error describing why the Config is not valid, if
// it is not
func (c Config) Validate() error {
	if c.Maze == "" {
		return fmt.Errorf("validate: no maze file")
	}
	if err := c.AgentConfig().Validate(); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.Episodes < 0 || c.MaxSteps < 0 || c.Cutoff < 0 {
		return fmt.Errorf("validate: episode, step, and cutoff limits " +
			"cannot be negative")
	}
	if c.Checkpoint < 0 {
		return fmt.Errorf("validate: checkpoint interval cannot be negative")
	}
	if c.Checkpoint > 0 && c.Save == "" {
		return fmt.Errorf("validate: checkpoints need a save path")
	}
	if c.Window <= 0 {
		return fmt.Errorf("validate: plot window must be positive")
	}
	if c.RenderEvery <= 0 {
		return fmt.Errorf("validate: render interval must be positive")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// AgentConfig returns the configuration of the agent
func (c Config) AgentConfig() qlearning.Config {
	return qlearning.Config{
		Representation: c.Agent,
		Epsilon:        c.Epsilon,
		LearningRate:   c.Alpha,
		Discount:       c.Gamma,
		InitScale:      c.InitScale,
	}
}

// Level returns the log level of the Config, or logrus.InfoLevel if the
// level is invalid
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
