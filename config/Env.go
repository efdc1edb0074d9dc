package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix prefixes the names of environment variables that override
// configuration keys, e.g. GRIDLEARN_EPISODES overrides episodes
const EnvPrefix = "GRIDLEARN_"

// ApplyEnv loads envFile into the environment if it exists, then
// overrides the keys of c with any GRIDLEARN_* environment variables.
// Variables already set in the environment take precedence over
// envFile.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if errors.Is(err, fs.ErrNotExist) {
			log.WithField("path", envFile).Debug(".env file not found")
		} else if err != nil {
			return fmt.Errorf("applyEnv: %v", err)
		}
	}

	for key, set := range c.setters() {
		value, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		if err := set(value); err != nil {
			return fmt.Errorf("applyEnv: %v%v: %v", EnvPrefix, key, err)
		}
	}

	return nil
}

// Set parses value and sets the configuration key named key, which
// may be given in upper or lower case with either - or _ separating
// words
func (c *Config) Set(key, value string) error {
	name := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	set, ok := c.setters()[name]
	if !ok {
		return fmt.Errorf("set: unknown key %q", key)
	}
	if err := set(value); err != nil {
		return fmt.Errorf("set: %v: %v", key, err)
	}
	return nil
}

// setters returns functions which parse and set each key of c, keyed
// by the upper case names of environment variables
func (c *Config) setters() map[string]func(string) error {
	str := func(p *string) func(string) error {
		return func(v string) error {
			*p = v
			return nil
		}
	}
	integer := func(p *int) func(string) error {
		return func(v string) (err error) {
			*p, err = strconv.Atoi(v)
			return err
		}
	}
	float := func(p *float64) func(string) error {
		return func(v string) (err error) {
			*p, err = strconv.ParseFloat(v, 64)
			return err
		}
	}
	boolean := func(p *bool) func(string) error {
		return func(v string) (err error) {
			*p, err = strconv.ParseBool(v)
			return err
		}
	}
	unsigned := func(p *uint64) func(string) error {
		return func(v string) (err error) {
			*p, err = strconv.ParseUint(v, 10, 64)
			return err
		}
	}

	return map[string]func(string) error{
		"MAZE":         str(&c.Maze),
		"AGENT":        str(&c.Agent),
		"EPISODES":     integer(&c.Episodes),
		"MAX_STEPS":    integer(&c.MaxSteps),
		"CUTOFF":       integer(&c.Cutoff),
		"ALPHA":        float(&c.Alpha),
		"GAMMA":        float(&c.Gamma),
		"EPSILON":      float(&c.Epsilon),
		"INIT_SCALE":   float(&c.InitScale),
		"SEED":         unsigned(&c.Seed),
		"SAVE":         str(&c.Save),
		"LOAD":         str(&c.Load),
		"EVAL":         boolean(&c.Eval),
		"CHECKPOINT":   integer(&c.Checkpoint),
		"RESULTS":      str(&c.Results),
		"RETURNS":      str(&c.Returns),
		"LENGTHS":      str(&c.Lengths),
		"WINDOW":       integer(&c.Window),
		"RENDER":       str(&c.Render),
		"RENDER_EVERY": integer(&c.RenderEvery),
		"LOG_LEVEL":    str(&c.LogLevel),
	}
}
