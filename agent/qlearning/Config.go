package qlearning

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gridlearn/agent"
	"github.com/samuelfneumann/gridlearn/agent/linear"
	"github.com/samuelfneumann/gridlearn/agent/tabular"
	"github.com/samuelfneumann/gridlearn/environment"
	"github.com/samuelfneumann/gridlearn/utils/matutils/initializers/weights"
)

// Value function representations
const (
	Tabular = "tabular"
	Linear  = "linear"
)

var _ agent.Config = Config{}

// Config represents a configuration for the QLearning agent
type Config struct {
	Representation string  // Tabular or Linear
	Epsilon        float64 // ε for the behaviour policy
	LearningRate   float64
	Discount       float64

	// InitScale > 0 draws initial weights uniformly from
	// [-InitScale, InitScale], otherwise weights start at 0
	InitScale float64
}

// Default returns the default Config for the given representation
func Default(representation string) Config {
	return Config{
		Representation: representation,
		Epsilon:        0.1,
		LearningRate:   0.1,
		Discount:       0.99,
	}
}

// CreateAgent creates the agent from the Config
func (c Config) CreateAgent(env environment.Environment,
	seed uint64) (agent.Agent, error) {
	return New(env, c, seed)
}

// ValueFunction creates the value function described by the Config
// for env. Its weights are initialized with random numbers generated
// from seed when InitScale > 0.
func (c Config) ValueFunction(env environment.Model,
	seed uint64) (agent.ValueFunction, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	init := weights.Initializer(weights.NewZero())
	if c.InitScale > 0 {
		init = weights.NewUniform(c.InitScale, rand.NewSource(seed))
	}

	switch c.Representation {
	case Tabular:
		rows, cols := env.Dims()
		return tabular.NewTable(rows, cols, c.LearningRate, c.Discount,
			init), nil

	case Linear:
		features := linear.NewGoalDistance(env)
		return linear.New(features, c.LearningRate, c.Discount, init), nil
	}

	return nil, fmt.Errorf("valueFunction: unknown representation %q",
		c.Representation)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	q, ok := a.(*QLearning)
	if !ok {
		return false
	}

	switch q.ValueFunction().(type) {
	case *tabular.Table:
		return c.Representation == Tabular
	case *linear.Linear:
		return c.Representation == Linear
	}
	return false
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Representation != Tabular && c.Representation != Linear {
		return fmt.Errorf("validate: representation must be %q or %q, "+
			"got %q", Tabular, Linear, c.Representation)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon must be in [0, 1], got %v",
			c.Epsilon)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("validate: learning rate must be in (0, 1], "+
			"got %v", c.LearningRate)
	}
	if c.Discount < 0 || c.Discount >= 1 {
		return fmt.Errorf("validate: discount must be in [0, 1), got %v",
			c.Discount)
	}
	if c.InitScale < 0 {
		return fmt.Errorf("validate: init scale cannot be negative")
	}
	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	if c.Representation == Linear {
		return agent.EGreedyQLearningLinear
	}
	return agent.EGreedyQLearningTabular
}
