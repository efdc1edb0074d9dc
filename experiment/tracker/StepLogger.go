package tracker

import (
	log "github.com/sirupsen/logrus"

	"github.com/samuelfneumann/gridlearn/agent/qlearning"
)

// StepLogger returns a function which logs each update Snapshot of a
// QLearning agent at the Debug level. Register it with
// QLearning.Register.
func StepLogger(logger log.FieldLogger) func(qlearning.Snapshot) {
	return func(s qlearning.Snapshot) {
		logger.WithFields(log.Fields{
			"update":   s.Update,
			"state":    s.State.String(),
			"action":   s.Action.String(),
			"reward":   s.Reward,
			"terminal": s.Terminal,
			"q":        s.Values,
		}).Debug("update")
	}
}
