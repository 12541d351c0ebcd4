package agentara

import (
	"errors"
	"fmt"
)

// ErrMissingName is the built-in validation failure for an agent without a
// name.
var ErrMissingName = errors.New("agent must have a name")

// ValidationError is returned when a built-in or registered check rejects a
// model. It carries the offending agent's name and the original failure.
type ValidationError struct {
	// Agent is the name of the failing agent, empty when the agent has none.
	Agent string

	// Err is the underlying failure.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Agent == "" {
		return fmt.Sprintf("validation failed: %v", e.Err)
	}
	return fmt.Sprintf("validation failed for agent %q: %v", e.Agent, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
