// Package catalog persists validated agent definitions.
//
// The catalog stores definition source text alongside a summary of the parsed
// model, keyed by a caller-chosen name. It is static storage only: nothing in
// here runs agents or schedules workflows.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/agentarahq/agentara"
)

// ErrNotFound is returned when no definition exists under the requested name.
var ErrNotFound = errors.New("definition not found")

// Definition is a stored agent definition: the original source text plus a
// summary of the model it parsed into.
type Definition struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Source     string    `json:"source"`
	AgentCount int       `json:"agent_count"`
	Agents     []string  `json:"agents"`
	Workflows  []string  `json:"workflows,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewDefinition builds a Definition from a validated model. The source should
// be the text the model was parsed from.
func NewDefinition(name, source string, m *agentara.Model) Definition {
	def := Definition{
		ID:         uuid.NewString(),
		Name:       name,
		Source:     source,
		AgentCount: len(m.Agents),
		CreatedAt:  time.Now().UTC(),
	}
	for _, a := range m.Agents {
		def.Agents = append(def.Agents, a.Name)
	}
	for _, wf := range m.Workflows {
		def.Workflows = append(def.Workflows, wf.Name)
	}
	return def
}

// Store persists definitions for later retrieval.
type Store interface {
	// Init creates tables if they don't exist.
	Init() error

	// Close closes the store.
	Close() error

	// Put inserts a definition, replacing any existing one with the same
	// name.
	Put(def Definition) error

	// Get returns the definition stored under name, or ErrNotFound.
	Get(name string) (Definition, error)

	// List returns all definitions, newest first.
	List() ([]Definition, error)

	// Delete removes the definition stored under name, or returns
	// ErrNotFound.
	Delete(name string) error
}
