package agentara

import (
	"slices"
	"sync"
)

// Callback signatures for the registry's extension points. Each phase has its
// own closed type so registrations are checked at compile time.
type (
	// AgentValidator checks a single agent. A non-nil error rejects the model.
	AgentValidator func(*Agent) error

	// CapabilityValidator checks a single capability.
	CapabilityValidator func(*Capability) error

	// ParameterValidator checks a single parameter.
	ParameterValidator func(*Parameter) error

	// ModelProcessor runs once after a successful parse and may mutate the
	// model, e.g. to attach derived attributes.
	ModelProcessor func(*Model) error

	// AgentProcessor runs against each agent during validation, before that
	// agent's validators, and may mutate the agent.
	AgentProcessor func(*Agent) error
)

// Registry holds ordered lists of validators and processors. Registration
// appends; registering the same callback twice runs it twice. All methods are
// safe for concurrent use.
//
// Parser and Validator accept an injected *Registry. The package-level
// Register functions operate on a process-wide default instance for
// convenience.
type Registry struct {
	mu sync.RWMutex

	agentValidators      []AgentValidator
	capabilityValidators []CapabilityValidator
	parameterValidators  []ParameterValidator
	modelProcessors      []ModelProcessor
	agentProcessors      []AgentProcessor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterAgentValidator appends an agent-kind validator.
func (r *Registry) RegisterAgentValidator(fn AgentValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agentValidators = append(r.agentValidators, fn)
}

// RegisterCapabilityValidator appends a capability-kind validator.
func (r *Registry) RegisterCapabilityValidator(fn CapabilityValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilityValidators = append(r.capabilityValidators, fn)
}

// RegisterParameterValidator appends a parameter-kind validator.
func (r *Registry) RegisterParameterValidator(fn ParameterValidator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parameterValidators = append(r.parameterValidators, fn)
}

// RegisterModelProcessor appends a model-phase processor.
func (r *Registry) RegisterModelProcessor(fn ModelProcessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modelProcessors = append(r.modelProcessors, fn)
}

// RegisterAgentProcessor appends an agent-phase processor.
func (r *Registry) RegisterAgentProcessor(fn AgentProcessor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agentProcessors = append(r.agentProcessors, fn)
}

// AgentValidators returns the registered agent validators in registration
// order. The returned slice is a copy.
func (r *Registry) AgentValidators() []AgentValidator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.agentValidators)
}

// CapabilityValidators returns the registered capability validators.
func (r *Registry) CapabilityValidators() []CapabilityValidator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.capabilityValidators)
}

// ParameterValidators returns the registered parameter validators.
func (r *Registry) ParameterValidators() []ParameterValidator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.parameterValidators)
}

// ModelProcessors returns the registered model processors.
func (r *Registry) ModelProcessors() []ModelProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.modelProcessors)
}

// AgentProcessors returns the registered agent processors.
func (r *Registry) AgentProcessors() []AgentProcessor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.agentProcessors)
}

// Clear removes every registered validator and processor. Intended for
// isolating test runs.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.agentValidators = nil
	r.capabilityValidators = nil
	r.parameterValidators = nil
	r.modelProcessors = nil
	r.agentProcessors = nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when a Parser or
// Validator has none injected.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterAgentValidator registers on the default registry.
func RegisterAgentValidator(fn AgentValidator) {
	defaultRegistry.RegisterAgentValidator(fn)
}

// RegisterCapabilityValidator registers on the default registry.
func RegisterCapabilityValidator(fn CapabilityValidator) {
	defaultRegistry.RegisterCapabilityValidator(fn)
}

// RegisterParameterValidator registers on the default registry.
func RegisterParameterValidator(fn ParameterValidator) {
	defaultRegistry.RegisterParameterValidator(fn)
}

// RegisterModelProcessor registers on the default registry.
func RegisterModelProcessor(fn ModelProcessor) {
	defaultRegistry.RegisterModelProcessor(fn)
}

// RegisterAgentProcessor registers on the default registry.
func RegisterAgentProcessor(fn AgentProcessor) {
	defaultRegistry.RegisterAgentProcessor(fn)
}

// ClearRegistry clears the default registry. Useful for testing.
func ClearRegistry() {
	defaultRegistry.Clear()
}
