package agentara

// Validator walks a parsed model and applies built-in invariants plus
// registry-supplied checks. Validation stops at the first failure; there is
// no aggregation of multiple violations in one pass.
type Validator struct {
	// Registry supplies the validators and agent processors to run.
	// Nil means DefaultRegistry().
	Registry *Registry
}

// NewValidator creates a validator backed by the default registry.
func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) registry() *Registry {
	if v.Registry != nil {
		return v.Registry
	}
	return DefaultRegistry()
}

// Validate checks every agent in model order. For each agent it runs the
// built-in name check, then agent processors, then agent validators in
// registration order, then capability and parameter validators over the
// agent's nested entities. The first failure is returned as a
// *ValidationError carrying the agent's name and the original message.
func (v *Validator) Validate(m *Model) error {
	if m == nil {
		return nil
	}
	for _, agent := range m.Agents {
		if err := v.validateAgent(agent); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateAgent(agent *Agent) error {
	if agent == nil || agent.Name == "" {
		return &ValidationError{Err: ErrMissingName}
	}

	reg := v.registry()

	for _, proc := range reg.AgentProcessors() {
		if err := proc(agent); err != nil {
			return &ValidationError{Agent: agent.Name, Err: err}
		}
	}

	for _, check := range reg.AgentValidators() {
		if err := check(agent); err != nil {
			return &ValidationError{Agent: agent.Name, Err: err}
		}
	}

	for _, cap := range agent.Capabilities {
		for _, check := range reg.CapabilityValidators() {
			if err := check(cap); err != nil {
				return &ValidationError{Agent: agent.Name, Err: err}
			}
		}
	}

	for _, param := range agent.Parameters {
		for _, check := range reg.ParameterValidators() {
			if err := check(param); err != nil {
				return &ValidationError{Agent: agent.Name, Err: err}
			}
		}
	}

	return nil
}
