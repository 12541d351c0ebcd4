package agentara

// Model is the root of a parsed definition: every agent and workflow declared
// in one source text, in declaration order. A Model is built exactly once per
// parse; after a successful parse only processor-appended attributes change.
type Model struct {
	// Agents in declaration order.
	Agents []*Agent `yaml:"agents"`

	// Workflows in declaration order.
	Workflows []*Workflow `yaml:"workflows,omitempty"`

	// Attrs holds derived fields appended by model processors.
	Attrs map[string]any `yaml:"-"`
}

// Agent returns the agent with the given identifier.
func (m *Model) Agent(name string) (*Agent, bool) {
	for _, a := range m.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// SetAttr attaches a derived attribute to the model.
func (m *Model) SetAttr(key string, value any) {
	if m.Attrs == nil {
		m.Attrs = make(map[string]any)
	}
	m.Attrs[key] = value
}

// Attr returns a derived attribute set by a processor.
func (m *Model) Attr(key string) (any, bool) {
	v, ok := m.Attrs[key]
	return v, ok
}

// Agent is a declared agent: an identifier plus its properties and optional
// capability, parameter, and rule blocks. It is a static definition, not a
// running process.
type Agent struct {
	// Name is the identifier from the agent declaration.
	Name string `yaml:"name"`

	// Properties in declaration order.
	Properties []Property `yaml:"properties,omitempty"`

	// Capabilities the agent exposes (optional).
	Capabilities []*Capability `yaml:"capabilities,omitempty"`

	// Parameters configuring the agent (optional).
	Parameters []*Parameter `yaml:"parameters,omitempty"`

	// Rules governing the agent's behavior (optional).
	Rules []*Rule `yaml:"rules,omitempty"`

	// Attrs holds derived fields appended by agent processors.
	Attrs map[string]any `yaml:"-"`
}

// Property returns the value of the named property.
// Later declarations shadow earlier ones.
func (a *Agent) Property(name string) (Value, bool) {
	var v Value
	found := false
	for _, p := range a.Properties {
		if p.Name == name {
			v = p.Value
			found = true
		}
	}
	return v, found
}

// SetAttr attaches a derived attribute to the agent.
func (a *Agent) SetAttr(key string, value any) {
	if a.Attrs == nil {
		a.Attrs = make(map[string]any)
	}
	a.Attrs[key] = value
}

// Attr returns a derived attribute set by a processor.
func (a *Agent) Attr(key string) (any, bool) {
	v, ok := a.Attrs[key]
	return v, ok
}

// Property is a name/value pair in an agent body.
type Property struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
}

// Capability is a named feature an agent exposes, with optional structured
// arguments. Arguments are literals or nested calls; the grammar does not
// type-check them.
type Capability struct {
	Name string  `yaml:"name"`
	Args []Value `yaml:"args,omitempty"`
}

// Parameter is a named configuration value. A parameter is either bound to a
// literal value or marked Required, meaning mandatory with no default.
type Parameter struct {
	Name string `yaml:"name"`

	// Value is nil when Required is set.
	Value Value `yaml:"value,omitempty"`

	// Required marks a mandatory parameter with no default.
	Required bool `yaml:"required,omitempty"`
}

// Rule is a named behavioral policy. Its value is exactly one of: a literal,
// a Call, or a RateLimit.
type Rule struct {
	Name  string `yaml:"name"`
	Value Value  `yaml:"value"`
}

// Workflow is a named ordered grouping of agents with optional directed flow
// edges between them. Agent names are references; the parser guarantees they
// resolve to agents declared in the same model.
type Workflow struct {
	Name string `yaml:"name"`

	// Agents is the ordered list of referenced agent names.
	Agents []string `yaml:"agents"`

	// Flow is the ordered list of directed edges (optional).
	Flow []FlowEdge `yaml:"flow,omitempty"`
}

// FlowEdge is a directed edge between two agents in a workflow.
type FlowEdge struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}
