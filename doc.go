// Package agentara compiles a declarative agent-definition language into a
// validated in-memory model.
//
// Agentara is a Go library for describing AI agents and the workflows that
// connect them. It provides:
//
//   - A typed semantic model (Model, Agent, Capability, Parameter, Rule, Workflow)
//   - A grammar-driven parser for the agent DSL (see the dsl subpackage)
//   - An extensible registry of validators and processors
//   - A validator that walks a parsed model and reports the first failure
//   - A SQLite-backed catalog for persisting validated definitions
//
// # Quick Start
//
// Parse and validate a definition:
//
//	model, err := dsl.LoadString(`
//	    agent Assistant {
//	        name: "Assistant"
//	        model_name: "gpt-4"
//	    }
//	`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(model.Agents[0].Name) // Assistant
//
// # Extension Points
//
// External code adds checks without touching the grammar. Validators reject
// models; processors may mutate them:
//
//	reg := agentara.NewRegistry()
//	reg.RegisterAgentValidator(func(a *agentara.Agent) error {
//	    if a.Name[0] >= 'a' && a.Name[0] <= 'z' {
//	        return fmt.Errorf("agent name must start with uppercase: %s", a.Name)
//	    }
//	    return nil
//	})
//	reg.RegisterModelProcessor(func(m *agentara.Model) error {
//	    m.SetAttr("agent_count", len(m.Agents))
//	    return nil
//	})
//
//	p := &dsl.Parser{Registry: reg}
//	model, err := p.Parse(src)
//
// A process-wide default registry exists for convenience; pass an explicit
// Registry to keep extension state owned by the caller.
//
// # Value Shapes
//
// Every literal in a definition is a Value: String, Int, Float, Bool, Ident,
// Call, or RateLimit. Consumers switch over the concrete shapes:
//
//	switch v := rule.Value.(type) {
//	case agentara.RateLimit:
//	    fmt.Println(v.Count, "per", v.Period)
//	case agentara.Call:
//	    fmt.Println("call", v.Name)
//	}
//
// # Thread Safety
//
// Registry values are safe for concurrent use. A parsed Model is owned by the
// caller that produced it and is not internally synchronized.
//
// Parsing never executes agents, invokes a language model, or schedules
// workflow edges. Static definition and validation only.
package agentara
