package dsl

import (
	"strings"

	"github.com/agentarahq/agentara"
)

// Format renders a model as DSL source text. Parsing the output reproduces
// the model field for field; formatting is canonical (four-space indent, one
// construct per line), so Format(Parse(x)) normalizes x's layout.
//
// Derived attributes are not part of the grammar and are not rendered.
func Format(m *agentara.Model) string {
	var b strings.Builder
	for i, agent := range m.Agents {
		if i > 0 {
			b.WriteString("\n")
		}
		formatAgent(&b, agent)
	}
	for i, wf := range m.Workflows {
		if i > 0 || len(m.Agents) > 0 {
			b.WriteString("\n")
		}
		formatWorkflow(&b, wf)
	}
	return b.String()
}

func formatAgent(b *strings.Builder, agent *agentara.Agent) {
	b.WriteString("agent " + agent.Name + " {\n")

	for _, prop := range agent.Properties {
		b.WriteString("    " + prop.Name + ": " + prop.Value.String() + "\n")
	}

	if len(agent.Capabilities) > 0 {
		b.WriteString("\n    capabilities [\n")
		for i, cap := range agent.Capabilities {
			b.WriteString("        " + cap.Name)
			if len(cap.Args) > 0 {
				b.WriteString("(")
				for j, arg := range cap.Args {
					if j > 0 {
						b.WriteString(", ")
					}
					b.WriteString(arg.String())
				}
				b.WriteString(")")
			}
			if i < len(agent.Capabilities)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("    ]\n")
	}

	if len(agent.Parameters) > 0 {
		b.WriteString("\n    parameters {\n")
		for _, param := range agent.Parameters {
			if param.Required {
				b.WriteString("        " + param.Name + ": required\n")
			} else {
				b.WriteString("        " + param.Name + ": " + param.Value.String() + "\n")
			}
		}
		b.WriteString("    }\n")
	}

	if len(agent.Rules) > 0 {
		b.WriteString("\n    rules {\n")
		for _, rule := range agent.Rules {
			b.WriteString("        " + rule.Name + ": " + rule.Value.String() + "\n")
		}
		b.WriteString("    }\n")
	}

	b.WriteString("}\n")
}

func formatWorkflow(b *strings.Builder, wf *agentara.Workflow) {
	b.WriteString("workflow " + wf.Name + " {\n")
	b.WriteString("    agents: [" + strings.Join(wf.Agents, ", ") + "]\n")
	if len(wf.Flow) > 0 {
		b.WriteString("\n    flow {\n")
		for _, edge := range wf.Flow {
			b.WriteString("        " + edge.From + " -> " + edge.To + "\n")
		}
		b.WriteString("    }\n")
	}
	b.WriteString("}\n")
}
