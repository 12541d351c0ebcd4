package agentara

import "gopkg.in/yaml.v3"

// YAML renders the model graph as YAML, for export to tooling that does not
// speak the DSL grammar.
func (m *Model) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}

// Scalar shapes marshal to their native YAML types; structured shapes
// (Call, RateLimit) marshal to their literal grammar text.

func (s String) MarshalYAML() (any, error) { return string(s), nil }
func (i Int) MarshalYAML() (any, error)    { return int64(i), nil }
func (f Float) MarshalYAML() (any, error)  { return float64(f), nil }
func (b Bool) MarshalYAML() (any, error)   { return bool(b), nil }
func (i Ident) MarshalYAML() (any, error)  { return string(i), nil }
func (c Call) MarshalYAML() (any, error)   { return c.String(), nil }
func (r RateLimit) MarshalYAML() (any, error) { return r.String(), nil }
