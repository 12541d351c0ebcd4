package agentara

import (
	"strconv"
	"strings"
)

// Value is a literal or structured value appearing in a definition: a
// property value, a capability argument, a parameter value, or a rule value.
//
// The concrete shapes are String, Int, Float, Bool, Ident, Call, and
// RateLimit. The interface is sealed so consumption sites can switch
// exhaustively.
type Value interface {
	// String renders the value in its literal grammar form.
	String() string

	isValue()
}

// String is a quoted string literal, stored without the quotes.
type String string

// Int is an integer literal.
type Int int64

// Float is a decimal literal.
type Float float64

// Bool is a true/false literal.
type Bool bool

// Ident is a bare identifier used as a value.
type Ident string

// Call is a function-call shape: a name with ordered arguments, each of which
// is itself a Value.
type Call struct {
	Name string  `yaml:"name"`
	Args []Value `yaml:"args,omitempty"`
}

// Period is a rate-limit period.
type Period string

// Valid rate-limit periods.
const (
	PerSecond Period = "second"
	PerMinute Period = "minute"
	PerHour   Period = "hour"
	PerDay    Period = "day"
)

// Valid reports whether p is one of the four grammar periods.
func (p Period) Valid() bool {
	switch p {
	case PerSecond, PerMinute, PerHour, PerDay:
		return true
	}
	return false
}

// RateLimit is a count-per-period throttling policy, e.g. 100/hour.
type RateLimit struct {
	Count  int64  `yaml:"count"`
	Period Period `yaml:"period"`
}

func (s String) String() string { return `"` + string(s) + `"` }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }
// String keeps a decimal point even for whole values so the literal stays a
// float when reparsed.
func (f Float) String() string {
	s := strconv.FormatFloat(float64(f), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (i Ident) String() string { return string(i) }

func (c Call) String() string {
	out := c.Name + "("
	for i, a := range c.Args {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out + ")"
}

func (r RateLimit) String() string {
	return strconv.FormatInt(r.Count, 10) + "/" + string(r.Period)
}

func (String) isValue()    {}
func (Int) isValue()       {}
func (Float) isValue()     {}
func (Bool) isValue()      {}
func (Ident) isValue()     {}
func (Call) isValue()      {}
func (RateLimit) isValue() {}
