package dsl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedEOF marks syntax errors caused by input ending mid-construct.
// Match with errors.Is.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// ErrFileNotFound is returned by LoadFile for a missing path. Match with
// errors.Is.
var ErrFileNotFound = errors.New("file not found")

// SyntaxError reports a token that violates the grammar. It carries the
// source position and the set of tokens that would have been accepted there.
type SyntaxError struct {
	Line     int
	Column   int
	Expected []string
	Found    string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at line %d, column %d", e.Line, e.Column)
	if len(e.Expected) > 0 {
		msg += ": expected " + strings.Join(e.Expected, " or ")
	}
	if e.Found != "" {
		msg += ", found " + e.Found
	}
	return msg
}

// Is reports ErrUnexpectedEOF when the error was caused by running out of
// input.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrUnexpectedEOF && e.Found == "end of input"
}

// Reasons carried by ReferenceError.
const (
	// ReasonUnknownAgent: a workflow references an agent the model never
	// declares.
	ReasonUnknownAgent = "unknown"

	// ReasonDuplicateAgent: two agent declarations share an identifier.
	ReasonDuplicateAgent = "duplicate"

	// ReasonUnlistedFlowAgent: a flow edge uses an agent missing from its
	// workflow's agents list.
	ReasonUnlistedFlowAgent = "flow uses unlisted"
)

// ReferenceError reports an identifier that cannot be resolved against the
// model: a workflow naming an undeclared agent, a flow edge using an agent
// outside its workflow's agent list, or a duplicate agent declaration.
type ReferenceError struct {
	// Workflow containing the reference; empty for duplicate declarations.
	Workflow string

	// Name is the offending agent identifier.
	Name string

	Line   int
	Column int

	// Reason is one of the Reason constants.
	Reason string
}

func (e *ReferenceError) Error() string {
	if e.Workflow != "" {
		return fmt.Sprintf("workflow %q: %s agent %q at line %d, column %d",
			e.Workflow, e.Reason, e.Name, e.Line, e.Column)
	}
	return fmt.Sprintf("%s agent %q at line %d, column %d", e.Reason, e.Name, e.Line, e.Column)
}
