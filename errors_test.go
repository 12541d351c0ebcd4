package agentara

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Agent: "Broken", Err: ErrMissingName}
	want := `validation failed for agent "Broken": agent must have a name`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrorMessageWithoutAgent(t *testing.T) {
	err := &ValidationError{Err: ErrMissingName}
	want := "validation failed: agent must have a name"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationErrorUnwrap(t *testing.T) {
	cause := errors.New("the real problem")
	err := &ValidationError{Agent: "A", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false")
	}

	wrapped := fmt.Errorf("load agent: %w", err)
	var valErr *ValidationError
	if !errors.As(wrapped, &valErr) {
		t.Error("errors.As through a wrapping layer failed")
	}
	if valErr.Agent != "A" {
		t.Errorf("Agent = %q, want %q", valErr.Agent, "A")
	}
}
