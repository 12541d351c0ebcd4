package dsl

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/agentarahq/agentara"
)

// Loader parses and validates definitions from strings or files. The zero
// value uses the full grammar, the default registry, and validation enabled.
type Loader struct {
	// Parser used for parsing. Nil means a zero-value Parser.
	Parser *Parser

	// Validator applied after parsing. Nil means a zero-value Validator.
	Validator *agentara.Validator

	// SkipValidation returns the parsed model without validating it.
	SkipValidation bool

	// Logger for debug output. Nil means slog.Default().
	Logger *slog.Logger
}

func (l *Loader) parser() *Parser {
	if l.Parser != nil {
		return l.Parser
	}
	return &Parser{}
}

func (l *Loader) validator() *agentara.Validator {
	if l.Validator != nil {
		return l.Validator
	}
	return &agentara.Validator{}
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

// LoadString parses definition text and, unless SkipValidation is set,
// validates the result. Parser and validator failures are wrapped in a single
// umbrella error; the typed cause stays reachable through errors.As and
// errors.Is.
func (l *Loader) LoadString(src string) (*agentara.Model, error) {
	model, err := l.parser().Parse(src)
	if err != nil {
		return nil, fmt.Errorf("load agent: %w", err)
	}

	if !l.SkipValidation {
		if err := l.validator().Validate(model); err != nil {
			return nil, fmt.Errorf("load agent: %w", err)
		}
	}

	l.logger().Debug("loaded definition",
		"agents", len(model.Agents),
		"workflows", len(model.Workflows),
		"validated", !l.SkipValidation)
	return model, nil
}

// LoadFile reads a definition file and loads its contents. A missing path is
// reported before any read is attempted; match it with
// errors.Is(err, ErrFileNotFound).
func (l *Loader) LoadFile(path string) (*agentara.Model, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	l.logger().Debug("loading definition file", "path", path, "bytes", len(data))
	return l.LoadString(string(data))
}

// LoadString parses and validates definition text with a zero-value Loader.
func LoadString(src string) (*agentara.Model, error) {
	return (&Loader{}).LoadString(src)
}

// LoadFile reads, parses, and validates a definition file with a zero-value
// Loader.
func LoadFile(path string) (*agentara.Model, error) {
	return (&Loader{}).LoadFile(path)
}
