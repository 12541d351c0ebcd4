package dsl

import (
	"fmt"
	"strconv"

	"github.com/agentarahq/agentara"
)

// Grammar selects one of the two DSL variants. Both populate the same
// semantic model.
type Grammar int

const (
	// GrammarFull accepts open property names plus capabilities, parameters,
	// rules, and workflow blocks.
	GrammarFull Grammar = iota

	// GrammarSimple accepts agent blocks only, with properties restricted to
	// a fixed keyword set.
	GrammarSimple
)

// Property keywords accepted by GrammarSimple.
var simpleProperties = map[string]bool{
	"name":           true,
	"description":    true,
	"system_prompt":  true,
	"model_provider": true,
	"model_name":     true,
	"temperature":    true,
	"max_tokens":     true,
}

var simplePropertyNames = []string{
	"'description'", "'max_tokens'", "'model_name'", "'model_provider'",
	"'name'", "'system_prompt'", "'temperature'",
}

// Parser parses definition source text into a semantic model.
//
// The zero value parses the full grammar against the default registry; set
// Registry to keep extension state caller-owned.
type Parser struct {
	// Registry supplies model processors run after a successful parse.
	// Nil means agentara.DefaultRegistry().
	Registry *agentara.Registry

	// Grammar selects the variant. Defaults to GrammarFull.
	Grammar Grammar
}

// NewParser creates a parser for the full grammar.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) registry() *agentara.Registry {
	if p.Registry != nil {
		return p.Registry
	}
	return agentara.DefaultRegistry()
}

// Parse compiles source text into a model. Empty or whitespace-only input is
// valid and yields an empty model. On failure the model is nil and the error
// is a *SyntaxError or *ReferenceError; a nil error means every workflow
// reference resolved and all model processors ran.
func (p *Parser) Parse(src string) (*agentara.Model, error) {
	r := &parseRun{lex: newLexer(src), grammar: p.Grammar}
	if err := r.advance(); err != nil {
		return nil, err
	}

	model := &agentara.Model{}
	for r.tok.kind != tokEOF {
		if r.tok.kind != tokIdent {
			return nil, r.fail(r.topLevelExpected()...)
		}
		switch r.tok.text {
		case "agent":
			agent, err := r.parseAgent()
			if err != nil {
				return nil, err
			}
			model.Agents = append(model.Agents, agent)
		case "workflow":
			if r.grammar == GrammarSimple {
				return nil, r.fail(r.topLevelExpected()...)
			}
			wf, err := r.parseWorkflow()
			if err != nil {
				return nil, err
			}
			model.Workflows = append(model.Workflows, wf)
		default:
			return nil, r.fail(r.topLevelExpected()...)
		}
	}

	if err := r.resolve(model); err != nil {
		return nil, err
	}

	for _, proc := range p.registry().ModelProcessors() {
		if err := proc(model); err != nil {
			return nil, fmt.Errorf("model processor: %w", err)
		}
	}

	return model, nil
}

// parseRun is the state of one Parse call: the token stream plus the
// declaration and reference sites collected for resolution.
type parseRun struct {
	lex     *lexer
	tok     token
	grammar Grammar

	decls []site
	refs  []ref
}

// site is where an agent was declared.
type site struct {
	name string
	line int
	col  int
}

// ref is a workflow's use of an agent name.
type ref struct {
	workflow string
	name     string
	line     int
	col      int
	inFlow   bool
}

func (r *parseRun) advance() error {
	t, err := r.lex.next()
	if err != nil {
		return err
	}
	r.tok = t
	return nil
}

// fail builds a syntax error at the current token.
func (r *parseRun) fail(expected ...string) error {
	return &SyntaxError{
		Line:     r.tok.line,
		Column:   r.tok.col,
		Expected: expected,
		Found:    r.tok.describe(),
	}
}

// expect consumes a token of the given kind or fails.
func (r *parseRun) expect(kind tokenKind) (token, error) {
	if r.tok.kind != kind {
		return token{}, r.fail(kind.String())
	}
	t := r.tok
	if err := r.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

// expectKeyword consumes a specific identifier or fails.
func (r *parseRun) expectKeyword(word string) (token, error) {
	if r.tok.kind != tokIdent || r.tok.text != word {
		return token{}, r.fail("'" + word + "'")
	}
	t := r.tok
	if err := r.advance(); err != nil {
		return token{}, err
	}
	return t, nil
}

func (r *parseRun) topLevelExpected() []string {
	if r.grammar == GrammarSimple {
		return []string{"'agent'"}
	}
	return []string{"'agent'", "'workflow'"}
}

// parseAgent parses one agent block. The current token is the "agent"
// keyword.
func (r *parseRun) parseAgent() (*agentara.Agent, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	nameTok, err := r.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	r.decls = append(r.decls, site{name: nameTok.text, line: nameTok.line, col: nameTok.col})

	if _, err := r.expect(tokLBrace); err != nil {
		return nil, err
	}

	agent := &agentara.Agent{Name: nameTok.text}
	for r.tok.kind != tokRBrace {
		if r.tok.kind != tokIdent {
			return nil, r.fail("identifier", "'}'")
		}
		key := r.tok
		if err := r.advance(); err != nil {
			return nil, err
		}

		if r.grammar == GrammarFull {
			switch {
			case key.text == "capabilities" && r.tok.kind == tokLBracket:
				caps, err := r.parseCapabilities()
				if err != nil {
					return nil, err
				}
				agent.Capabilities = caps
				continue
			case key.text == "parameters" && r.tok.kind == tokLBrace:
				params, err := r.parseParameters()
				if err != nil {
					return nil, err
				}
				agent.Parameters = params
				continue
			case key.text == "rules" && r.tok.kind == tokLBrace:
				rules, err := r.parseRules()
				if err != nil {
					return nil, err
				}
				agent.Rules = rules
				continue
			}
		} else if !simpleProperties[key.text] {
			return nil, &SyntaxError{
				Line:     key.line,
				Column:   key.col,
				Expected: simplePropertyNames,
				Found:    "'" + key.text + "'",
			}
		}

		if _, err := r.expect(tokColon); err != nil {
			return nil, err
		}
		value, err := r.parseScalar()
		if err != nil {
			return nil, err
		}
		agent.Properties = append(agent.Properties, agentara.Property{Name: key.text, Value: value})
	}
	if _, err := r.expect(tokRBrace); err != nil {
		return nil, err
	}
	return agent, nil
}

// parseCapabilities parses "[" capability ("," capability)* "]".
// The current token is the opening bracket.
func (r *parseRun) parseCapabilities() ([]*agentara.Capability, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	var caps []*agentara.Capability
	for {
		nameTok, err := r.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		cap := &agentara.Capability{Name: nameTok.text}
		if r.tok.kind == tokLParen {
			args, err := r.parseArgs()
			if err != nil {
				return nil, err
			}
			cap.Args = args
		}
		caps = append(caps, cap)

		if r.tok.kind == tokComma {
			if err := r.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if r.tok.kind == tokRBracket {
			if err := r.advance(); err != nil {
				return nil, err
			}
			return caps, nil
		}
		return nil, r.fail("','", "']'")
	}
}

// parseArgs parses "(" value ("," value)* ")".
// The current token is the opening paren.
func (r *parseRun) parseArgs() ([]agentara.Value, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	var args []agentara.Value
	for {
		v, err := r.parseValue()
		if err != nil {
			return nil, err
		}
		args = append(args, v)

		if r.tok.kind == tokComma {
			if err := r.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if r.tok.kind == tokRParen {
			if err := r.advance(); err != nil {
				return nil, err
			}
			return args, nil
		}
		return nil, r.fail("','", "')'")
	}
}

// parseParameters parses "{" (name ":" (value | "required"))* "}".
// The current token is the opening brace.
func (r *parseRun) parseParameters() ([]*agentara.Parameter, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	var params []*agentara.Parameter
	for r.tok.kind != tokRBrace {
		if r.tok.kind != tokIdent {
			return nil, r.fail("identifier", "'}'")
		}
		name := r.tok.text
		if err := r.advance(); err != nil {
			return nil, err
		}
		if _, err := r.expect(tokColon); err != nil {
			return nil, err
		}

		param := &agentara.Parameter{Name: name}
		if r.tok.kind == tokIdent && r.tok.text == "required" {
			param.Required = true
			if err := r.advance(); err != nil {
				return nil, err
			}
		} else {
			v, err := r.parseValue()
			if err != nil {
				return nil, err
			}
			param.Value = v
		}
		params = append(params, param)
	}
	if _, err := r.expect(tokRBrace); err != nil {
		return nil, err
	}
	return params, nil
}

// parseRules parses "{" (name ":" rule-value)* "}".
// The current token is the opening brace.
func (r *parseRun) parseRules() ([]*agentara.Rule, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	var rules []*agentara.Rule
	for r.tok.kind != tokRBrace {
		if r.tok.kind != tokIdent {
			return nil, r.fail("identifier", "'}'")
		}
		name := r.tok.text
		if err := r.advance(); err != nil {
			return nil, err
		}
		if _, err := r.expect(tokColon); err != nil {
			return nil, err
		}
		v, err := r.parseRuleValue()
		if err != nil {
			return nil, err
		}
		rules = append(rules, &agentara.Rule{Name: name, Value: v})
	}
	if _, err := r.expect(tokRBrace); err != nil {
		return nil, err
	}
	return rules, nil
}

// parseRuleValue parses exactly one of: function-call, rate-limit, or
// literal.
func (r *parseRun) parseRuleValue() (agentara.Value, error) {
	if r.tok.kind == tokInt {
		numTok := r.tok
		if err := r.advance(); err != nil {
			return nil, err
		}
		if r.tok.kind != tokSlash {
			return intValue(numTok)
		}
		if err := r.advance(); err != nil {
			return nil, err
		}
		if r.tok.kind != tokIdent {
			return nil, r.fail("'second'", "'minute'", "'hour'", "'day'")
		}
		period := agentara.Period(r.tok.text)
		if !period.Valid() {
			return nil, r.fail("'second'", "'minute'", "'hour'", "'day'")
		}
		if err := r.advance(); err != nil {
			return nil, err
		}
		count, err := strconv.ParseInt(numTok.text, 10, 64)
		if err != nil {
			return nil, numberError(numTok)
		}
		return agentara.RateLimit{Count: count, Period: period}, nil
	}
	if r.tok.kind == tokFloat {
		numTok := r.tok
		if err := r.advance(); err != nil {
			return nil, err
		}
		// Rate-limit counts are whole numbers.
		if r.tok.kind == tokSlash {
			return nil, &SyntaxError{
				Line:     numTok.line,
				Column:   numTok.col,
				Expected: []string{"integer rate-limit count"},
				Found:    "number " + numTok.text,
			}
		}
		f, err := strconv.ParseFloat(numTok.text, 64)
		if err != nil {
			return nil, numberError(numTok)
		}
		return agentara.Float(f), nil
	}
	return r.parseValue()
}

// parseValue parses a literal or a function-call shape.
func (r *parseRun) parseValue() (agentara.Value, error) {
	if r.tok.kind == tokIdent {
		nameTok := r.tok
		if err := r.advance(); err != nil {
			return nil, err
		}
		if r.tok.kind == tokLParen {
			args, err := r.parseArgs()
			if err != nil {
				return nil, err
			}
			return agentara.Call{Name: nameTok.text, Args: args}, nil
		}
		return identValue(nameTok.text), nil
	}
	return r.parseScalar()
}

// parseScalar parses STRING | NUMBER | ID.
func (r *parseRun) parseScalar() (agentara.Value, error) {
	tok := r.tok
	switch tok.kind {
	case tokString:
		if err := r.advance(); err != nil {
			return nil, err
		}
		return agentara.String(tok.text), nil
	case tokInt:
		if err := r.advance(); err != nil {
			return nil, err
		}
		return intValue(tok)
	case tokFloat:
		if err := r.advance(); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, numberError(tok)
		}
		return agentara.Float(f), nil
	case tokIdent:
		if err := r.advance(); err != nil {
			return nil, err
		}
		return identValue(tok.text), nil
	}
	return nil, r.fail("string", "number", "identifier")
}

// parseWorkflow parses one workflow block. The current token is the
// "workflow" keyword.
func (r *parseRun) parseWorkflow() (*agentara.Workflow, error) {
	if err := r.advance(); err != nil {
		return nil, err
	}
	nameTok, err := r.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	if _, err := r.expect(tokLBrace); err != nil {
		return nil, err
	}
	if _, err := r.expectKeyword("agents"); err != nil {
		return nil, err
	}
	if _, err := r.expect(tokColon); err != nil {
		return nil, err
	}
	if _, err := r.expect(tokLBracket); err != nil {
		return nil, err
	}

	wf := &agentara.Workflow{Name: nameTok.text}
	for {
		idTok, err := r.expect(tokIdent)
		if err != nil {
			return nil, err
		}
		wf.Agents = append(wf.Agents, idTok.text)
		r.refs = append(r.refs, ref{
			workflow: wf.Name, name: idTok.text, line: idTok.line, col: idTok.col,
		})

		if r.tok.kind == tokComma {
			if err := r.advance(); err != nil {
				return nil, err
			}
			continue
		}
		if r.tok.kind == tokRBracket {
			if err := r.advance(); err != nil {
				return nil, err
			}
			break
		}
		return nil, r.fail("','", "']'")
	}

	if r.tok.kind == tokIdent && r.tok.text == "flow" {
		if err := r.advance(); err != nil {
			return nil, err
		}
		if _, err := r.expect(tokLBrace); err != nil {
			return nil, err
		}
		for r.tok.kind != tokRBrace {
			if r.tok.kind != tokIdent {
				return nil, r.fail("identifier", "'}'")
			}
			fromTok := r.tok
			if err := r.advance(); err != nil {
				return nil, err
			}
			if _, err := r.expect(tokArrow); err != nil {
				return nil, err
			}
			toTok, err := r.expect(tokIdent)
			if err != nil {
				return nil, err
			}
			wf.Flow = append(wf.Flow, agentara.FlowEdge{From: fromTok.text, To: toTok.text})
			r.refs = append(r.refs,
				ref{workflow: wf.Name, name: fromTok.text, line: fromTok.line, col: fromTok.col, inFlow: true},
				ref{workflow: wf.Name, name: toTok.text, line: toTok.line, col: toTok.col, inFlow: true},
			)
		}
		if _, err := r.expect(tokRBrace); err != nil {
			return nil, err
		}
	}

	if _, err := r.expect(tokRBrace); err != nil {
		return nil, err
	}
	return wf, nil
}

// resolve checks declarations and references after the full text has been
// consumed: agent identifiers must be unique, and every workflow reference
// (agent list entries and flow endpoints) must name a declared agent. Flow
// endpoints must additionally appear in their workflow's agents list.
func (r *parseRun) resolve(m *agentara.Model) error {
	declared := make(map[string]bool, len(r.decls))
	for _, d := range r.decls {
		if declared[d.name] {
			return &ReferenceError{
				Name: d.name, Line: d.line, Column: d.col,
				Reason: ReasonDuplicateAgent,
			}
		}
		declared[d.name] = true
	}

	listed := make(map[string]map[string]bool, len(m.Workflows))
	for _, wf := range m.Workflows {
		names := make(map[string]bool, len(wf.Agents))
		for _, name := range wf.Agents {
			names[name] = true
		}
		listed[wf.Name] = names
	}

	for _, use := range r.refs {
		if !declared[use.name] {
			return &ReferenceError{
				Workflow: use.workflow, Name: use.name,
				Line: use.line, Column: use.col,
				Reason: ReasonUnknownAgent,
			}
		}
		if use.inFlow && !listed[use.workflow][use.name] {
			return &ReferenceError{
				Workflow: use.workflow, Name: use.name,
				Line: use.line, Column: use.col,
				Reason: ReasonUnlistedFlowAgent,
			}
		}
	}
	return nil
}

// identValue maps the boolean keywords, passing other identifiers through.
func identValue(text string) agentara.Value {
	switch text {
	case "true":
		return agentara.Bool(true)
	case "false":
		return agentara.Bool(false)
	}
	return agentara.Ident(text)
}

func intValue(tok token) (agentara.Value, error) {
	n, err := strconv.ParseInt(tok.text, 10, 64)
	if err != nil {
		return nil, numberError(tok)
	}
	return agentara.Int(n), nil
}

// numberError reports a numeric literal the model cannot represent, e.g. an
// integer overflowing 64 bits.
func numberError(tok token) error {
	return &SyntaxError{
		Line:   tok.line,
		Column: tok.col,
		Found:  "number " + tok.text,
	}
}
