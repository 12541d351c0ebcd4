package dsl

import (
	"errors"
	"strings"
	"testing"

	"github.com/agentarahq/agentara"
)

// testParser returns a parser with a private registry so tests don't leak
// extension state through the process-wide default.
func testParser() *Parser {
	return &Parser{Registry: agentara.NewRegistry()}
}

func TestParseEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   \n\t  ", "// just a comment\n"} {
		model, err := testParser().Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", src, err)
		}
		if len(model.Agents) != 0 {
			t.Errorf("len(model.Agents) = %d, want 0", len(model.Agents))
		}
		if len(model.Workflows) != 0 {
			t.Errorf("len(model.Workflows) = %d, want 0", len(model.Workflows))
		}
	}
}

func TestParseSimpleAgent(t *testing.T) {
	src := `
	agent SimpleAgent {
	    name: "Simple Agent"
	    description: "A simple test agent"
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	if len(model.Agents) != 1 {
		t.Fatalf("len(model.Agents) = %d, want 1", len(model.Agents))
	}

	agent := model.Agents[0]
	if agent.Name != "SimpleAgent" {
		t.Errorf("Agent.Name = %q, want %q", agent.Name, "SimpleAgent")
	}
	if v, ok := agent.Property("name"); !ok || v != agentara.String("Simple Agent") {
		t.Errorf("Property(name) = %v, want %q", v, "Simple Agent")
	}
	if v, ok := agent.Property("description"); !ok || v != agentara.String("A simple test agent") {
		t.Errorf("Property(description) = %v, want %q", v, "A simple test agent")
	}
}

func TestParseMultipleAgentsPreservesOrder(t *testing.T) {
	src := `
	agent First { name: "1" }
	agent Second { name: "2" }
	agent Third { name: "3" }
	agent Fourth { name: "4" }
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	want := []string{"First", "Second", "Third", "Fourth"}
	if len(model.Agents) != len(want) {
		t.Fatalf("len(model.Agents) = %d, want %d", len(model.Agents), len(want))
	}
	for i, name := range want {
		if model.Agents[i].Name != name {
			t.Errorf("Agents[%d].Name = %q, want %q", i, model.Agents[i].Name, name)
		}
	}
}

func TestParseNumberCoercion(t *testing.T) {
	src := `
	agent NumericAgent {
	    temperature: 0.5
	    max_tokens: 1000
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	agent := model.Agents[0]
	if v, _ := agent.Property("temperature"); v != agentara.Float(0.5) {
		t.Errorf("Property(temperature) = %#v, want Float(0.5)", v)
	}
	if v, _ := agent.Property("max_tokens"); v != agentara.Int(1000) {
		t.Errorf("Property(max_tokens) = %#v, want Int(1000)", v)
	}
}

func TestParseBooleanIdentifiers(t *testing.T) {
	src := `agent A { enabled: true streaming: false mode: fast }`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	agent := model.Agents[0]
	if v, _ := agent.Property("enabled"); v != agentara.Bool(true) {
		t.Errorf("Property(enabled) = %#v, want Bool(true)", v)
	}
	if v, _ := agent.Property("streaming"); v != agentara.Bool(false) {
		t.Errorf("Property(streaming) = %#v, want Bool(false)", v)
	}
	if v, _ := agent.Property("mode"); v != agentara.Ident("fast") {
		t.Errorf("Property(mode) = %#v, want Ident(fast)", v)
	}
}

func TestParseWithComments(t *testing.T) {
	src := `
	// leading comment
	agent Commented {
	    name: "Agent" // trailing comment
	    // interior comment
	    description: "x"
	}
	// final comment`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(model.Agents) != 1 {
		t.Fatalf("len(model.Agents) = %d, want 1", len(model.Agents))
	}
	if len(model.Agents[0].Properties) != 2 {
		t.Errorf("len(Properties) = %d, want 2", len(model.Agents[0].Properties))
	}
}

func TestParseEmptyAgentBody(t *testing.T) {
	model, err := testParser().Parse(`agent Empty { }`)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	agent := model.Agents[0]
	if agent.Name != "Empty" {
		t.Errorf("Agent.Name = %q, want %q", agent.Name, "Empty")
	}
	if len(agent.Properties) != 0 {
		t.Errorf("len(Properties) = %d, want 0", len(agent.Properties))
	}
}

func TestParseCapabilities(t *testing.T) {
	src := `
	agent Assistant {
	    name: "Assistant"

	    capabilities [
	        natural_language_processing,
	        code_generation(language("python")),
	        data_analysis
	    ]
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	caps := model.Agents[0].Capabilities
	if len(caps) != 3 {
		t.Fatalf("len(Capabilities) = %d, want 3", len(caps))
	}
	if caps[0].Name != "natural_language_processing" || len(caps[0].Args) != 0 {
		t.Errorf("Capabilities[0] = %q with %d args, want natural_language_processing with 0", caps[0].Name, len(caps[0].Args))
	}
	if caps[1].Name != "code_generation" || len(caps[1].Args) != 1 {
		t.Fatalf("Capabilities[1] = %q with %d args, want code_generation with 1", caps[1].Name, len(caps[1].Args))
	}
	call, ok := caps[1].Args[0].(agentara.Call)
	if !ok {
		t.Fatalf("Capabilities[1].Args[0] is %T, want Call", caps[1].Args[0])
	}
	if call.Name != "language" || len(call.Args) != 1 || call.Args[0] != agentara.String("python") {
		t.Errorf("nested call = %v, want language(\"python\")", call)
	}
}

func TestParseCapabilityMissingSeparator(t *testing.T) {
	_, err := testParser().Parse(`agent A { capabilities [a b] }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if len(synErr.Expected) != 2 {
		t.Errorf("Expected = %v, want [',' ']']", synErr.Expected)
	}
	if !strings.Contains(err.Error(), "','") {
		t.Errorf("error %q does not mention the missing comma", err)
	}
}

func TestParseComplexCapabilityArguments(t *testing.T) {
	src := `
	agent AdvancedAgent {
	    name: "Advanced Agent"

	    capabilities [
	        code_generation(
	            language("python"),
	            style("pep8"),
	            max_lines(1000)
	        ),
	        api_integration(
	            protocol("rest"),
	            auth("oauth2")
	        ),
	        data_processing
	    ]
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	caps := model.Agents[0].Capabilities
	if len(caps) != 3 {
		t.Fatalf("len(Capabilities) = %d, want 3", len(caps))
	}
	if caps[0].Name != "code_generation" || len(caps[0].Args) != 3 {
		t.Errorf("Capabilities[0] = %q with %d args, want code_generation with 3", caps[0].Name, len(caps[0].Args))
	}
	maxLines, ok := caps[0].Args[2].(agentara.Call)
	if !ok || maxLines.Args[0] != agentara.Int(1000) {
		t.Errorf("max_lines arg = %#v, want Call with Int(1000)", caps[0].Args[2])
	}
}

func TestParseParameters(t *testing.T) {
	src := `
	agent Configured {
	    name: "Configured"

	    parameters {
	        model: "gpt-4"
	        temperature: 0.7
	        max_tokens: 2000
	        api_key: required
	    }
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	params := model.Agents[0].Parameters
	if len(params) != 4 {
		t.Fatalf("len(Parameters) = %d, want 4", len(params))
	}
	if params[0].Name != "model" || params[0].Value != agentara.String("gpt-4") {
		t.Errorf("Parameters[0] = %v, want model: \"gpt-4\"", params[0])
	}
	if params[3].Name != "api_key" || !params[3].Required || params[3].Value != nil {
		t.Errorf("Parameters[3] = %+v, want api_key required with no value", params[3])
	}
}

func TestParseRules(t *testing.T) {
	src := `
	agent Ruled {
	    name: "Ruled"

	    rules {
	        on_error: retry(3)
	        rate_limit: 100/hour
	        timeout: 60
	    }
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	rules := model.Agents[0].Rules
	if len(rules) != 3 {
		t.Fatalf("len(Rules) = %d, want 3", len(rules))
	}

	call, ok := rules[0].Value.(agentara.Call)
	if !ok || call.Name != "retry" || call.Args[0] != agentara.Int(3) {
		t.Errorf("Rules[0].Value = %#v, want retry(3)", rules[0].Value)
	}
	limit, ok := rules[1].Value.(agentara.RateLimit)
	if !ok || limit.Count != 100 || limit.Period != agentara.PerHour {
		t.Errorf("Rules[1].Value = %#v, want 100/hour", rules[1].Value)
	}
	if rules[2].Value != agentara.Int(60) {
		t.Errorf("Rules[2].Value = %#v, want Int(60)", rules[2].Value)
	}
}

func TestParseRateLimit(t *testing.T) {
	model, err := testParser().Parse(`agent A { rules { rate_limit: 10/minute } }`)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	limit, ok := model.Agents[0].Rules[0].Value.(agentara.RateLimit)
	if !ok {
		t.Fatalf("rule value is %T, want RateLimit", model.Agents[0].Rules[0].Value)
	}
	if limit.Count != 10 {
		t.Errorf("RateLimit.Count = %d, want 10", limit.Count)
	}
	if limit.Period != agentara.PerMinute {
		t.Errorf("RateLimit.Period = %q, want %q", limit.Period, agentara.PerMinute)
	}
}

func TestParseRateLimitInvalidPeriod(t *testing.T) {
	_, err := testParser().Parse(`agent A { rules { rate_limit: 10/week } }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if !strings.Contains(err.Error(), "'minute'") {
		t.Errorf("error %q does not list the accepted periods", err)
	}
}

func TestParseRateLimitDecimalCount(t *testing.T) {
	_, err := testParser().Parse(`agent A { rules { rate_limit: 2.5/minute } }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if !strings.Contains(err.Error(), "integer rate-limit count") {
		t.Errorf("error %q does not explain the whole-number requirement", err)
	}
	if synErr.Found != "number 2.5" {
		t.Errorf("Found = %q, want %q", synErr.Found, "number 2.5")
	}
}

func TestParseRuleFloatLiteral(t *testing.T) {
	model, err := testParser().Parse(`agent A { rules { backoff: 1.5 } }`)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if v := model.Agents[0].Rules[0].Value; v != agentara.Float(1.5) {
		t.Errorf("Rules[0].Value = %#v, want Float(1.5)", v)
	}
}

func TestParseWorkflow(t *testing.T) {
	src := `
	agent DataFetcher { name: "Data Fetcher" capabilities [fetch_data] }
	agent DataCleaner { name: "Data Cleaner" capabilities [clean_data, validate_data] }
	agent DataAnalyzer { name: "Data Analyzer" capabilities [analyze_data, generate_report] }

	workflow DataProcessingPipeline {
	    agents: [DataFetcher, DataCleaner, DataAnalyzer]

	    flow {
	        DataFetcher -> DataCleaner
	        DataCleaner -> DataAnalyzer
	    }
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	if len(model.Agents) != 3 {
		t.Fatalf("len(model.Agents) = %d, want 3", len(model.Agents))
	}
	if len(model.Workflows) != 1 {
		t.Fatalf("len(model.Workflows) = %d, want 1", len(model.Workflows))
	}

	wf := model.Workflows[0]
	if wf.Name != "DataProcessingPipeline" {
		t.Errorf("Workflow.Name = %q, want %q", wf.Name, "DataProcessingPipeline")
	}
	wantAgents := []string{"DataFetcher", "DataCleaner", "DataAnalyzer"}
	for i, name := range wantAgents {
		if wf.Agents[i] != name {
			t.Errorf("Workflow.Agents[%d] = %q, want %q", i, wf.Agents[i], name)
		}
	}
	if len(wf.Flow) != 2 {
		t.Fatalf("len(Workflow.Flow) = %d, want 2", len(wf.Flow))
	}
	if wf.Flow[0] != (agentara.FlowEdge{From: "DataFetcher", To: "DataCleaner"}) {
		t.Errorf("Flow[0] = %+v, want DataFetcher -> DataCleaner", wf.Flow[0])
	}
}

func TestParseWorkflowWithoutFlow(t *testing.T) {
	src := `
	agent A { name: "A" }
	workflow Solo { agents: [A] }
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(model.Workflows[0].Flow) != 0 {
		t.Errorf("Flow = %v, want empty", model.Workflows[0].Flow)
	}
}

func TestParseWorkflowUnknownAgent(t *testing.T) {
	src := `
	agent ExistingAgent { name: "Existing Agent" }

	workflow TestWorkflow {
	    agents: [ExistingAgent, NonExistentAgent]
	}
	`
	_, err := testParser().Parse(src)
	if err == nil {
		t.Fatal("Parse() succeeded, want reference error")
	}

	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error is %T, want *ReferenceError", err)
	}
	if refErr.Name != "NonExistentAgent" {
		t.Errorf("ReferenceError.Name = %q, want %q", refErr.Name, "NonExistentAgent")
	}
	if refErr.Workflow != "TestWorkflow" {
		t.Errorf("ReferenceError.Workflow = %q, want %q", refErr.Workflow, "TestWorkflow")
	}
	if !strings.Contains(err.Error(), "NonExistentAgent") {
		t.Errorf("error %q does not name the missing agent", err)
	}
}

func TestParseFlowUnknownAgent(t *testing.T) {
	src := `
	agent A { name: "A" }
	agent B { name: "B" }

	workflow W {
	    agents: [A, B]
	    flow { A -> Ghost }
	}
	`
	_, err := testParser().Parse(src)
	if err == nil {
		t.Fatal("Parse() succeeded, want reference error")
	}
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error is %T, want *ReferenceError", err)
	}
	if refErr.Name != "Ghost" || refErr.Reason != ReasonUnknownAgent {
		t.Errorf("ReferenceError = %+v, want unknown agent Ghost", refErr)
	}
}

func TestParseFlowUnlistedAgent(t *testing.T) {
	src := `
	agent A { name: "A" }
	agent B { name: "B" }

	workflow W {
	    agents: [A]
	    flow { A -> B }
	}
	`
	_, err := testParser().Parse(src)
	if err == nil {
		t.Fatal("Parse() succeeded, want reference error")
	}
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error is %T, want *ReferenceError", err)
	}
	if refErr.Name != "B" || refErr.Reason != ReasonUnlistedFlowAgent {
		t.Errorf("ReferenceError = %+v, want unlisted flow agent B", refErr)
	}
}

func TestParseDuplicateAgent(t *testing.T) {
	src := `
	agent Twin { name: "first" }
	agent Twin { name: "second" }
	`
	_, err := testParser().Parse(src)
	if err == nil {
		t.Fatal("Parse() succeeded, want reference error")
	}
	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("error is %T, want *ReferenceError", err)
	}
	if refErr.Name != "Twin" || refErr.Reason != ReasonDuplicateAgent {
		t.Errorf("ReferenceError = %+v, want duplicate agent Twin", refErr)
	}
}

func TestParseSyntaxErrorPosition(t *testing.T) {
	_, err := testParser().Parse("agent A {\n  x 1\n}")
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if synErr.Line != 2 || synErr.Column != 5 {
		t.Errorf("position = %d:%d, want 2:5", synErr.Line, synErr.Column)
	}
	if !strings.Contains(err.Error(), "':'") {
		t.Errorf("error %q does not mention the expected colon", err)
	}
}

func TestParseUnexpectedEndOfInput(t *testing.T) {
	_, err := testParser().Parse(`agent Unclosed { name: "x" `)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("errors.Is(err, ErrUnexpectedEOF) = false for %v", err)
	}
}

func TestParseInvalidTopLevel(t *testing.T) {
	_, err := testParser().Parse(`widget W { }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	want := []string{"'agent'", "'workflow'"}
	if len(synErr.Expected) != len(want) || synErr.Expected[0] != want[0] || synErr.Expected[1] != want[1] {
		t.Errorf("Expected = %v, want %v", synErr.Expected, want)
	}
}

func TestParseSimpleGrammar(t *testing.T) {
	p := &Parser{Registry: agentara.NewRegistry(), Grammar: GrammarSimple}

	src := `
	agent CompleteAgent {
	    name: "Complete Agent"
	    description: "An agent with all properties"
	    system_prompt: "You are a helpful assistant."
	    model_provider: "openai"
	    model_name: "gpt-4"
	    temperature: 0.7
	    max_tokens: 2000
	}
	`
	model, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(model.Agents[0].Properties) != 7 {
		t.Errorf("len(Properties) = %d, want 7", len(model.Agents[0].Properties))
	}
}

func TestParseSimpleGrammarRejectsUnknownProperty(t *testing.T) {
	p := &Parser{Registry: agentara.NewRegistry(), Grammar: GrammarSimple}

	_, err := p.Parse(`agent A { custom_field: 1 }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("error is %T, want *SyntaxError", err)
	}
	if !strings.Contains(err.Error(), "'name'") {
		t.Errorf("error %q does not list the accepted property keywords", err)
	}
}

func TestParseSimpleGrammarRejectsWorkflow(t *testing.T) {
	p := &Parser{Registry: agentara.NewRegistry(), Grammar: GrammarSimple}

	src := `
	agent A { name: "A" }
	workflow W { agents: [A] }
	`
	_, err := p.Parse(src)
	if err == nil {
		t.Fatal("Parse() succeeded, want syntax error")
	}
}

func TestParseRunsModelProcessors(t *testing.T) {
	reg := agentara.NewRegistry()
	calls := 0
	reg.RegisterModelProcessor(func(m *agentara.Model) error {
		calls++
		m.SetAttr("agent_count", len(m.Agents))
		return nil
	})
	p := &Parser{Registry: reg}

	src := `
	agent One { name: "One" }
	agent Two { name: "Two" }
	agent Three { name: "Three" }
	`
	model, err := p.Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	if calls != 1 {
		t.Errorf("processor ran %d times, want 1", calls)
	}
	if v, ok := model.Attr("agent_count"); !ok || v != 3 {
		t.Errorf("Attr(agent_count) = %v, want 3", v)
	}
}

func TestParseModelProcessorFailure(t *testing.T) {
	reg := agentara.NewRegistry()
	reg.RegisterModelProcessor(func(m *agentara.Model) error {
		return errors.New("processor rejected model")
	})
	p := &Parser{Registry: reg}

	_, err := p.Parse(`agent A { name: "A" }`)
	if err == nil {
		t.Fatal("Parse() succeeded, want processor error")
	}
	if !strings.Contains(err.Error(), "processor rejected model") {
		t.Errorf("error %q does not carry the processor message", err)
	}
}

func TestParseFullDefinition(t *testing.T) {
	src := `
	agent AIAssistant {
	    name: "AI Assistant"
	    description: "A helpful AI assistant"
	    version: "1.0.0"
	    author: "Test Team"

	    capabilities [
	        natural_language_processing,
	        code_generation(language("python")),
	        data_analysis
	    ]

	    parameters {
	        model: "gpt-4"
	        temperature: 0.7
	        max_tokens: 2000
	        api_key: required
	    }

	    rules {
	        on_error: retry(3)
	        rate_limit: 100/hour
	        timeout: 60
	    }
	}
	`
	model, err := testParser().Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}

	agent := model.Agents[0]
	if agent.Name != "AIAssistant" {
		t.Errorf("Agent.Name = %q, want %q", agent.Name, "AIAssistant")
	}
	if len(agent.Properties) != 4 {
		t.Errorf("len(Properties) = %d, want 4", len(agent.Properties))
	}
	if len(agent.Capabilities) != 3 {
		t.Errorf("len(Capabilities) = %d, want 3", len(agent.Capabilities))
	}
	if len(agent.Parameters) != 4 {
		t.Errorf("len(Parameters) = %d, want 4", len(agent.Parameters))
	}
	if len(agent.Rules) != 3 {
		t.Errorf("len(Rules) = %d, want 3", len(agent.Rules))
	}
}
