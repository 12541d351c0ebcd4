// Package dsl parses the Agentara definition language.
//
// The language declares agents and optional workflows:
//
//	// An assistant with structured capabilities.
//	agent Assistant {
//	    name: "Assistant"
//	    model_name: "gpt-4"
//
//	    capabilities [
//	        search_web,
//	        code_generation(language("python"))
//	    ]
//
//	    parameters {
//	        api_key: required
//	        temperature: 0.7
//	    }
//
//	    rules {
//	        on_error: retry(3)
//	        rate_limit: 100/hour
//	    }
//	}
//
//	workflow Pipeline {
//	    agents: [Assistant, Reviewer]
//
//	    flow {
//	        Assistant -> Reviewer
//	    }
//	}
//
// Parsing is a deterministic single pass with one token of lookahead: lex,
// parse, transform into the agentara semantic model, then resolve workflow
// references against the declared agents. Malformed input yields a
// *SyntaxError with line, column, and the accepted token set; a workflow
// naming an undeclared agent yields a *ReferenceError. Empty input is valid
// and produces an empty model.
//
// Two grammar variants share the semantic model. GrammarFull (the default)
// accepts open property names plus capability, parameter, rule, and workflow
// blocks. GrammarSimple restricts agents to a fixed property keyword set and
// has no nested blocks.
//
// Format re-serializes a model to grammar text; reparsing Format's output
// reproduces the model field for field. LoadString and LoadFile wrap the
// parse-then-validate pipeline.
package dsl
