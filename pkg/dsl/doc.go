/*
Package dsl parses the state machine definition language embedded in host source files.

A block body looks like this:

	derive(Debug)
	CircuitBreaker(Closed)

	Closed(Unsuccessful) => Open [SetupTimer],
	Open(TimerTriggered) => HalfOpen,
	HalfOpen => {
		Successful => Closed,
		Unsuccessful => Open [SetupTimer],
	}

The package is layered like a classic hand-written front end:

  - Lexer: turns host source text into token trees (identifiers, punctuation, literals and
    delimited groups), skipping whitespace and comments.
  - Parser: consumes the token trees of one block according to the grammar and builds a
    domain.StateMachineDef. Any mismatch aborts with a *SyntaxError naming the expected
    construct and the token found.
  - Builder: a fluent API producing the same model in code.

Usage:

	def, err := dsl.ParseString(body)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(def.Name, def.InitialState, len(def.Transitions))

The grammar:

	block             := attribute* IDENT '(' IDENT ')' (transition_group ','?)*
	attribute         := OPTION ('(' ANY* ')')? | IDENT | '#' '[' ANY* ']'
	transition_group  := IDENT '(' IDENT ')' '=>' target
	                   | IDENT '=>' '{' inline_transition* '}'
	inline_transition := IDENT '=>' target ','?
	target            := IDENT ('[' IDENT ']')?

OPTION is one of derive, repr, repr_c or pub. A bare IDENT is an attribute only when another
IDENT follows it, so the first IDENT followed by '(' that is not an OPTION names the machine.
*/
package dsl
