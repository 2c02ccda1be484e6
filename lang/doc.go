// Package lang implements a compiler for a small configuration language
// that evaluates to ordered JSON documents.
//
// A source file is a sequence of statements. Each statement either binds a
// symbol with define, or assigns a value to a document key:
//
//	(define HOST @"localhost")
//	(define PORT 8080)
//
//	host HOST
//	port PORT
//	url_ttl .{PORT 1000 /}.
//	tags [@"web", @"prod", [1, 2]]
//
// Compiling that source produces a JSON object whose keys appear in the
// order they were first assigned.
//
// # Grammar
//
// Informal EBNF:
//
//	Document   → Statement* EOF
//	Statement  → Define | Assign
//	Define     → '(' 'define' Identifier (String | Number) ')'
//	Assign     → Identifier Value
//	Value      → String | Number | Identifier | Array | Expr
//	Array      → '[' (Value (',' Value)*)? ']'
//	Expr       → '.{' Postfix* '}.'
//	Postfix    → Number | String | Identifier | '+' | '-' | '*' | '/' | 'abs'
//
// Strings are written @"..." with embedded quotes escaped by doubling
// ("" yields "). Numbers are signed decimals with at most one decimal
// point, or hexadecimal with the 0x prefix. Comments run from % to end of
// line, or span lines between <# and #>.
//
// # Expressions
//
// Expression blocks use postfix (reverse Polish) notation evaluated over
// an operand stack. Operators pop two values, functions pop one, and the
// block must reduce to exactly one value:
//
//	.{2 3 +}.        % 5
//	.{10 2 /}.       % 5 (floor division when both operands are integral)
//	.{-7 abs}.       % 7
//	.{@"a" @"b" +}.  % "ab" (+ concatenates when either operand is a string)
//
// Identifiers inside expressions resolve against the symbol table built by
// define statements. An unresolvable identifier is an error that includes
// suggestions for similarly named symbols.
//
// # Entry points
//
// [CompileString] compiles a complete source text. [CompileReader] does
// the same from an io.Reader and caches compiled documents by content
// hash, so identical content compiles once even across goroutines.
// [Session] supports incremental compilation for interactive use, keeping
// the symbol table and document alive between inputs.
//
// # Errors
//
// All failures derive from the package's sentinel errors (for example
// [ErrUndefinedSymbol], [ErrDivisionByZero]) and satisfy errors.Is.
// Errors carry source positions; [FormatDiagnostic] renders them against
// the source with a caret marking the offending column.
package lang
