package lang

import "strconv"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindEOF marks the end of the token stream.
	KindEOF Kind = iota

	// KindIdent is an identifier: a letter or underscore followed by
	// letters, digits, and underscores.
	KindIdent

	// KindNumber is a numeric literal, decimal or hexadecimal.
	KindNumber

	// KindString is a quoted string literal written as @"...".
	// The literal text excludes the marker and quotes, with doubled
	// quotes already collapsed.
	KindString

	// KindOperator is one of the arithmetic operators + - * /.
	KindOperator

	// KindFunc is a named postfix function (currently only abs).
	KindFunc

	// KindLParen and the remaining kinds are structural punctuation.
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindComma

	// KindExprOpen and KindExprClose delimit a postfix expression
	// block: .{ ... }.
	KindExprOpen
	KindExprClose
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindIdent:
		return "identifier"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindOperator:
		return "operator"
	case KindFunc:
		return "function"
	case KindLParen:
		return "'('"
	case KindRParen:
		return "')'"
	case KindLBracket:
		return "'['"
	case KindRBracket:
		return "']'"
	case KindComma:
		return "','"
	case KindExprOpen:
		return "'.{'"
	case KindExprClose:
		return "'}.'"
	default:
		return "unknown"
	}
}

// Position locates a token within the source text.
// Line and Column are 1-based; Offset is the byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Token is a single lexeme with its source position.
// Tokens are immutable once produced by the lexer.
type Token struct {
	Kind Kind
	Lit  string
	Pos  Position
}

// String returns a representation suitable for diagnostics.
func (t Token) String() string {
	if t.Lit == "" {
		return t.Kind.String()
	}

	return t.Kind.String() + " " + strconv.Quote(t.Lit)
}
