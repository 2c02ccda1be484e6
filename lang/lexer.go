package lang

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer scans source text into a token stream.
type lexer struct {
	input []byte
	pos   int
	line  int
	col   int
}

// Scan tokenizes the full source text, or fails on the first lexical
// error. Comments and whitespace are consumed; the returned stream always
// ends with a KindEOF token. Expression delimiters .{ and }. must be
// matched pairs.
func Scan(source string) ([]Token, error) {
	l := &lexer{input: []byte(source), line: 1, col: 1}

	return l.scan()
}

func (l *lexer) scan() ([]Token, error) {
	var toks []Token

	depth := 0 // open .{ blocks

	for {
		if err := l.skipSpaceAndComments(); err != nil {
			return nil, err
		}

		if l.eof() {
			break
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindExprOpen:
			depth++
		case KindExprClose:
			if depth == 0 {
				return nil, ErrUnmatchedExprDelimiter.
					WithPosition(tok.Pos).
					With(slog.String("delimiter", "}."))
			}

			depth--
		}

		toks = append(toks, tok)
	}

	if depth > 0 {
		return nil, ErrUnmatchedExprDelimiter.
			WithPosition(l.position()).
			With(slog.String("delimiter", ".{"))
	}

	return append(toks, Token{Kind: KindEOF, Pos: l.position()}), nil
}

// next scans one token. The caller has already skipped leading whitespace
// and comments, so the current character begins a token.
func (l *lexer) next() (Token, error) {
	pos := l.position()
	ch := l.peek()

	switch {
	case ch == '.' && l.peekN(2) == ".{":
		l.advance()
		l.advance()

		return Token{Kind: KindExprOpen, Lit: ".{", Pos: pos}, nil

	case ch == '}' && l.peekN(2) == "}.":
		l.advance()
		l.advance()

		return Token{Kind: KindExprClose, Lit: "}.", Pos: pos}, nil

	case ch == '@':
		return l.scanString(pos)

	case ch == '(':
		l.advance()

		return Token{Kind: KindLParen, Lit: "(", Pos: pos}, nil

	case ch == ')':
		l.advance()

		return Token{Kind: KindRParen, Lit: ")", Pos: pos}, nil

	case ch == '[':
		l.advance()

		return Token{Kind: KindLBracket, Lit: "[", Pos: pos}, nil

	case ch == ']':
		l.advance()

		return Token{Kind: KindRBracket, Lit: "]", Pos: pos}, nil

	case ch == ',':
		l.advance()

		return Token{Kind: KindComma, Lit: ",", Pos: pos}, nil

	case isDigit(ch):
		return l.scanNumber(pos)

	case (ch == '+' || ch == '-') && isDigit(l.peekAt(1)):
		// A sign directly followed by a digit is a signed number
		// literal, not an operator.
		return l.scanNumber(pos)

	case ch == '+' || ch == '-' || ch == '*' || ch == '/':
		l.advance()

		return Token{Kind: KindOperator, Lit: string(ch), Pos: pos}, nil

	case isIdentStart(ch):
		return l.scanIdent(pos), nil

	default:
		return Token{}, ErrInvalidCharacter.
			WithPosition(pos).
			With(slog.String("character", string(ch)))
	}
}

// scanString scans a quoted string literal @"...". A doubled quote ""
// inside the literal denotes a single literal quote; there are no
// backslash escapes.
func (l *lexer) scanString(pos Position) (Token, error) {
	l.advance() // skip '@'

	if l.peek() != '"' {
		return Token{}, ErrInvalidCharacter.
			WithPosition(pos).
			With(slog.String("character", "@"))
	}

	l.advance() // skip opening quote

	var sb strings.Builder

	for !l.eof() {
		ch := l.peek()

		if ch == '"' {
			if l.peekN(2) == `""` {
				sb.WriteByte('"')
				l.advance()
				l.advance()

				continue
			}

			l.advance() // skip closing quote

			return Token{Kind: KindString, Lit: sb.String(), Pos: pos}, nil
		}

		sb.WriteRune(ch)
		l.advance()
	}

	return Token{}, ErrUnterminatedString.WithPosition(pos)
}

// scanNumber scans a decimal literal with optional leading sign and at
// most one decimal point, or a hexadecimal literal 0x....
func (l *lexer) scanNumber(pos Position) (Token, error) {
	start := l.pos

	if ch := l.peek(); ch == '+' || ch == '-' {
		l.advance()
	}

	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.advance()
		l.advance()

		digits := 0
		for isHexDigit(l.peek()) {
			l.advance()

			digits++
		}

		if digits == 0 {
			return Token{}, ErrInvalidCharacter.
				WithPosition(pos).
				With(slog.String("character", string(l.input[start:l.pos])))
		}

		return Token{Kind: KindNumber, Lit: string(l.input[start:l.pos]), Pos: pos}, nil
	}

	for isDigit(l.peek()) {
		l.advance()
	}

	// One decimal point, only when followed by a digit; a bare trailing
	// dot would collide with the .{ delimiter.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Kind: KindNumber, Lit: string(l.input[start:l.pos]), Pos: pos}, nil
}

// scanIdent scans an identifier and classifies the reserved function
// names.
func (l *lexer) scanIdent(pos Position) Token {
	start := l.pos

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	lit := string(l.input[start:l.pos])

	kind := KindIdent
	if lit == "abs" {
		kind = KindFunc
	}

	return Token{Kind: kind, Lit: lit, Pos: pos}
}

// skipSpaceAndComments consumes whitespace, % line comments, and <# #>
// multi-line comments.
func (l *lexer) skipSpaceAndComments() error {
	for {
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		if l.eof() {
			return nil
		}

		if l.peek() == '%' {
			l.skipLineComment()

			continue
		}

		if l.peek() == '<' && l.peekN(2) == "<#" {
			if err := l.skipMultiComment(); err != nil {
				return err
			}

			continue
		}

		return nil
	}
}

func (l *lexer) skipLineComment() {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}

	if !l.eof() {
		l.advance() // skip '\n'
	}
}

func (l *lexer) skipMultiComment() error {
	pos := l.position()

	l.advance() // skip '<'
	l.advance() // skip '#'

	for !l.eof() {
		if l.peek() == '#' && l.peekN(2) == "#>" {
			l.advance()
			l.advance()

			return nil
		}

		l.advance()
	}

	return ErrUnterminatedComment.WithPosition(pos)
}

// Helper methods

func (l *lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

// peekAt returns the rune n bytes ahead of the current position.
// It is only meaningful for ASCII lookahead.
func (l *lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos+n:])

	return r
}

func (l *lexer) peekN(n int) string {
	if l.pos+n > len(l.input) {
		return string(l.input[l.pos:])
	}

	return string(l.input[l.pos : l.pos+n])
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
