package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds array nesting so adversarial input cannot
// exhaust the call stack.
const DefaultMaxDepth = 1000

// parser consumes a token stream and builds a Document, evaluating
// define statements and postfix expressions as it goes.
type parser struct {
	toks     []Token
	pos      int
	depth    int
	maxDepth int
	tab      *SymbolTable
	doc      *Document
}

func newParser(toks []Token, tab *SymbolTable, doc *Document, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &parser{
		toks:     toks,
		maxDepth: maxDepth,
		tab:      tab,
		doc:      doc,
	}
}

// parseDocument parses statements until end of input. The first
// malformed construct aborts the run; there is no error recovery.
func (p *parser) parseDocument() error {
	for p.cur().Kind != KindEOF {
		switch p.cur().Kind {
		case KindLParen:
			if err := p.parseDefine(); err != nil {
				return err
			}

		case KindIdent:
			if err := p.parseAssign(); err != nil {
				return err
			}

		default:
			return ErrUnexpectedToken.
				WithPosition(p.cur().Pos).
				With(
					slog.String("expected", "statement"),
					slog.String("got", p.cur().String()),
				)
		}
	}

	return nil
}

// parseDefine parses "(" "define" IDENT value_lit ")". The binding is
// installed before any later statement is parsed, since later expressions
// may reference it. The value is restricted to a plain string or number
// literal.
func (p *parser) parseDefine() error {
	open := p.next() // consume '('

	kw := p.cur()
	if kw.Kind != KindIdent || kw.Lit != "define" {
		return ErrMalformedDefine.
			WithPosition(kw.Pos).
			With(
				slog.String("expected", "define"),
				slog.String("got", kw.String()),
			)
	}

	p.next()

	name := p.cur()
	if name.Kind != KindIdent {
		return ErrMalformedDefine.
			WithPosition(name.Pos).
			With(
				slog.String("expected", "name"),
				slog.String("got", name.String()),
			)
	}

	p.next()

	var val Value

	switch lit := p.cur(); lit.Kind {
	case KindString:
		val = StringValue(lit.Lit)
		p.next()

	case KindNumber:
		n, err := parseNumber(lit)
		if err != nil {
			return err
		}

		val = NumberValue(n)
		p.next()

	default:
		return ErrMalformedDefine.
			WithPosition(p.cur().Pos).
			With(
				slog.String("expected", "string or number literal"),
				slog.String("got", p.cur().String()),
			)
	}

	if p.cur().Kind != KindRParen {
		return ErrUnmatchedBracket.
			WithPosition(open.Pos).
			With(slog.String("expected", ")"))
	}

	p.next()

	p.tab.Define(name.Lit, val)

	return nil
}

// parseAssign parses IDENT value and appends the pair to the document.
func (p *parser) parseAssign() error {
	key := p.next()

	val, err := p.parseValue()
	if err != nil {
		return err
	}

	p.doc.Set(key.Lit, val)

	return nil
}

// parseValue parses a single value: a literal, an array, a postfix
// expression block, or a bare identifier resolved through the symbol
// table.
func (p *parser) parseValue() (Value, error) {
	tok := p.cur()

	switch tok.Kind {
	case KindString:
		p.next()

		return StringValue(tok.Lit), nil

	case KindNumber:
		n, err := parseNumber(tok)
		if err != nil {
			return Value{}, err
		}

		p.next()

		return NumberValue(n), nil

	case KindLBracket:
		return p.parseArray()

	case KindExprOpen:
		return p.parseExpr()

	case KindIdent:
		p.next()

		v, ok := p.tab.Resolve(tok.Lit)
		if !ok {
			return Value{}, undefinedSymbol(tok, p.tab)
		}

		return v, nil

	default:
		return Value{}, ErrUnexpectedToken.
			WithPosition(tok.Pos).
			With(
				slog.String("expected", "value"),
				slog.String("got", tok.String()),
			)
	}
}

// parseArray parses "[" (value ("," value)*)? "]". Elements may be of
// mixed kinds; no uniformity is enforced.
func (p *parser) parseArray() (Value, error) {
	open := p.next() // consume '['

	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		return Value{}, ErrMaxDepthExceeded.
			WithPosition(open.Pos).
			With(slog.Int("max_depth", p.maxDepth))
	}

	var elems []Value

	if p.cur().Kind != KindRBracket {
		for {
			v, err := p.parseValue()
			if err != nil {
				return Value{}, err
			}

			elems = append(elems, v)

			if p.cur().Kind != KindComma {
				break
			}

			p.next()
		}
	}

	if p.cur().Kind != KindRBracket {
		return Value{}, ErrUnmatchedBracket.
			WithPosition(open.Pos).
			With(
				slog.String("expected", "]"),
				slog.String("got", p.cur().String()),
			)
	}

	p.next()

	return ArrayValue(elems...), nil
}

// parseExpr collects the token run of one ".{ ... }." block and hands it
// to the postfix evaluator, substituting the resulting scalar for the
// expression. The lexer guarantees the delimiters are matched.
func (p *parser) parseExpr() (Value, error) {
	open := p.next() // consume '.{'

	start := p.pos
	for p.cur().Kind != KindExprClose {
		// KindEOF cannot occur here: Scan rejects unmatched delimiters.
		p.next()
	}

	run := p.toks[start:p.pos]

	p.next() // consume '}.'

	v, err := evalPostfix(p.tab, run, open.Pos)
	if err != nil {
		return Value{}, err
	}

	return v, nil
}

// cur returns the current token without consuming it.
func (p *parser) cur() Token { return p.toks[p.pos] }

// next consumes and returns the current token.
func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != KindEOF {
		p.pos++
	}

	return tok
}

// parseNumber converts a number token to its numeric value.
// Hexadecimal literals (0x...) convert as integers.
func parseNumber(tok Token) (float64, error) {
	lit := tok.Lit

	neg := false

	if strings.HasPrefix(lit, "+") || strings.HasPrefix(lit, "-") {
		neg = lit[0] == '-'
		lit = lit[1:]
	}

	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		u, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			return 0, ErrInvalidCharacter.
				WithPosition(tok.Pos).
				Wrap(err)
		}

		n := float64(u)
		if neg {
			n = -n
		}

		return n, nil
	}

	n, err := strconv.ParseFloat(tok.Lit, 64)
	if err != nil {
		return 0, ErrInvalidCharacter.
			WithPosition(tok.Pos).
			Wrap(err)
	}

	return n, nil
}
