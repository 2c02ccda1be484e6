package lang

import (
	"log/slog"
	"math"
)

// evalPostfix evaluates the ordered token run inside one expression block
// using an explicit operand stack, left to right, with no precedence
// rules. The result is a single scalar: a number, or a string when the +
// operator concatenated string operands.
//
// The stack is an explicit data structure rather than recursion so the
// underflow and leftover conditions stay directly testable.
func evalPostfix(tab *SymbolTable, run []Token, pos Position) (Value, error) {
	stack := make([]Value, 0, len(run))

	for _, tok := range run {
		switch tok.Kind {
		case KindNumber:
			n, err := parseNumber(tok)
			if err != nil {
				return Value{}, err
			}

			stack = append(stack, NumberValue(n))

		case KindString:
			stack = append(stack, StringValue(tok.Lit))

		case KindIdent:
			v, ok := tab.Resolve(tok.Lit)
			if !ok {
				return Value{}, undefinedSymbol(tok, tab)
			}

			stack = append(stack, v)

		case KindOperator:
			if len(stack) < 2 {
				return Value{}, ErrStackUnderflow.
					WithPosition(tok.Pos).
					With(
						slog.String("operator", tok.Lit),
						slog.Int("operands", len(stack)),
					)
			}

			// Right operand is popped first.
			b := stack[len(stack)-1]
			a := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			v, err := applyOperator(tok, a, b)
			if err != nil {
				return Value{}, err
			}

			stack = append(stack, v)

		case KindFunc:
			if len(stack) < 1 {
				return Value{}, ErrStackUnderflow.
					WithPosition(tok.Pos).
					With(slog.String("function", tok.Lit))
			}

			arg := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			v, err := applyFunc(tok, arg)
			if err != nil {
				return Value{}, err
			}

			stack = append(stack, v)

		default:
			return Value{}, ErrMalformedExpression.
				WithPosition(tok.Pos).
				With(slog.String("got", tok.String()))
		}
	}

	// Exactly one value must remain.
	if len(stack) != 1 {
		return Value{}, ErrMalformedExpression.
			WithPosition(pos).
			With(slog.Int("remaining", len(stack)))
	}

	return stack[0], nil
}

// applyOperator applies one of + - * / to two scalar operands.
// The + operator concatenates when either operand is a string; the other
// operators require numbers. Division of two integral operands is integer
// (floor) division; otherwise it divides exactly.
func applyOperator(tok Token, a, b Value) (Value, error) {
	op := tok.Lit

	if op == "+" && (a.Kind == ValueString || b.Kind == ValueString) {
		return StringValue(a.text() + b.text()), nil
	}

	if a.Kind != ValueNumber || b.Kind != ValueNumber {
		return Value{}, ErrInvalidOperand.
			WithPosition(tok.Pos).
			With(
				slog.String("operator", op),
				slog.String("left", a.Kind.String()),
				slog.String("right", b.Kind.String()),
			)
	}

	switch op {
	case "+":
		return NumberValue(a.Num + b.Num), nil

	case "-":
		return NumberValue(a.Num - b.Num), nil

	case "*":
		return NumberValue(a.Num * b.Num), nil

	case "/":
		if b.Num == 0 {
			return Value{}, ErrDivisionByZero.WithPosition(tok.Pos)
		}

		q := a.Num / b.Num
		if a.isIntegral() && b.isIntegral() {
			q = math.Floor(q)
		}

		return NumberValue(q), nil

	default:
		return Value{}, ErrUnknownOperator.
			WithPosition(tok.Pos).
			With(slog.String("operator", op))
	}
}

// applyFunc applies a named postfix function to its single operand.
func applyFunc(tok Token, arg Value) (Value, error) {
	switch tok.Lit {
	case "abs":
		if arg.Kind != ValueNumber {
			return Value{}, ErrInvalidOperand.
				WithPosition(tok.Pos).
				With(
					slog.String("function", tok.Lit),
					slog.String("operand", arg.Kind.String()),
				)
		}

		return NumberValue(math.Abs(arg.Num)), nil

	default:
		return Value{}, ErrUnknownOperator.
			WithPosition(tok.Pos).
			With(slog.String("function", tok.Lit))
	}
}

// undefinedSymbol builds the resolution failure for tok, attaching
// similarly named bindings when any exist.
func undefinedSymbol(tok Token, tab *SymbolTable) *Error {
	err := ErrUndefinedSymbol.
		WithPosition(tok.Pos).
		With(slog.String("symbol", tok.Lit))

	if similar := similarSymbols(tok.Lit, tab.Names()); len(similar) > 0 {
		err = err.With(slog.Any("similar", similar))
	}

	return err
}
