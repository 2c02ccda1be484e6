package lang

import (
	"errors"
	"testing"
)

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}

	return out
}

func TestScan_Statement(t *testing.T) {
	toks, err := Scan(`port 8080`)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []Kind{KindIdent, KindNumber, KindEOF}
	got := kinds(toks)

	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	if toks[0].Lit != "port" {
		t.Errorf("expected literal 'port', got %q", toks[0].Lit)
	}

	if toks[1].Lit != "8080" {
		t.Errorf("expected literal '8080', got %q", toks[1].Lit)
	}
}

func TestScan_String(t *testing.T) {
	toks, err := Scan(`name @"hello world"`)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[1].Kind != KindString {
		t.Fatalf("expected string token, got %v", toks[1].Kind)
	}

	if toks[1].Lit != "hello world" {
		t.Errorf("expected 'hello world', got %q", toks[1].Lit)
	}
}

func TestScan_StringDoubledQuote(t *testing.T) {
	toks, err := Scan(`quote @"say ""hi"" now"`)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[1].Lit != `say "hi" now` {
		t.Errorf(`expected 'say "hi" now', got %q`, toks[1].Lit)
	}
}

func TestScan_UnterminatedString(t *testing.T) {
	_, err := Scan(`name @"oops`)
	if !errors.Is(err, ErrUnterminatedString) {
		t.Fatalf("expected ErrUnterminatedString, got %v", err)
	}
}

func TestScan_Numbers(t *testing.T) {
	cases := []struct {
		input string
		lit   string
	}{
		{"k 42", "42"},
		{"k -17", "-17"},
		{"k +9", "+9"},
		{"k 3.14", "3.14"},
		{"k -0.5", "-0.5"},
		{"k 0xFF", "0xFF"},
	}

	for _, tc := range cases {
		toks, err := Scan(tc.input)
		if err != nil {
			t.Fatalf("%q: scan error: %v", tc.input, err)
		}

		if toks[1].Kind != KindNumber {
			t.Errorf("%q: expected number token, got %v", tc.input, toks[1].Kind)
		}

		if toks[1].Lit != tc.lit {
			t.Errorf("%q: expected literal %q, got %q", tc.input, tc.lit, toks[1].Lit)
		}
	}
}

func TestScan_LineComment(t *testing.T) {
	toks, err := Scan("% full line comment\nport 80 % trailing\n")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []Kind{KindIdent, KindNumber, KindEOF}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(toks))
	}
}

func TestScan_MultiLineComment(t *testing.T) {
	toks, err := Scan("<# spans\nmultiple\nlines #> port 80")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if len(toks) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(toks))
	}
}

func TestScan_UnterminatedComment(t *testing.T) {
	_, err := Scan("<# never closed\nport 80")
	if !errors.Is(err, ErrUnterminatedComment) {
		t.Fatalf("expected ErrUnterminatedComment, got %v", err)
	}
}

func TestScan_ExprDelimiters(t *testing.T) {
	toks, err := Scan("k .{1 2 +}.")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	want := []Kind{
		KindIdent, KindExprOpen,
		KindNumber, KindNumber, KindOperator,
		KindExprClose, KindEOF,
	}

	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestScan_UnmatchedExprOpen(t *testing.T) {
	_, err := Scan("k .{1 2 +")
	if !errors.Is(err, ErrUnmatchedExprDelimiter) {
		t.Fatalf("expected ErrUnmatchedExprDelimiter, got %v", err)
	}
}

func TestScan_UnmatchedExprClose(t *testing.T) {
	_, err := Scan("k 1 }.")
	if !errors.Is(err, ErrUnmatchedExprDelimiter) {
		t.Fatalf("expected ErrUnmatchedExprDelimiter, got %v", err)
	}
}

func TestScan_SignedNumberVsOperator(t *testing.T) {
	// A sign directly followed by a digit is a literal; separated by
	// whitespace it is an operator.
	toks, err := Scan("k .{1 -2 -}.")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[3].Kind != KindNumber || toks[3].Lit != "-2" {
		t.Errorf("expected number -2, got %v %q", toks[3].Kind, toks[3].Lit)
	}

	if toks[4].Kind != KindOperator || toks[4].Lit != "-" {
		t.Errorf("expected operator -, got %v %q", toks[4].Kind, toks[4].Lit)
	}
}

func TestScan_FuncToken(t *testing.T) {
	toks, err := Scan("k .{-3 abs}.")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[3].Kind != KindFunc || toks[3].Lit != "abs" {
		t.Errorf("expected func token abs, got %v %q", toks[3].Kind, toks[3].Lit)
	}
}

func TestScan_InvalidCharacter(t *testing.T) {
	_, err := Scan("port = 80")
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("expected ErrInvalidCharacter, got %v", err)
	}
}

func TestScan_Position(t *testing.T) {
	toks, err := Scan("a 1\nbb 2")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}

	if toks[2].Pos.Line != 2 || toks[2].Pos.Column != 1 {
		t.Errorf("expected token at 2:1, got %s", toks[2].Pos)
	}

	if toks[3].Pos.Line != 2 || toks[3].Pos.Column != 4 {
		t.Errorf("expected token at 2:4, got %s", toks[3].Pos)
	}
}
