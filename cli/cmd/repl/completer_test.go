package repl

import (
	"slices"
	"testing"

	"github.com/confclang/confc/lang"
)

func feedSession(t *testing.T, lines ...string) *lang.Session {
	t.Helper()

	s := lang.NewSession()

	for _, line := range lines {
		err := s.Feed(t.Context(), line)
		if err != nil {
			t.Fatalf("feed %q: %v", line, err)
		}
	}

	return s
}

func TestWordStart(t *testing.T) {
	cases := map[string]int{
		"":               0,
		"port":           0,
		"port de":        5,
		"k .{def":        4,
		"k [a, b":        6,
		"x .{1 ab":       6,
		"(define ba":     8,
		"value .{host +": 14,
	}

	for input, want := range cases {
		if got := wordStart(input); got != want {
			t.Errorf("wordStart(%q): expected %d, got %d", input, want, got)
		}
	}
}

func TestComplete_Symbols(t *testing.T) {
	s := feedSession(t, "(define default_port 8080)")

	got := complete(s, "port .{def")

	if !slices.Contains(got, "port .{default_port") {
		t.Errorf("expected symbol completion, got %v", got)
	}

	if !slices.Contains(got, "port .{define") {
		t.Errorf("expected keyword completion, got %v", got)
	}
}

func TestComplete_DocumentKeys(t *testing.T) {
	s := feedSession(t, "server_name @\"test\"")

	got := complete(s, "alias .{serv")

	if !slices.Contains(got, "alias .{server_name") {
		t.Errorf("expected document key completion, got %v", got)
	}
}

func TestComplete_Keywords(t *testing.T) {
	s := lang.NewSession()

	got := complete(s, "k .{5 ab")

	if !slices.Contains(got, "k .{5 abs") {
		t.Errorf("expected abs completion, got %v", got)
	}
}

func TestComplete_EmptyWord(t *testing.T) {
	s := feedSession(t, "(define p 1)")

	if got := complete(s, "k .{p "); got != nil {
		t.Errorf("expected no completions after a boundary, got %v", got)
	}
}

func TestComplete_InsideString(t *testing.T) {
	s := feedSession(t, "(define prefix @\"pre\")")

	if got := complete(s, `k @"pref`); got != nil {
		t.Errorf("expected no completions inside a string, got %v", got)
	}
}

func TestComplete_Dedup(t *testing.T) {
	// The same name as both a symbol and a document key appears once
	s := feedSession(t, "(define port 1)", "port 2")

	got := complete(s, "k .{port")

	count := 0

	for _, c := range got {
		if c == "k .{port" {
			count++
		}
	}

	if count != 1 {
		t.Errorf("expected one 'port' completion, got %d in %v", count, got)
	}
}

func TestInStringLiteral(t *testing.T) {
	cases := map[string]bool{
		"":                 false,
		`k @"open`:         true,
		`k @"closed"`:      false,
		`k @"say ""hi`:     true,
		`k @"say ""hi"""`:  false,
		`k @"a" v @"b`:     true,
		"plain identifier": false,
	}

	for input, want := range cases {
		if got := inStringLiteral(input); got != want {
			t.Errorf("inStringLiteral(%q): expected %v, got %v", input, want, got)
		}
	}
}

func TestNeedsMoreInput(t *testing.T) {
	cases := map[string]bool{
		"port 8080":          false,
		"k [1, 2":            true,
		"k [1, 2]":           false,
		"k [[1], [2":         true,
		"k .{1 2 +":          true,
		"k .{1 2 +}.":        false,
		`k @"open`:           true,
		`k @"done"`:          false,
		`k @"with ""quote`:   true,
		"k 1 <# trailing":    true,
		"k 1 <# done #>":     false,
		"k 1 % [ not a list": false,
		"k .{[1]":            true,
	}

	for input, want := range cases {
		if got := needsMoreInput(input); got != want {
			t.Errorf("needsMoreInput(%q): expected %v, got %v", input, want, got)
		}
	}
}
