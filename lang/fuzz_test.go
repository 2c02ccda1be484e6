package lang

import (
	"strings"
	"testing"
)

// FuzzCompileString asserts the compiler never panics and any emitted
// output for accepted input is well formed.
func FuzzCompileString(f *testing.F) {
	seeds := []string{
		"",
		"port 8080",
		`name @"Test"`,
		`k @"say ""hi"""`,
		"k [1, @\"a\", [2]]",
		"(define p 1) k .{p 2 +}.",
		"k .{10 2 /}.",
		"k .{-7 abs}.",
		"% comment\nk 1",
		"<# multi #> k 1",
		"k .{1 +}.",
		"k .{x}.",
		"k [",
		"(define",
		"k @\"unterminated",
		"k .{",
		"0xG",
		"k 0x1F",
		"\xff\xfe",
		"k " + strings.Repeat("[", 64),
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, source string) {
		doc, err := CompileString(t.Context(), source, WithMaxDepth(64))
		if err != nil {
			return
		}

		var sb strings.Builder

		err = doc.EncodeJSON(&sb, 2)
		if err != nil {
			t.Fatalf("accepted input failed to emit: %v", err)
		}

		if !strings.HasPrefix(sb.String(), "{") {
			t.Fatalf("malformed output: %q", sb.String())
		}
	})
}
