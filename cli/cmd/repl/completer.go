package repl

import (
	"unicode/utf8"

	"github.com/confclang/confc/lang"
)

// keywords are always offered as completion candidates.
var keywords = []string{"define", "abs"}

// isWordBoundary reports whether the rune delimits identifiers for
// completion purposes.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '"',
		'(', ')', '[', ']',
		'{', '}', ',',
		'+', '-', '*', '/':
		return true
	}

	return false
}

// wordStart returns the byte offset where the identifier under the cursor
// (end of input) begins.
func wordStart(input string) int {
	start := len(input)

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	return start
}

// complete returns completion candidates for the current input line.
// Candidates are drawn from session symbols, document keys, and language
// keywords, ranked by fuzzy match quality. Each returned string is the
// full replacement line expected by liner.
func complete(session *lang.Session, input string) []string {
	start := wordStart(input)

	word := input[start:]
	if word == "" {
		return nil
	}

	// Inside a string literal, offer nothing
	if inStringLiteral(input[:start]) {
		return nil
	}

	candidates := session.Symbols().Names()
	candidates = append(candidates, session.Document().Keys()...)
	candidates = append(candidates, keywords...)

	var completions []string

	seen := make(map[string]struct{}, len(candidates))

	for _, match := range lang.MatchSymbols(word, candidates) {
		if _, dup := seen[match]; dup {
			continue
		}

		seen[match] = struct{}{}

		completions = append(completions, input[:start]+match)
	}

	return completions
}

// inStringLiteral reports whether the end of input falls inside an
// unterminated string literal.
func inStringLiteral(input string) bool {
	var inString bool

	for i := 0; i < len(input); i++ {
		if inString {
			if input[i] == '"' {
				if i+1 < len(input) && input[i+1] == '"' {
					i++

					continue
				}

				inString = false
			}

			continue
		}

		if input[i] == '@' && i+1 < len(input) && input[i+1] == '"' {
			inString = true
			i++
		}
	}

	return inString
}
