package lang

import "github.com/sahilm/fuzzy"

// maxSuggestions caps the number of similar names offered in diagnostics.
const maxSuggestions = 3

// similarSymbols returns up to maxSuggestions candidate names ranked by
// fuzzy similarity to name. Used for "did you mean" hints on undefined
// symbols and for REPL completion.
func similarSymbols(name string, candidates []string) []string {
	matches := fuzzy.Find(name, candidates)

	n := len(matches)
	if n > maxSuggestions {
		n = maxSuggestions
	}

	similar := make([]string, 0, n)
	for _, m := range matches[:n] {
		similar = append(similar, m.Str)
	}

	return similar
}

// MatchSymbols returns all candidate names matching pattern in fuzzy
// match order. An empty pattern returns the candidates unchanged.
func MatchSymbols(pattern string, candidates []string) []string {
	if pattern == "" {
		return candidates
	}

	matches := fuzzy.Find(pattern, candidates)

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}

	return out
}
