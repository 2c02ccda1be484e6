package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles for diagnostic output.
var (
	diagHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)
	diagSourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))
	diagSnippetStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8"))
	diagMarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)
)

// printDiagnostic renders a compile diagnostic to w. The first line of the
// diagnostic is the error message; subsequent lines are the source snippet
// and caret marker.
func printDiagnostic(w io.Writer, name, diagnostic string) {
	lines := strings.Split(strings.TrimRight(diagnostic, "\n"), "\n")

	fmt.Fprintf(w, "%s %s\n",
		diagSourceStyle.Render(name+":"),
		diagHeaderStyle.Render(lines[0]),
	)

	for _, line := range lines[1:] {
		if strings.HasSuffix(strings.TrimRight(line, " "), "^") {
			fmt.Fprintln(w, diagMarkerStyle.Render(line))

			continue
		}

		fmt.Fprintln(w, diagSnippetStyle.Render(line))
	}
}
