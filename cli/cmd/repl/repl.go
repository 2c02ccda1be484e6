package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/confclang/confc/lang"
	"github.com/confclang/confc/pkg"
)

const (
	prompt             = ">> "
	continuationPrompt = ".. "
)

// baseHistory is the history file name within the cache directory.
const baseHistory = "history"

func helpMessage() string {
	return `Commands:
  :help, :h       Show this help
  :doc            Print the current document as JSON
  :symbols        List defined symbols
  :clear          Discard all definitions and document keys
  exit, quit      Exit (also Ctrl+D)

Usage:
  Type statements to add them to the document:
    name @"value"
    (define PI 3.14159)
    total .{2 3 +}.
  Incomplete input continues on the next line
  Use Tab for completion, arrows for history
`
}

// Run starts the interactive session. A non-empty preload source is fed
// into the session before the first prompt.
func Run(
	ctx context.Context,
	preload string,
	cacheDir string,
	opts ...lang.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	session := lang.NewSession(opts...)

	if preload != "" {
		err := session.Feed(ctx, preload)
		if err != nil {
			fmt.Fprintln(os.Stderr, lang.FormatDiagnostic(preload, err))

			return err
		}
	}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	line.SetCompleter(func(input string) []string {
		return complete(session, input)
	})

	historyFile := filepath.Join(cacheDir, baseHistory)
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("%s %s\n", pkg.Name, pkg.Version)
	fmt.Println("Type 'exit' or Ctrl+D to quit, ':help' for commands")
	fmt.Println()

	var buffer strings.Builder

	for {
		currentPrompt := prompt
		if buffer.Len() > 0 {
			currentPrompt = continuationPrompt
		}

		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				// Ctrl+C: discard any buffered input
				if buffer.Len() > 0 {
					fmt.Println("^C (cleared)")
				} else {
					fmt.Println("^C")
				}

				buffer.Reset()

				continue
			}

			if errors.Is(err, io.EOF) {
				fmt.Println()

				return nil
			}

			return err
		}

		trimmed := strings.TrimSpace(input)

		if buffer.Len() == 0 {
			if trimmed == "exit" || trimmed == "quit" {
				return nil
			}

			if strings.HasPrefix(trimmed, ":") {
				handleCommand(trimmed, session)

				continue
			}

			if trimmed == "" {
				continue
			}
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}

		buffer.WriteString(input)

		source := buffer.String()
		if needsMoreInput(source) {
			continue
		}

		buffer.Reset()

		line.AppendHistory(source)

		err = session.Feed(ctx, source)
		if err != nil {
			fmt.Fprintln(os.Stderr, lang.FormatDiagnostic(source, err))

			continue
		}

		printDocument(session)
	}
}

// handleCommand dispatches REPL meta-commands that start with ':'.
func handleCommand(cmd string, session *lang.Session) {
	switch cmd {
	case ":help", ":h":
		fmt.Print(helpMessage())

	case ":doc":
		printDocument(session)

	case ":symbols":
		names := session.Symbols().Names()
		if len(names) == 0 {
			fmt.Println("(no symbols defined)")

			return
		}

		for _, name := range names {
			if v, ok := session.Symbols().Resolve(name); ok {
				fmt.Printf("  %s = %s\n", name, formatValue(v))
			}
		}

	case ":clear":
		session.Reset()
		fmt.Println("Session cleared")

	default:
		fmt.Printf("Unknown command: %s (type :help for commands)\n", cmd)
	}
}

// printDocument writes the session document as indented JSON to stdout.
func printDocument(session *lang.Session) {
	doc := session.Document()
	if doc.Len() == 0 {
		fmt.Println("{}")

		return
	}

	err := doc.EncodeJSON(os.Stdout, 2)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return
	}

	fmt.Println()
}

// formatValue renders a value for symbol listing.
func formatValue(v lang.Value) string {
	switch v.Kind {
	case lang.ValueString:
		return `@"` + strings.ReplaceAll(v.Str, `"`, `""`) + `"`

	case lang.ValueArray:
		elems := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = formatValue(e)
		}

		return "[" + strings.Join(elems, ", ") + "]"

	default:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
}

// needsMoreInput reports whether the input has an unclosed string,
// comment, bracket, or expression block, meaning the statement continues
// on the next line.
func needsMoreInput(input string) bool {
	var (
		bracketDepth int
		exprDepth    int
		inString     bool
		inComment    bool
	)

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inString {
			if ch == '"' {
				// Doubled quotes escape a literal quote
				if i+1 < len(input) && input[i+1] == '"' {
					i++

					continue
				}

				inString = false
			}

			continue
		}

		if inComment {
			if ch == '#' && i+1 < len(input) && input[i+1] == '>' {
				inComment = false
				i++
			}

			continue
		}

		switch ch {
		case '@':
			if i+1 < len(input) && input[i+1] == '"' {
				inString = true
				i++
			}

		case '<':
			if i+1 < len(input) && input[i+1] == '#' {
				inComment = true
				i++
			}

		case '%':
			// Line comment: skip to end of line
			for i < len(input) && input[i] != '\n' {
				i++
			}

		case '[':
			bracketDepth++

		case ']':
			bracketDepth--

		case '.':
			if i+1 < len(input) && input[i+1] == '{' {
				exprDepth++
				i++
			}

		case '}':
			if i+1 < len(input) && input[i+1] == '.' {
				exprDepth--
				i++
			}
		}
	}

	return inString || inComment || bracketDepth > 0 || exprDepth > 0
}
