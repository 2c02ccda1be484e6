package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/confclang/confc/lang"
	"github.com/confclang/confc/log"
)

// Check compiles a source file and reports errors without emitting output.
type Check struct {
	Source   string `arg:"" default:"-"    help:"Source input file or '-' for stdin" name:"source" optional:""`
	MaxDepth int    `       default:"1000" help:"Maximum value nesting depth"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reader, display, close, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return ErrOpenSource.Wrap(err).
			With(slog.String("source", display))
	}

	source := string(data)

	doc, err := lang.CompileString(
		ctx,
		source,
		lang.WithMaxDepth(c.MaxDepth),
	)
	if err != nil {
		printDiagnostic(os.Stderr, display, lang.FormatDiagnostic(source, err))

		return err
	}

	log.DebugContext(ctx, "checked",
		slog.String("source", display),
		slog.Int("keys", doc.Len()),
	)

	fmt.Printf("%s: ok (%d keys)\n", display, doc.Len())

	return nil
}
