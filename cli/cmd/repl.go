package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/confclang/confc/cli/cmd/repl"
	"github.com/confclang/confc/lang"
)

// Repl starts an interactive compile session.
type Repl struct {
	Source   string `arg:"" optional:""    help:"Source file to preload" name:"source"`
	MaxDepth int    `       default:"1000" help:"Maximum value nesting depth"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	cacheDir := ktx.Model.Vars()[CacheIdentifier]

	var preload string

	if r.Source != "" {
		reader, display, close, err := openSource(r.Source)
		if err != nil {
			return err
		}

		data, err := io.ReadAll(reader)

		close()

		if err != nil {
			return ErrOpenSource.Wrap(err).
				With(slog.String("source", display))
		}

		preload = string(data)
	}

	return repl.Run(ctx, preload, cacheDir,
		lang.WithMaxDepth(r.MaxDepth),
	)
}
