package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/confclang/confc/lang"
	"github.com/confclang/confc/log"
)

// Output formats.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// Compile compiles a source file and writes the result as JSON or YAML.
type Compile struct {
	Source   string `arg:""                             default:"-"    help:"Source input file or '-' for stdin"     name:"source" optional:""`
	Output   string `                                   default:"-"    help:"Output file or '-' for stdout"                        short:"o"`
	Format   string `         enum:"json,yaml"          default:"json" help:"Output format"                                        short:"t"`
	Indent   int    `                                   default:"2"    help:"Indentation width (0 for compact JSON)"`
	MaxDepth int    `                                   default:"1000" help:"Maximum value nesting depth"`
	Watch    bool   `                                                  help:"Recompile whenever the source changes"                short:"w"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if c.Watch {
		if c.Source == stdinSource {
			return ErrWatch.With(
				slog.String("reason", "cannot watch stdin"),
			)
		}

		return c.watch(ctx)
	}

	return c.compile(ctx)
}

// compile performs a single compile-and-emit pass.
func (c *Compile) compile(ctx context.Context) error {
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

	log.DebugContext(ctx, "compiled",
		slog.String("source", display),
		slog.Int("keys", doc.Len()),
	)

	return c.emit(ctx, doc)
}

// emit writes the compiled document to the configured output.
func (c *Compile) emit(ctx context.Context, doc *lang.Document) error {
	if c.Output == stdinSource {
		return c.encode(os.Stdout, doc)
	}

	return c.writeAtomic(ctx, doc)
}

// encode writes the document to w in the configured format.
func (c *Compile) encode(w io.Writer, doc *lang.Document) error {
	switch c.Format {
	case formatYAML:
		return doc.EncodeYAML(w, c.Indent)

	default:
		return doc.EncodeJSON(w, c.Indent)
	}
}

// writeAtomic writes the document to the output path through a temporary
// file renamed into place, so a failed compile never truncates an existing
// output file.
func (c *Compile) writeAtomic(ctx context.Context, doc *lang.Document) error {
	dir := filepath.Dir(c.Output)

	tmp, err := os.CreateTemp(dir, filepath.Base(c.Output)+".tmp*")
	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", c.Output))
	}

	err = c.encode(tmp, doc)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}

	if err != nil {
		os.Remove(tmp.Name())

		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", c.Output))
	}

	err = os.Rename(tmp.Name(), c.Output)
	if err != nil {
		os.Remove(tmp.Name())

		return ErrWriteOutput.Wrap(err).
			With(slog.String("output", c.Output))
	}

	log.DebugContext(ctx, "output written",
		slog.String("output", c.Output),
		slog.String("format", c.Format),
	)

	return nil
}

// watchDebounce is the settle time between rapid successive file events.
const watchDebounce = 100 * time.Millisecond

// watch recompiles the source whenever it changes on disk. The initial
// compile happens immediately; subsequent compile errors are reported but
// do not stop the watch loop.
func (c *Compile) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Wrap(err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself: editors that save
	// via rename replace the watched inode.
	err = watcher.Add(filepath.Dir(c.Source))
	if err != nil {
		return ErrWatch.Wrap(err).
			With(slog.String("source", c.Source))
	}

	log.InfoContext(ctx, "watching", slog.String("source", c.Source))

	compileOnce := func() {
		err := c.compile(ctx)
		if err != nil {
			log.ErrorContext(ctx, "compile failed",
				slog.Any("error", err),
			)
		}
	}

	compileOnce()

	base := filepath.Base(c.Source)
	lastChange := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if filepath.Base(event.Name) != base {
				continue
			}

			// Debounce rapid changes
			if time.Since(lastChange) < watchDebounce {
				continue
			}

			lastChange = time.Now()

			compileOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}
