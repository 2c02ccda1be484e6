package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the named source file, or returns stdin when the name
// is "-". The returned close function is a no-op for stdin.
func openSource(name string) (r io.Reader, display string, close func(), err error) {
	if name == stdinSource {
		return os.Stdin, "<stdin>", func() {}, nil
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, "", nil, ErrOpenSource.Wrap(err)
	}

	return file, name, func() { file.Close() }, nil
}
