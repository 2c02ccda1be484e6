package lang

import (
	"context"
	"log/slog"

	"github.com/confclang/confc/log"
)

// Options configures a compilation.
type Options struct {
	maxDepth int
}

// Option applies a configuration option to Options.
type Option func(*Options)

// WithMaxDepth sets the maximum array nesting depth. Values <= 0 restore
// [DefaultMaxDepth].
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.maxDepth = n
	}
}

func makeOptions(opts ...Option) Options {
	o := Options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		opt(&o)
	}

	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}

	return o
}

// CompileString compiles source text into a Document in a single pass:
// lex, parse (evaluating defines and postfix expressions in source
// order), discard the symbol table, return the document.
//
// Each call is independent; no state is shared across invocations, so
// concurrent compilations need no coordination.
func CompileString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Document, error) {
	o := makeOptions(opts...)

	toks, err := Scan(source)
	if err != nil {
		return nil, err
	}

	tab := NewSymbolTable()
	doc := NewDocument()

	p := newParser(toks, tab, doc, o.maxDepth)
	if err := p.parseDocument(); err != nil {
		return nil, err
	}

	log.TraceContext(ctx, "compile complete",
		slog.Int("tokens", len(toks)),
		slog.Int("keys", doc.Len()),
		slog.Int("symbols", tab.Len()),
	)

	return doc, nil
}

// Session retains the symbol table and document across incremental
// inputs, for interactive use. A Session is not safe for concurrent use.
type Session struct {
	opts Options
	tab  *SymbolTable
	doc  *Document
}

// NewSession creates an empty interactive compilation session.
func NewSession(opts ...Option) *Session {
	return &Session{
		opts: makeOptions(opts...),
		tab:  NewSymbolTable(),
		doc:  NewDocument(),
	}
}

// Feed compiles one or more statements into the live document.
// On error the document and symbol table keep the state established by
// any statements parsed before the failure.
func (s *Session) Feed(ctx context.Context, source string) error {
	toks, err := Scan(source)
	if err != nil {
		return err
	}

	p := newParser(toks, s.tab, s.doc, s.opts.maxDepth)
	if err := p.parseDocument(); err != nil {
		return err
	}

	log.TraceContext(ctx, "session feed",
		slog.Int("tokens", len(toks)),
		slog.Int("keys", s.doc.Len()),
	)

	return nil
}

// Reset discards all bindings and document entries.
func (s *Session) Reset() {
	s.tab = NewSymbolTable()
	s.doc = NewDocument()
}

// Document returns the live document.
func (s *Session) Document() *Document { return s.doc }

// Symbols returns the live symbol table.
func (s *Session) Symbols() *SymbolTable { return s.tab }
