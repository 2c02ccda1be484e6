package lang

import (
	"bytes"
	"context"
	"encoding/gob"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/confclang/confc/log"
)

// globalCache stores compiled documents keyed by (source hash ^ options
// hash). Documents are treated as immutable after compilation; callers
// must not modify a cached result.
var globalCache sync.Map

// state holds the one-time compilation result for a cache key.
type state struct {
	once sync.Once
	doc  *Document
	err  error
}

// hashOptions encodes options with gob and hashes with xxh3, so distinct
// configurations never share a cache entry.
func hashOptions(o Options) uint64 {
	var buf bytes.Buffer

	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(o.maxDepth)

	return xxh3.Hash(buf.Bytes())
}

// CompileReader compiles input from an io.Reader. The reader is wrapped
// with async read-ahead so data is pre-fetched while previous chunks are
// consumed, and the compiled document is cached by content hash: compiling
// identical content again returns the cached document, even across
// goroutines.
func CompileReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Document, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	o := makeOptions(opts...)

	sourceHash := xxh3.Hash(data)
	key := strconv.FormatUint(sourceHash^hashOptions(o), 36)

	entry := new(state)
	value, hit := globalCache.LoadOrStore(key, entry)

	st, ok := value.(*state)
	if !ok {
		// Unreachable unless the cache was corrupted externally.
		return CompileString(ctx, string(data), opts...)
	}

	log.TraceContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(sourceHash, 16)),
		slog.Bool("cache_hit", hit),
	)

	st.once.Do(func() {
		st.doc, st.err = CompileString(ctx, string(data), opts...)
	})

	return st.doc, st.err
}

// ClearCache removes all cached documents. This is primarily useful for
// testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache.Clear()
}
