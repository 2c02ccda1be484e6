package lang

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestCompileReader(t *testing.T) {
	t.Cleanup(ClearCache)

	doc, err := CompileReader(t.Context(), strings.NewReader("port 8080"))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	v, ok := doc.Get("port")
	if !ok || v.Num != 8080 {
		t.Errorf("expected port=8080, got %v", v)
	}
}

func TestCompileReader_CacheHit(t *testing.T) {
	t.Cleanup(ClearCache)

	source := "a 1\nb 2"

	first, err := CompileReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	second, err := CompileReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	// Identical content returns the identical cached document
	if first != second {
		t.Error("expected cached document on second compile")
	}
}

func TestCompileReader_DistinctOptions(t *testing.T) {
	t.Cleanup(ClearCache)

	source := "k [[1]]"

	first, err := CompileReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	// A different depth budget must not share the first cache entry
	second, err := CompileReader(
		t.Context(),
		strings.NewReader(source),
		WithMaxDepth(500),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if first == second {
		t.Error("distinct options must compile into distinct cache entries")
	}
}

func TestCompileReader_ErrorCached(t *testing.T) {
	t.Cleanup(ClearCache)

	source := "k .{1 +}."

	_, err := CompileReader(t.Context(), strings.NewReader(source))
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected ErrStackUnderflow, got %v", err)
	}

	_, err = CompileReader(t.Context(), strings.NewReader(source))
	if !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("expected cached ErrStackUnderflow, got %v", err)
	}
}

func TestCompileReader_Concurrent(t *testing.T) {
	t.Cleanup(ClearCache)

	source := "(define p 2)\nk .{p 21 *}."

	var wg sync.WaitGroup

	docs := make([]*Document, 8)

	for i := range docs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			doc, err := CompileReader(t.Context(), strings.NewReader(source))
			if err != nil {
				t.Errorf("compile error: %v", err)

				return
			}

			docs[i] = doc
		}()
	}

	wg.Wait()

	for i := 1; i < len(docs); i++ {
		if docs[i] != docs[0] {
			t.Fatal("concurrent compiles of identical content must share one document")
		}
	}
}

func TestClearCache(t *testing.T) {
	source := "x 1"

	first, err := CompileReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	ClearCache()

	second, err := CompileReader(t.Context(), strings.NewReader(source))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	if first == second {
		t.Error("expected a fresh document after ClearCache")
	}

	ClearCache()
}
