package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/confclang/confc/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the confc source language.
//
// The document structure is converted as follows:
//   - Each top-level key becomes a flat configuration entry
//   - Flag names with hyphens (e.g., "log-level") may use underscores in
//     the config file (e.g., "log_level")
//   - String values use the language's string syntax
//   - Numbers are converted to strings for Kong's flag parsing
//   - Arrays become string slices
//
// Example config file:
//
//	log_level @"debug"
//	log_format @"json"
//	indent 4
//
// This configuration is applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--indent=4
//
// Command-line flags override config file values.
func resolve(ctx context.Context) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		// Compile the config file (cached after first compile)
		doc, err := lang.CompileReader(ctx, r)
		if err != nil {
			// Compile error: return empty config
			return config{}, nil
		}

		return documentToConfig(doc), nil
	}
}

// config implements [kong.Resolver] for confc language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// The config was already compiled successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but confc identifiers
	// use underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found: let Kong use defaults
	return nil, nil
}

// documentToConfig converts a compiled document to a native map
// representation suitable for flag resolution.
func documentToConfig(doc *lang.Document) config {
	result := make(config, doc.Len())

	for key, val := range doc.Pairs() {
		result[key] = flagValue(val)
	}

	return result
}

// flagValue converts a compiled value to the representation Kong expects.
// Kong requires numbers as strings for parsing.
func flagValue(v lang.Value) any {
	switch v.Kind {
	case lang.ValueString:
		return v.Str

	case lang.ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)

	case lang.ValueArray:
		elems := make([]string, 0, len(v.Elems))
		for _, e := range v.Elems {
			if s, ok := flagValue(e).(string); ok {
				elems = append(elems, s)
			}
		}

		return elems

	default:
		return nil
	}
}
