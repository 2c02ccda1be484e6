package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/confclang/confc/log"
	"github.com/confclang/confc/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	_, err = file.WriteString(i.render(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	fmt.Println(confPath)

	return nil
}

// render builds the configuration file content from current flag values.
// Flag names are written with underscores in place of hyphens, matching
// the identifier syntax of the source language.
func (i *Init) render(ctx context.Context) string {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ktx := kongContextFrom(ctx)

	var buf strings.Builder

	buf.WriteString("% Default configuration, generated by init.\n")
	buf.WriteString("% Values here seed command-line flag defaults.\n\n")

	prefixIgnore := []string{"help", "force", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || hasAnyPrefix(flag.Name, prefixIgnore) {
			continue
		}

		lit, ok := flagLiteral(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		buf.WriteString(strings.ReplaceAll(flag.Name, "-", "_"))
		buf.WriteString(" ")
		buf.WriteString(lit)
		buf.WriteString("\n")
	}

	return buf.String()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}

// flagLiteral renders a flag value as a source-language literal.
// Strings use the @"..." syntax with doubled-quote escaping, numbers are
// written bare, and booleans become the strings "true"/"false" since the
// language has no boolean type.
func flagLiteral(val any) (string, bool) {
	switch v := val.(type) {
	case nil:
		return "", false

	case bool:
		return quoteLiteral(strconv.FormatBool(v)), true

	case string:
		if v == "" {
			return "", false
		}

		return quoteLiteral(v), true

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), true

	case float32, float64:
		return fmt.Sprint(v), true

	case []string:
		if len(v) == 0 {
			return "", false
		}

		elems := make([]string, len(v))
		for i, s := range v {
			elems[i] = quoteLiteral(s)
		}

		return "[" + strings.Join(elems, ", ") + "]", true

	default:
		return quoteLiteral(fmt.Sprint(v)), true
	}
}

// quoteLiteral renders s as a source-language string literal, escaping
// embedded quotes by doubling them.
func quoteLiteral(s string) string {
	return `@"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
