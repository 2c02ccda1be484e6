package lang

import (
	"bytes"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/goccy/go-yaml"
)

// EncodeJSON serializes the document as a single JSON object, UTF-8
// encoded, with keys in emission order. indent > 0 produces multi-line
// output indented by that many spaces; otherwise output is compact.
//
// Emission is deterministic and only fails on an internal invariant
// violation: a number that is not finite.
func (d *Document) EncodeJSON(w io.Writer, indent int) error {
	e := &emitter{indent: indent}

	if err := e.document(d); err != nil {
		return err
	}

	_, err := w.Write(e.buf.Bytes())
	if err != nil {
		return ErrCannotOpenOutput.Wrap(err)
	}

	return nil
}

// MarshalJSON implements json.Marshaler with compact output.
func (d *Document) MarshalJSON() ([]byte, error) {
	e := &emitter{}

	if err := e.document(d); err != nil {
		return nil, err
	}

	return e.buf.Bytes(), nil
}

// EncodeYAML serializes the document as YAML, preserving key order via
// an ordered mapping.
func (d *Document) EncodeYAML(w io.Writer, indent int) error {
	ms := make(yaml.MapSlice, 0, d.Len())

	for key, val := range d.Pairs() {
		if err := checkFinite(val); err != nil {
			return err
		}

		ms = append(ms, yaml.MapItem{Key: key, Value: val.native()})
	}

	opts := []yaml.EncodeOption{}
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	}

	out, err := yaml.MarshalWithOptions(ms, opts...)
	if err != nil {
		return WrapError(err)
	}

	_, err = w.Write(out)
	if err != nil {
		return ErrCannotOpenOutput.Wrap(err)
	}

	return nil
}

// checkFinite walks a value rejecting non-finite numbers before they
// reach an encoder that would render them as invalid output.
func checkFinite(v Value) error {
	switch v.Kind {
	case ValueNumber:
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return ErrNonFiniteNumber.
				With(slog.Float64("value", v.Num))
		}

	case ValueArray:
		for _, e := range v.Elems {
			if err := checkFinite(e); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitter accumulates JSON text for one document.
type emitter struct {
	buf    bytes.Buffer
	indent int
	depth  int
}

func (e *emitter) document(d *Document) error {
	if d.Len() == 0 {
		e.buf.WriteString("{}")

		return nil
	}

	e.buf.WriteByte('{')
	e.depth++

	first := true
	for key, val := range d.Pairs() {
		if !first {
			e.buf.WriteByte(',')
		}

		first = false

		e.newline()
		e.str(key)
		e.buf.WriteByte(':')

		if e.indent > 0 {
			e.buf.WriteByte(' ')
		}

		if err := e.value(val); err != nil {
			return err
		}
	}

	e.depth--
	e.newline()
	e.buf.WriteByte('}')

	return nil
}

func (e *emitter) value(v Value) error {
	switch v.Kind {
	case ValueString:
		e.str(v.Str)

		return nil

	case ValueNumber:
		return e.number(v.Num)

	case ValueArray:
		return e.array(v.Elems)

	default:
		return ErrInvalidOperand.
			With(slog.String("kind", v.Kind.String()))
	}
}

func (e *emitter) array(elems []Value) error {
	if len(elems) == 0 {
		e.buf.WriteString("[]")

		return nil
	}

	e.buf.WriteByte('[')
	e.depth++

	for i, v := range elems {
		if i > 0 {
			e.buf.WriteByte(',')
		}

		e.newline()

		if err := e.value(v); err != nil {
			return err
		}
	}

	e.depth--
	e.newline()
	e.buf.WriteByte(']')

	return nil
}

// number writes a JSON number. Integral values print without a trailing
// fractional part; fractional values print with full precision.
func (e *emitter) number(n float64) error {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return ErrNonFiniteNumber.
			With(slog.Float64("value", n))
	}

	e.buf.WriteString(strconv.FormatFloat(n, 'f', -1, 64))

	return nil
}

// str writes a JSON string with control characters, quotes, and
// backslashes escaped.
func (e *emitter) str(s string) {
	e.buf.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		default:
			if r < 0x20 {
				const hex = "0123456789abcdef"

				e.buf.WriteString(`\u00`)
				e.buf.WriteByte(hex[r>>4])
				e.buf.WriteByte(hex[r&0xf])
			} else {
				e.buf.WriteRune(r)
			}
		}
	}

	e.buf.WriteByte('"')
}

// newline writes a line break and the current indentation, when
// indented output is enabled.
func (e *emitter) newline() {
	if e.indent <= 0 {
		return
	}

	e.buf.WriteByte('\n')

	for range e.depth * e.indent {
		e.buf.WriteByte(' ')
	}
}
