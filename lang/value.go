package lang

import (
	"iter"
	"math"
	"strconv"
)

// ValueKind discriminates the variants of [Value].
type ValueKind int

const (
	// ValueString holds literal text.
	ValueString ValueKind = iota

	// ValueNumber holds a numeric value. A number produced by a postfix
	// expression is indistinguishable from a literal once evaluated.
	ValueNumber

	// ValueArray holds an ordered sequence of values of any kind.
	ValueArray
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case ValueString:
		return "string"
	case ValueNumber:
		return "number"
	case ValueArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is the tagged variant shared by the parser, evaluator, and emitter.
// Exactly one payload field is meaningful based on Kind.
type Value struct {
	Kind  ValueKind
	Str   string
	Num   float64
	Elems []Value
}

// StringValue constructs a string value.
func StringValue(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// NumberValue constructs a numeric value.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Num: n}
}

// ArrayValue constructs an array value preserving element order.
func ArrayValue(elems ...Value) Value {
	return Value{Kind: ValueArray, Elems: elems}
}

// IsScalar reports whether the value is a string or number.
func (v Value) IsScalar() bool {
	return v.Kind == ValueString || v.Kind == ValueNumber
}

// isIntegral reports whether a numeric value has no fractional part.
func (v Value) isIntegral() bool {
	return v.Kind == ValueNumber &&
		!math.IsInf(v.Num, 0) && !math.IsNaN(v.Num) &&
		v.Num == math.Trunc(v.Num)
}

// text renders a scalar value as plain text, as used by string
// concatenation in postfix expressions.
func (v Value) text() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}

// native converts the value to its nearest Go representation.
// Integral numbers convert to int64 so downstream encoders print them
// without a fractional part.
func (v Value) native() any {
	switch v.Kind {
	case ValueString:
		return v.Str

	case ValueNumber:
		if v.isIntegral() && math.Abs(v.Num) < float64(math.MaxInt64) {
			return int64(v.Num)
		}

		return v.Num

	case ValueArray:
		elems := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = e.native()
		}

		return elems

	default:
		return nil
	}
}

// entry is one key→value pair of a document.
type entry struct {
	key string
	val Value
}

// Document is the ordered top-level key→value mapping produced by one
// compilation. Keys keep their first-seen position; assigning an existing
// key replaces its value in place (last write wins).
type Document struct {
	entries []entry
	index   map[string]int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{index: make(map[string]int)}
}

// Set inserts or replaces the value bound to key.
func (d *Document) Set(key string, v Value) {
	if i, ok := d.index[key]; ok {
		d.entries[i].val = v

		return
	}

	d.index[key] = len(d.entries)
	d.entries = append(d.entries, entry{key: key, val: v})
}

// Get returns the value bound to key.
func (d *Document) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}

	return d.entries[i].val, true
}

// Len returns the number of distinct keys.
func (d *Document) Len() int { return len(d.entries) }

// Keys returns the document keys in emission order.
func (d *Document) Keys() []string {
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.key
	}

	return keys
}

// Pairs returns an iterator over key→value pairs in emission order.
func (d *Document) Pairs() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, e := range d.entries {
			if !yield(e.key, e.val) {
				return
			}
		}
	}
}
