package lang

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func encodeJSON(t *testing.T, source string, indent int) string {
	t.Helper()

	doc := compile(t, source)

	var sb strings.Builder

	err := doc.EncodeJSON(&sb, indent)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	return sb.String()
}

func TestEmit_Scenario1(t *testing.T) {
	got := encodeJSON(t, `server_name @"Test" port 8080`, 0)

	want := `{"server_name":"Test","port":8080}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmit_Scenario2(t *testing.T) {
	got := encodeJSON(
		t,
		"allowed_ips [ @\"192.168.1.1\", @\"10.0.0.1\" ]\nports [ 80, 443, 8080 ]",
		0,
	)

	want := `{"allowed_ips":["192.168.1.1","10.0.0.1"],"ports":[80,443,8080]}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmit_Scenario3(t *testing.T) {
	got := encodeJSON(
		t,
		"(define default_port 8080)\nport .{default_port 80 +}.",
		0,
	)

	want := `{"port":8160}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmit_EmptyDocument(t *testing.T) {
	got := encodeJSON(t, "", 0)
	if got != "{}" {
		t.Errorf("expected {}, got %s", got)
	}
}

func TestEmit_Indented(t *testing.T) {
	got := encodeJSON(t, "a 1\nb [2, 3]", 2)

	want := `{
  "a": 1,
  "b": [
    2,
    3
  ]
}`
	if got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestEmit_NumberFormat(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"k 8080", `{"k":8080}`},
		{"k 3.14", `{"k":3.14}`},
		{"k -0.5", `{"k":-0.5}`},
		{"k 0x10", `{"k":16}`},
		{"k .{10 4 /}.", `{"k":2}`},
		{"k .{1 2.5 *}.", `{"k":2.5}`},
	}

	for _, tc := range cases {
		got := encodeJSON(t, tc.source, 0)
		if got != tc.want {
			t.Errorf("%q: expected %s, got %s", tc.source, tc.want, got)
		}
	}
}

func TestEmit_StringEscaping(t *testing.T) {
	doc := NewDocument()
	doc.Set("k", StringValue("a\"b\\c\nd\te\x01"))

	var sb strings.Builder

	err := doc.EncodeJSON(&sb, 0)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	want := `{"k":"a\"b\\c\nd\te\u0001"}`
	if sb.String() != want {
		t.Errorf("expected %s, got %s", want, sb.String())
	}
}

func TestEmit_DoubledQuoteRoundTrip(t *testing.T) {
	got := encodeJSON(t, `k @"say ""hi"""`, 0)

	want := `{"k":"say \"hi\""}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmit_NonFiniteNumber(t *testing.T) {
	doc := NewDocument()
	doc.Set("k", NumberValue(math.Inf(1)))

	var sb strings.Builder

	err := doc.EncodeJSON(&sb, 0)
	if !errors.Is(err, ErrNonFiniteNumber) {
		t.Fatalf("expected ErrNonFiniteNumber, got %v", err)
	}
}

func TestEmit_NonFiniteNested(t *testing.T) {
	doc := NewDocument()
	doc.Set("k", ArrayValue(NumberValue(1), NumberValue(math.NaN())))

	var sb strings.Builder

	err := doc.EncodeJSON(&sb, 0)
	if !errors.Is(err, ErrNonFiniteNumber) {
		t.Fatalf("expected ErrNonFiniteNumber, got %v", err)
	}
}

func TestEmit_MarshalJSON(t *testing.T) {
	doc := compile(t, "a 1")

	b, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	if string(b) != `{"a":1}` {
		t.Errorf("expected {\"a\":1}, got %s", b)
	}
}

func TestEmit_YAML(t *testing.T) {
	doc := compile(t, "name @\"test\"\nport 8080\ntags [@\"a\", @\"b\"]")

	var sb strings.Builder

	err := doc.EncodeYAML(&sb, 2)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}

	got := sb.String()

	// Key order must survive into YAML output
	nameIdx := strings.Index(got, "name:")
	portIdx := strings.Index(got, "port:")
	tagsIdx := strings.Index(got, "tags:")

	if nameIdx == -1 || portIdx == -1 || tagsIdx == -1 {
		t.Fatalf("missing keys in output:\n%s", got)
	}

	if !(nameIdx < portIdx && portIdx < tagsIdx) {
		t.Errorf("keys out of order:\n%s", got)
	}

	if !strings.Contains(got, "port: 8080") {
		t.Errorf("integral number should print without fraction:\n%s", got)
	}
}

func TestEmit_YAMLNonFinite(t *testing.T) {
	doc := NewDocument()
	doc.Set("k", NumberValue(math.Inf(-1)))

	var sb strings.Builder

	err := doc.EncodeYAML(&sb, 2)
	if !errors.Is(err, ErrNonFiniteNumber) {
		t.Fatalf("expected ErrNonFiniteNumber, got %v", err)
	}
}

func TestEmit_KeyOrderAfterOverwrite(t *testing.T) {
	got := encodeJSON(t, "a 1\nb 2\na 3", 0)

	want := `{"a":3,"b":2}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
