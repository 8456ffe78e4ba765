package manifest_test

import (
	"errors"
	"strings"
	"testing"

	"parcel/internal/manifest"
)

func TestParseRawEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n", "\t\n  \n"} {
		raw, err := manifest.ParseRaw(input)
		if err != nil {
			t.Fatalf("blank metadata must not error: %v", err)
		}
		if len(raw) != 0 {
			t.Fatalf("blank metadata must yield empty mapping, got %v", raw)
		}
	}
}

func TestParseRawValidDocument(t *testing.T) {
	raw, err := manifest.ParseRaw("name = \"demo\"\nversion = \"1.2.3\"\n")
	if err != nil {
		t.Fatalf("ParseRaw returned error: %v", err)
	}
	if raw["name"] != "demo" || raw["version"] != "1.2.3" {
		t.Fatalf("unexpected mapping: %v", raw)
	}
}

func TestParseRawMalformedDocument(t *testing.T) {
	input := "author: [unclosed"
	_, err := manifest.ParseRaw(input)

	var syntaxErr *manifest.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if syntaxErr.Raw != input {
		t.Fatalf("SyntaxError must carry the raw text, got %q", syntaxErr.Raw)
	}
	if !strings.Contains(err.Error(), input) {
		t.Fatalf("error text must surface the offending metadata: %q", err.Error())
	}
}

func TestParseRawNonStringValueIsSyntaxError(t *testing.T) {
	// The metadata contract is string-to-string; other TOML value types
	// are rejected as malformed.
	_, err := manifest.ParseRaw("version = 1\n")

	var syntaxErr *manifest.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected SyntaxError for non-string value, got %v", err)
	}
}
