package main

import (
	"os"
	"path/filepath"
	"testing"

	"parcel/internal/identity"
	"parcel/internal/pipeline"
)

func TestParseDefaults(t *testing.T) {
	defaults, err := parseDefaults([]string{"author=Alice", "summary=a tool"})
	if err != nil {
		t.Fatalf("parseDefaults error: %v", err)
	}
	if defaults["author"] != "Alice" {
		t.Fatalf("defaults[author] = %q, want Alice", defaults["author"])
	}
	if defaults["summary"] != "a tool" {
		t.Fatalf("defaults[summary] = %q, want a tool", defaults["summary"])
	}

	if _, err := parseDefaults([]string{"no-equals"}); err == nil {
		t.Fatalf("expected error for value without =")
	}
	if _, err := parseDefaults([]string{"=value"}); err == nil {
		t.Fatalf("expected error for empty field name")
	}

	defaults, err = parseDefaults(nil)
	if err != nil {
		t.Fatalf("parseDefaults(nil) error: %v", err)
	}
	if defaults != nil {
		t.Fatalf("parseDefaults(nil) = %v, want nil", defaults)
	}
}

func TestParseUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiAuto},
		{"auto", uiAuto},
		{"ON", uiOn},
		{" off ", uiOff},
	}
	for _, tc := range cases {
		got, err := parseUIMode(tc.input)
		if err != nil {
			t.Fatalf("parseUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parseUIMode(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
	if _, err := parseUIMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid ui mode")
	}

	if uiOn.wantTUI() != true || uiOff.wantTUI() != false {
		t.Fatalf("explicit modes must override terminal detection")
	}
}

func TestStarterScriptResolves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.script")
	if err := os.WriteFile(path, []byte(starterScript("demo")), 0o600); err != nil {
		t.Fatalf("write starter script: %v", err)
	}

	res, err := pipeline.Inspect(&pipeline.InspectRequest{
		Path: path,
		Identity: identity.Static{
			identity.KeyUserName:  "Alice",
			identity.KeyUserEmail: "alice@example.com",
		},
	})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	d := res.Descriptor
	if d.Name != "demo" {
		t.Fatalf("Name = %q, want demo", d.Name)
	}
	if d.Version != "0.1.0" {
		t.Fatalf("Version = %q, want 0.1.0", d.Version)
	}
	if d.Summary != "A short one-line summary" {
		t.Fatalf("Summary = %q", d.Summary)
	}
	if d.Homepage != "https://example.com/demo" {
		t.Fatalf("Homepage = %q, want https://example.com/demo", d.Homepage)
	}
	if d.Author != "Alice" || d.Email != "alice@example.com" {
		t.Fatalf("identity not applied: author=%q email=%q", d.Author, d.Email)
	}
	if res.Chunks.Readme == "" {
		t.Fatalf("expected a readme region in the starter script")
	}
	if res.Chunks.Library == "" {
		t.Fatalf("expected a library region in the starter script")
	}
}
