package manifest_test

import (
	"errors"
	"testing"

	"parcel/internal/diag"
	"parcel/internal/identity"
	"parcel/internal/manifest"
)

func resolveWithBag(t *testing.T, raw manifest.Raw, defaults manifest.Defaults, readme string, ident identity.Lookup) (*manifest.Descriptor, *diag.Bag, error) {
	t.Helper()
	bag := diag.NewBag(32)
	d, err := manifest.Resolve(raw, defaults, readme, ident, diag.BagReporter{Bag: bag})
	return d, bag, err
}

// fullDefaults satisfies every required field so tests can knock out the
// one they care about.
func fullDefaults() manifest.Defaults {
	return manifest.Defaults{
		"author":      "Default Author",
		"email":       "default@example.com",
		"name":        "defaultname",
		"version":     "0.0.1",
		"summary":     "default summary",
		"description": "default description",
		"homepage":    "https://default.example.com",
	}
}

func TestExplicitValueBeatsDefault(t *testing.T) {
	raw := manifest.Raw{"version": "9.9.9"}
	d, _, err := resolveWithBag(t, raw, fullDefaults(), "", identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Version != "9.9.9" {
		t.Fatalf("explicit value must win, got %q", d.Version)
	}
	if d.Author != "Default Author" {
		t.Fatalf("default must fill the rest, got %q", d.Author)
	}
}

func TestInferenceUsedWhenExplicitAndDefaultAbsent(t *testing.T) {
	defaults := fullDefaults()
	delete(defaults, "version")

	d, bag, err := resolveWithBag(t, manifest.Raw{}, defaults, "v2.3.4 stable\n", identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Version != "2.3.4" {
		t.Fatalf("expected inferred version 2.3.4, got %q", d.Version)
	}

	found := false
	for _, item := range bag.Items() {
		if item.Code == diag.MetaInferredVersion && item.Severity == diag.SevInfo {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a MetaInferredVersion notice, got %v", bag.Items())
	}
}

func TestReadmeInferenceExample(t *testing.T) {
	readme := "v2.3.4 stable\nHomepage: https://x.io/\n"
	defaults := manifest.Defaults{"name": "foo"}
	ident := identity.Static{
		identity.KeyUserName:  "Ada",
		identity.KeyUserEmail: "ada@example.com",
	}

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, ident)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Version != "2.3.4" {
		t.Errorf("version: expected 2.3.4, got %q", d.Version)
	}
	if d.Homepage != "https://x.io/" {
		t.Errorf("homepage: expected https://x.io/, got %q", d.Homepage)
	}
	if d.Summary != "v2.3.4 stable" {
		t.Errorf("summary: expected first line, got %q", d.Summary)
	}
	if d.Author != "Ada" || d.Email != "ada@example.com" {
		t.Errorf("identity: got %q / %q", d.Author, d.Email)
	}
}

func TestMissingAuthorIsFirstFailure(t *testing.T) {
	_, _, err := resolveWithBag(t, manifest.Raw{}, manifest.Defaults{"name": "foo"}, "", identity.None{})

	var missing *manifest.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "author" {
		t.Fatalf("expected author to fail first, got %q", missing.Field)
	}
}

func TestNameIsNeverInferred(t *testing.T) {
	defaults := fullDefaults()
	delete(defaults, "name")

	// Plenty of readme text, but nothing may produce a name.
	_, _, err := resolveWithBag(t, manifest.Raw{}, defaults, "name: shinything v1.0.0\n", identity.None{})

	var missing *manifest.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Field != "name" {
		t.Fatalf("expected name to be the missing field, got %q", missing.Field)
	}
}

func TestExecutableIsExplicitOnly(t *testing.T) {
	d, _, err := resolveWithBag(t, manifest.Raw{"executable": "run_main()"}, fullDefaults(), "", identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Executable != "run_main()" {
		t.Fatalf("expected explicit executable, got %q", d.Executable)
	}

	d, _, err = resolveWithBag(t, manifest.Raw{}, fullDefaults(), "", identity.None{})
	if err != nil {
		t.Fatalf("absence of executable must not be an error: %v", err)
	}
	if d.Executable != "" {
		t.Fatalf("expected no executable, got %q", d.Executable)
	}
}

func TestDescriptionSubstitutionQuirk(t *testing.T) {
	defaults := fullDefaults()
	delete(defaults, "description")
	readme := "Fix the FIXME and the todo list.\n"

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	want := "Fix the FIZZIX-ME and the TOODLES list."
	if d.Description != want {
		t.Fatalf("description:\nwant %q\ngot  %q", want, d.Description)
	}
}

func TestDescriptionSubstitutionIdempotentOnCleanText(t *testing.T) {
	defaults := fullDefaults()
	delete(defaults, "description")
	readme := "Nothing objectionable here.\n"

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Description != "Nothing objectionable here." {
		t.Fatalf("clean text must pass through (trimmed), got %q", d.Description)
	}
}

func TestDescriptionTrimmedBeforeAssembly(t *testing.T) {
	raw := manifest.Raw{"description": "  padded  \n"}
	d, _, err := resolveWithBag(t, raw, fullDefaults(), "", identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Description != "padded" {
		t.Fatalf("expected trimmed description, got %q", d.Description)
	}
}

func TestVersionFirstMatchWins(t *testing.T) {
	// A version-shaped string early in the readme shadows the real one;
	// first-match-wins is a known limitation of the heuristic.
	readme := "Requires engine v0.9.0 or newer.\nVersion 3.1.4\n"
	defaults := fullDefaults()
	delete(defaults, "version")

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Version != "0.9.0" {
		t.Fatalf("first match must win, got %q", d.Version)
	}
}

func TestHomepageMarkdownLink(t *testing.T) {
	readme := "Intro line.\n[Homepage](https://example.org/tool)\n"
	defaults := fullDefaults()
	delete(defaults, "homepage")

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Homepage != "https://example.org/tool" {
		t.Fatalf("expected markdown homepage, got %q", d.Homepage)
	}
}

func TestHomepageShortLabel(t *testing.T) {
	readme := "  Home: http://plain.example.com\n"
	defaults := fullDefaults()
	delete(defaults, "homepage")

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Homepage != "http://plain.example.com" {
		t.Fatalf("expected Home: URL, got %q", d.Homepage)
	}
}

func TestSummarySkipsBlankAndPunctuationLines(t *testing.T) {
	readme := "\n----\n***\nActual summary line\n"
	defaults := fullDefaults()
	delete(defaults, "summary")

	d, _, err := resolveWithBag(t, manifest.Raw{}, defaults, readme, identity.None{})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Summary != "Actual summary line" {
		t.Fatalf("expected first alphanumeric line, got %q", d.Summary)
	}
}

func TestResolverNilReporterIsSafe(t *testing.T) {
	defaults := fullDefaults()
	delete(defaults, "version")

	d, err := manifest.Resolve(manifest.Raw{}, defaults, "v1.2.3\n", identity.None{}, nil)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if d.Version != "1.2.3" {
		t.Fatalf("expected inferred version, got %q", d.Version)
	}
}
