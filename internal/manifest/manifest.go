// Package manifest resolves a package descriptor from the metadata and
// readme regions of a chunked script.
//
// Resolution is strict per field: explicit TOML value, then caller default,
// then field-specific inference, then failure. Inference never errors; it
// falls through. Every successful inference emits a SevInfo diagnostic
// naming the value and its source.
//
// Known quirk: the description transform rewrites "FIXME" to "FIZZIX-ME" and
// "TODO" to "TOODLES" (case-insensitively) to dodge a restriction in the
// downstream build tool. Descriptions containing those words do not
// round-trip; the substitution is deliberate and load-bearing.
package manifest

import (
	"strings"

	"github.com/BurntSushi/toml"
)

// Raw is the key/value mapping parsed from the metadata region.
type Raw map[string]string

// Defaults carries caller-supplied fallback values, keyed by field name.
// The "name" field is always expected here: it is derived from the source
// filename by the caller and never inferred.
type Defaults map[string]string

// Field names of the descriptor, in resolution order.
const (
	FieldAuthor      = "author"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldVersion     = "version"
	FieldSummary     = "summary"
	FieldDescription = "description"
	FieldHomepage    = "homepage"
	FieldExecutable  = "executable"
)

// requiredFields is the fixed iteration order for resolution and for
// MissingFieldError reporting.
var requiredFields = []string{
	FieldAuthor,
	FieldEmail,
	FieldName,
	FieldVersion,
	FieldSummary,
	FieldDescription,
	FieldHomepage,
}

// Descriptor is the fully-resolved package metadata handed to the
// packaging layer. Every required field is non-empty.
type Descriptor struct {
	Author      string `toml:"author"`
	Email       string `toml:"email"`
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Summary     string `toml:"summary"`
	Description string `toml:"description"`
	Homepage    string `toml:"homepage"`

	// Executable is the optional executable body; empty means none.
	Executable string `toml:"executable,omitempty"`

	// Files lists the generated artifact files. The packaging layer fixes
	// it to the single staged library file; it is not user-configurable.
	Files []string `toml:"files,omitempty"`
}

// Field returns a required field's value by name.
func (d *Descriptor) Field(name string) string {
	switch name {
	case FieldAuthor:
		return d.Author
	case FieldEmail:
		return d.Email
	case FieldName:
		return d.Name
	case FieldVersion:
		return d.Version
	case FieldSummary:
		return d.Summary
	case FieldDescription:
		return d.Description
	case FieldHomepage:
		return d.Homepage
	case FieldExecutable:
		return d.Executable
	}
	return ""
}

func (d *Descriptor) setField(name, value string) {
	switch name {
	case FieldAuthor:
		d.Author = value
	case FieldEmail:
		d.Email = value
	case FieldName:
		d.Name = value
	case FieldVersion:
		d.Version = value
	case FieldSummary:
		d.Summary = value
	case FieldDescription:
		d.Description = value
	case FieldHomepage:
		d.Homepage = value
	case FieldExecutable:
		d.Executable = value
	}
}

// ParseRaw parses the metadata region as a TOML document of string values.
// Blank input yields an empty mapping. Malformed input yields a
// *SyntaxError carrying the raw text.
func ParseRaw(metaText string) (Raw, error) {
	if strings.TrimSpace(metaText) == "" {
		return Raw{}, nil
	}
	raw := Raw{}
	if _, err := toml.Decode(metaText, &raw); err != nil {
		return nil, &SyntaxError{Raw: metaText, Err: err}
	}
	return raw, nil
}
