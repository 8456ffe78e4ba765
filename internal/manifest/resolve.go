package manifest

import (
	"fmt"
	"strings"

	"parcel/internal/diag"
	"parcel/internal/identity"
	"parcel/internal/source"
)

type resolver struct {
	raw      Raw
	defaults Defaults
	readme   string
	ident    identity.Lookup
	reporter diag.Reporter
}

// Resolve builds a complete descriptor from the parsed metadata, the
// caller-supplied defaults, and the readme text. The identity lookup feeds
// author/email inference; reporter (may be nil) receives one SevInfo notice
// per inferred field. The first required field with no value from any tier
// aborts resolution with a *MissingFieldError.
func Resolve(raw Raw, defaults Defaults, readme string, ident identity.Lookup, reporter diag.Reporter) (*Descriptor, error) {
	if ident == nil {
		ident = identity.None{}
	}
	r := &resolver{
		raw:      raw,
		defaults: defaults,
		readme:   readme,
		ident:    ident,
		reporter: reporter,
	}

	d := &Descriptor{}
	for _, field := range requiredFields {
		value, err := r.resolveField(field)
		if err != nil {
			return nil, err
		}
		d.setField(field, value)
	}

	// Explicit-only, optional: absence means "no executable".
	if exe, ok := raw[FieldExecutable]; ok && exe != "" {
		d.Executable = exe
	}

	d.Description = strings.TrimSpace(d.Description)
	return d, nil
}

func (r *resolver) resolveField(field string) (string, error) {
	if value, ok := r.raw[field]; ok && value != "" {
		return value, nil
	}
	if value, ok := r.defaults[field]; ok && value != "" {
		return value, nil
	}
	if value := r.infer(field); value != "" {
		return value, nil
	}
	return "", &MissingFieldError{Field: field}
}

// infer applies the field-specific inference rule and emits a notice on
// success. An empty result means the rule produced nothing.
func (r *resolver) infer(field string) string {
	switch field {
	case FieldAuthor:
		if value, ok := r.ident.Get(identity.KeyUserName); ok {
			r.notice(diag.MetaInferredAuthor,
				fmt.Sprintf("inferred author %q from git %s", value, identity.KeyUserName))
			return value
		}

	case FieldEmail:
		if value, ok := r.ident.Get(identity.KeyUserEmail); ok {
			r.notice(diag.MetaInferredEmail,
				fmt.Sprintf("inferred email %q from git %s", value, identity.KeyUserEmail))
			return value
		}

	case FieldVersion:
		if value := inferVersion(r.readme); value != "" {
			r.notice(diag.MetaInferredVersion,
				fmt.Sprintf("inferred version %q from readme", value))
			return value
		}

	case FieldSummary:
		if value := inferSummary(r.readme); value != "" {
			r.notice(diag.MetaInferredSummary,
				fmt.Sprintf("inferred summary %q from readme", value))
			return value
		}

	case FieldDescription:
		if value := inferDescription(r.readme); strings.TrimSpace(value) != "" {
			r.notice(diag.MetaInferredDescription,
				"inferred description from readme text")
			return value
		}

	case FieldHomepage:
		if value := inferHomepage(r.readme); value != "" {
			r.notice(diag.MetaInferredHomepage,
				fmt.Sprintf("inferred homepage %q from readme", value))
			return value
		}

	case FieldName:
		// Never inferred: the caller derives it from the source filename
		// and passes it through defaults.
	}
	return ""
}

func (r *resolver) notice(code diag.Code, msg string) {
	// Inference has no single source position; the zero span is deliberate.
	diag.ReportInfo(r.reporter, code, source.Span{}, msg)
}
