package token

import (
	"parcel/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsDoc reports whether the token belongs to a block documentation comment.
func (t Token) IsDoc() bool { return t.Kind.IsDoc() }

// IsEOF reports whether the token marks the end of input.
func (t Token) IsEOF() bool { return t.Kind == EOF }
