package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// DocBegin marks the opening delimiter of a block documentation comment.
	DocBegin // /*
	// DocText is one line of block documentation comment content,
	// trailing newline included.
	DocText
	// DocEnd marks the closing delimiter of a block documentation comment.
	DocEnd // */
	// Code is a verbatim run of ordinary source text outside the
	// documentation comment.
	Code
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case DocBegin:
		return "DocBegin"
	case DocText:
		return "DocText"
	case DocEnd:
		return "DocEnd"
	case Code:
		return "Code"
	}
	return "Unknown"
}

// IsDoc reports whether the token belongs to a block documentation comment.
func (k Kind) IsDoc() bool {
	switch k {
	case DocBegin, DocText, DocEnd:
		return true
	default:
		return false
	}
}
