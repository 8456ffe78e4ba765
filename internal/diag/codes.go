package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for uncategorized diagnostics.
	UnknownCode Code = 0

	// Lexical
	LexUnterminatedDocComment Code = 1001
	LexStrayDocCommentDelim   Code = 1002

	// Metadata resolution
	MetaInfo         Code = 2000
	MetaBadSyntax    Code = 2001
	MetaMissingField Code = 2002

	// Inference notices (SevInfo)
	MetaInferredAuthor      Code = 2100
	MetaInferredEmail       Code = 2101
	MetaInferredVersion     Code = 2102
	MetaInferredHomepage    Code = 2103
	MetaInferredSummary     Code = 2104
	MetaInferredDescription Code = 2105

	// Packaging pipeline
	PackStageFailed Code = 3001
	PackCheckFailed Code = 3002
	PackBuildFailed Code = 3003
	PackCacheHit    Code = 3004
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexUnterminatedDocComment: "unterminated block documentation comment",
	LexStrayDocCommentDelim:   "stray documentation comment delimiter",

	MetaInfo:         "metadata information",
	MetaBadSyntax:    "malformed package metadata",
	MetaMissingField: "required package field unresolved",

	MetaInferredAuthor:      "author inferred",
	MetaInferredEmail:       "email inferred",
	MetaInferredVersion:     "version inferred from readme",
	MetaInferredHomepage:    "homepage inferred from readme",
	MetaInferredSummary:     "summary inferred from readme",
	MetaInferredDescription: "description inferred from readme",

	PackStageFailed: "failed to stage package directory",
	PackCheckFailed: "syntax check failed",
	PackBuildFailed: "package build failed",
	PackCacheHit:    "build skipped, artifact up to date",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("META%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("PACK%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
