// Package chunker splits one annotated script into its metadata, readme, and
// library regions with a single forward pass over the token stream.
package chunker

import (
	"strings"

	"parcel/internal/diag"
	"parcel/internal/lexer"
	"parcel/internal/source"
	"parcel/internal/token"
)

// State is the cursor of the chunking state machine. Transitions are
// one-directional; the stream is never rescanned.
type State uint8

const (
	// SeekingBrief skips tokens until the documentation comment opens.
	SeekingBrief State = iota
	// ReadMetadata accumulates comment lines into the metadata buffer.
	ReadMetadata
	// ReadReadme accumulates comment lines into the readme buffer.
	ReadReadme
	// ReadLibrary accumulates every remaining token verbatim.
	ReadLibrary
)

func (s State) String() string {
	switch s {
	case SeekingBrief:
		return "SeekingBrief"
	case ReadMetadata:
		return "ReadMetadata"
	case ReadReadme:
		return "ReadReadme"
	case ReadLibrary:
		return "ReadLibrary"
	}
	return "Unknown"
}

// separator ends the metadata region inside the documentation comment.
const separator = "---"

// Chunks holds the three accumulated regions of a source file. Metadata and
// readme come from the first block documentation comment; library is
// everything after it, verbatim.
type Chunks struct {
	Metadata string
	Readme   string
	Library  string
}

// Chunk lexes the file and classifies the token stream. The reporter (may be
// nil) receives lexical diagnostics such as an unterminated comment.
//
// A file without a documentation comment yields empty metadata and readme,
// with the whole input as library. A comment without a separator line yields
// the entire comment body as metadata and an empty readme.
func Chunk(file *source.File, reporter diag.Reporter) Chunks {
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	var meta, readme, library strings.Builder
	state := SeekingBrief
	sawDoc := false

	for {
		tok := lx.Next()
		if tok.IsEOF() {
			break
		}

		switch state {
		case SeekingBrief:
			if tok.Kind == token.DocBegin {
				sawDoc = true
				state = ReadMetadata
			}

		case ReadMetadata:
			switch tok.Kind {
			case token.DocEnd:
				// No separator line: the whole comment body is metadata.
				state = ReadLibrary
			case token.DocText:
				if isSeparatorLine(tok.Text) {
					state = ReadReadme
				} else {
					meta.WriteString(tok.Text)
				}
			}

		case ReadReadme:
			switch tok.Kind {
			case token.DocEnd:
				state = ReadLibrary
			case token.DocText:
				readme.WriteString(tok.Text)
			}

		case ReadLibrary:
			library.WriteString(tok.Text)
		}
	}

	if !sawDoc {
		return Chunks{Library: string(file.Content)}
	}
	return Chunks{
		Metadata: meta.String(),
		Readme:   readme.String(),
		Library:  library.String(),
	}
}

// isSeparatorLine reports whether a comment line is exactly the separator,
// surrounding whitespace ignored.
func isSeparatorLine(line string) bool {
	return strings.TrimSpace(line) == separator
}
