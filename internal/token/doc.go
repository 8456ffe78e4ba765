// Package token defines lexical token kinds for annotated script files.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Begin..End).
//   - DocText tokens are emitted one per comment line, trailing newline
//     included, so that line-oriented consumers never reassemble lines.
//   - Concatenating the Text of every token in stream order reproduces the
//     source file byte for byte.
package token
