// Package lexer scans annotated script files into the token stream consumed
// by the chunker. The scan is line oriented: every token covers exactly one
// source line (newline included), so concatenating token text in stream
// order reproduces the file byte for byte.
//
// A block documentation comment opens with a line holding only "/*" and
// closes with a line holding only "*/". Delimiter lines inside ordinary code
// are recognized the same way wherever they appear; it is the chunker that
// gives the first comment its special meaning.
package lexer

import (
	"strings"

	"parcel/internal/diag"
	"parcel/internal/source"
	"parcel/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
	inDoc  bool
	warned bool // unterminated-comment report emitted
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	if lx.cursor.EOF() {
		if lx.inDoc && !lx.warned {
			lx.warned = true
			lx.report(diag.LexUnterminatedDocComment, lx.emptySpan(),
				"block documentation comment is never closed")
		}
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
			Text: "",
		}
	}

	mark := lx.cursor.Mark()
	lx.scanLine()
	sp := lx.cursor.SpanFrom(mark)
	text := string(lx.file.Content[sp.Start:sp.End])

	kind := token.Code
	switch {
	case !lx.inDoc && isDelimiterLine(text, "/*"):
		lx.inDoc = true
		kind = token.DocBegin
	case lx.inDoc && isDelimiterLine(text, "*/"):
		lx.inDoc = false
		kind = token.DocEnd
	case lx.inDoc:
		kind = token.DocText
	case isDelimiterLine(text, "*/"):
		// A closer with no matching opener stays ordinary code.
		lx.reportWarning(diag.LexStrayDocCommentDelim, sp,
			"closing comment delimiter without an open comment")
	}

	return token.Token{Kind: kind, Span: sp, Text: text}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokens drains the lexer and returns the full stream, EOF excluded.
func (lx *Lexer) Tokens() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.IsEOF() {
			return out
		}
		out = append(out, tok)
	}
}

// scanLine consumes bytes through the next '\n' (or to EOF).
func (lx *Lexer) scanLine() {
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '\n' {
			return
		}
	}
}

// isDelimiterLine reports whether the line consists of the delimiter at
// column zero followed only by whitespace.
func isDelimiterLine(line, delim string) bool {
	rest, ok := strings.CutPrefix(line, delim)
	if !ok {
		return false
	}
	return strings.TrimSpace(rest) == ""
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
