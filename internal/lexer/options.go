package lexer

import (
	"parcel/internal/diag"
	"parcel/internal/source"
)

// Options configures a Lexer.
type Options struct {
	// Reporter may be nil; lexical problems are then dropped (scanning
	// continues regardless).
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (lx *Lexer) reportWarning(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg, nil)
	}
}
