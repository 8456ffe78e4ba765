// Package diag defines the diagnostic model shared by the chunker, the
// metadata resolver, and the packaging pipeline.
//
// Diagnostic is the central record: Severity, Code, Message, a primary
// source.Span, and optional Notes. Inference notices emitted by the resolver
// are ordinary SevInfo diagnostics with dedicated codes, so the CLI can
// print, filter, or silence them uniformly.
//
// Producers emit through a Reporter to stay decoupled from storage; the
// BagReporter aggregates into a Bag, which supports sorting, deduplication,
// and merging across pipeline phases. The package performs no formatting or
// IO; rendering lives in the CLI layer.
package diag
