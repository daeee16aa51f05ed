// Package internal provides the core functionality for a string literal content scrubber.
//
// This package implements the matching and replacement engine that scans the
// decoded text of string literals for substrings matching a configured set of
// regular expression patterns and rewrites each match according to a length
// policy: an empty replacement deletes the matched region, a non-empty
// replacement masks it while preserving its visible length in code points.
//
// Key components:
//
// Engine: Holds the compiled pattern set and the replacement policy.
// Patterns are compiled once at construction and never re-validated per
// literal; a compiled engine is immutable and safe to share across
// concurrent rewrites.
//
// RewriteText: The per-literal entry point. It scans the text with every
// pattern, merges the candidate matches into a non-overlapping span list
// (longer match wins at equal start, then the earlier-declared pattern),
// and splices the replacements into the output.
//
// Run / RunSource: Walk a parsed Go file, rewrite every string literal
// outside import declarations, and report each rewrite as a Change.
//
// Watcher: Re-runs the engine on files as they change on disk.
package internal
