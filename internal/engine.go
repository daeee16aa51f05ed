package internal

import (
	"fmt"
	"regexp"
)

// Engine holds the compiled pattern set and the replacement policy.
// It is immutable after construction and safe to share across goroutines.
type Engine struct {
	patterns    []compiledPattern
	replaceWith string
}

type compiledPattern struct {
	raw string
	re  *regexp.Regexp
}

// InvalidPatternError reports a pattern that failed to compile.
// It is the only error the engine can produce; every operation after a
// successful NewEngine is total.
type InvalidPatternError struct {
	Index   int
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q at index %d: %v", e.Pattern, e.Index, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// NewEngine compiles the given patterns in declaration order.
// Compilation stops at the first invalid pattern; there is no partial mode.
func NewEngine(matches []string, replaceWith string) (*Engine, error) {
	patterns := make([]compiledPattern, 0, len(matches))
	for i, raw := range matches {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, &InvalidPatternError{Index: i, Pattern: raw, Err: err}
		}
		patterns = append(patterns, compiledPattern{raw: raw, re: re})
	}

	return &Engine{
		patterns:    patterns,
		replaceWith: replaceWith,
	}, nil
}

// Patterns returns the raw pattern strings in declaration order.
func (e *Engine) Patterns() []string {
	raws := make([]string, len(e.patterns))
	for i, p := range e.patterns {
		raws[i] = p.raw
	}
	return raws
}

// ReplaceWith returns the configured replacement string.
func (e *Engine) ReplaceWith() string {
	return e.replaceWith
}
