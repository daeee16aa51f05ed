package internal

import (
	"regexp"
	"sort"
	"unicode/utf8"
)

// span is a half-open range of code point offsets [start, end) into a
// literal's decoded text, tagged with the index of the pattern that
// produced it.
type span struct {
	start   int
	end     int
	pattern int
}

func (s span) length() int {
	return s.end - s.start
}

// scanPattern runs a leftmost, non-overlapping search for a single pattern
// and reports the matches as code point spans. regexp already resumes after
// each match and advances one rune past zero-length matches, so the only
// work here is converting byte offsets to rune offsets. Matches arrive in
// byte order, which allows a single forward pass over the text.
func scanPattern(text string, re *regexp.Regexp, pattern int) []span {
	idx := re.FindAllStringIndex(text, -1)
	if len(idx) == 0 {
		return nil
	}

	spans := make([]span, 0, len(idx))
	bytePos, runePos := 0, 0
	toRuneOffset := func(target int) int {
		for bytePos < target {
			_, size := utf8.DecodeRuneInString(text[bytePos:])
			bytePos += size
			runePos++
		}
		return runePos
	}

	for _, m := range idx {
		start := toRuneOffset(m[0])
		end := toRuneOffset(m[1])
		spans = append(spans, span{start: start, end: end, pattern: pattern})
	}
	return spans
}

// resolveSpans merges candidate spans from all patterns into one
// non-overlapping list, sorted by start. At equal start the longer match
// wins regardless of declaration order; at equal start and length the
// earlier-declared pattern wins. The sweep is greedy: a candidate is
// accepted iff it begins at or after the end of the last accepted span,
// and rejected candidates are not retried against shorter alternatives.
func resolveSpans(candidates []span) []span {
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.start != b.start {
			return a.start < b.start
		}
		if a.length() != b.length() {
			return a.length() > b.length()
		}
		return a.pattern < b.pattern
	})

	resolved := make([]span, 0, len(candidates))
	lastEnd := 0
	for _, c := range candidates {
		if len(resolved) > 0 && c.start < lastEnd {
			continue
		}
		resolved = append(resolved, c)
		lastEnd = c.end
	}
	return resolved
}
