package internal

import "strings"

// maskText builds the replacement for a match spanning width code points.
// An empty mask deletes the matched region; a non-empty mask is repeated
// and truncated to exactly width code points so the visible length of the
// literal is preserved.
func maskText(width int, mask string) string {
	if mask == "" || width <= 0 {
		return ""
	}

	maskRunes := []rune(mask)
	out := make([]rune, width)
	for i := range out {
		out[i] = maskRunes[i%len(maskRunes)]
	}
	return string(out)
}

// RewriteText scans text with every compiled pattern and splices the
// configured replacement over each accepted match. It reports false when
// the text comes back unchanged so callers can keep the original node and
// its metadata untouched.
func (e *Engine) RewriteText(text string) (string, bool) {
	var candidates []span
	for i, p := range e.patterns {
		candidates = append(candidates, scanPattern(text, p.re, i)...)
	}
	if len(candidates) == 0 {
		return text, false
	}

	spans := resolveSpans(candidates)
	runes := []rune(text)

	var b strings.Builder
	prev := 0
	for _, s := range spans {
		b.WriteString(string(runes[prev:s.start]))
		b.WriteString(maskText(s.length(), e.replaceWith))
		prev = s.end
	}
	b.WriteString(string(runes[prev:]))

	out := b.String()
	return out, out != text
}

// matchedPatterns returns the raw patterns that produced accepted spans for
// text, deduplicated and in declaration order. Used for change reporting.
func (e *Engine) matchedPatterns(text string) []string {
	var candidates []span
	for i, p := range e.patterns {
		candidates = append(candidates, scanPattern(text, p.re, i)...)
	}

	seen := make(map[int]struct{})
	for _, s := range resolveSpans(candidates) {
		seen[s.pattern] = struct{}{}
	}

	var raws []string
	for i, p := range e.patterns {
		if _, ok := seen[i]; ok {
			raws = append(raws, p.raw)
		}
	}
	return raws
}
