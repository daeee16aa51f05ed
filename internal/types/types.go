package types

import "go/token"

// Change records a single literal rewrite applied to the code base.
type Change struct {
	Filename string
	Start    token.Position
	End      token.Position
	Old      string   // decoded literal text before the rewrite
	New      string   // decoded literal text after the rewrite
	Patterns []string // raw patterns with accepted matches, in declaration order
}
