package noscrub

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

const noscrubPrefix = "//noscrub"

// Manager manages noscrub scopes and checks if a position is exempt from
// literal rewriting.
type Manager struct {
	// scopes maps filename to a slice of noscrub scopes.
	scopes map[string][]noscrubScope
}

// noscrubScope represents a range in the code where noscrub applies.
type noscrubScope struct {
	start token.Position
	end   token.Position
}

// ParseComments parses noscrub comments in the given AST file and returns a Manager.
func ParseComments(f *ast.File, fset *token.FileSet) *Manager {
	manager := Manager{
		scopes: make(map[string][]noscrubScope, len(f.Comments)),
	}
	stmtMap := indexStatementsByLine(f, fset)
	packageLine := fset.Position(f.Package).Line

	for _, cg := range f.Comments {
		for _, comment := range cg.List {
			ns, err := parseComment(comment, f, fset, stmtMap, packageLine)
			if err != nil {
				// ignore invalid noscrub comments
				continue
			}
			filename := ns.start.Filename
			manager.scopes[filename] = append(manager.scopes[filename], ns)
		}
	}
	return &manager
}

// parseComment parses a single noscrub comment and determines its scope.
func parseComment(
	comment *ast.Comment,
	f *ast.File,
	fset *token.FileSet,
	stmtMap map[int]ast.Stmt,
	packageLine int,
) (noscrubScope, error) {
	var ns noscrubScope
	text := comment.Text

	if !strings.HasPrefix(text, noscrubPrefix) {
		return ns, fmt.Errorf("invalid noscrub comment")
	}

	rest := text[len(noscrubPrefix):]
	if rest != "" && !strings.HasPrefix(rest, " ") {
		// e.g. //noscrubber is not a directive
		return ns, fmt.Errorf("invalid noscrub comment format")
	}

	pos := fset.Position(comment.Slash)

	// If the comment appears before the package declaration, apply it to the entire file
	if pos.Line < packageLine {
		ns.start = fset.Position(f.Pos())
		ns.end = fset.Position(f.End())
		return ns, nil
	}

	// Check if the comment is inline (appears after code on the same line)
	if stmt, exists := stmtMap[pos.Line]; exists {
		if fset.Position(stmt.Pos()).Line == pos.Line && fset.Position(stmt.Pos()).Column < pos.Column {
			// For inline comments, apply to the scope of the current statement
			ns.start = fset.Position(stmt.Pos())
			ns.end = fset.Position(stmt.End())
			return ns, nil
		}
	}

	// For standalone comments: if there's a statement on the next line,
	// apply to that statement's scope while including the comment line itself
	if stmt, exists := stmtMap[pos.Line+1]; exists {
		ns.start = pos
		ns.end = fset.Position(stmt.End())
		return ns, nil
	}

	// If no immediate statement follows, look for a declaration to apply to
	for _, decl := range f.Decls {
		declPos := fset.Position(decl.Pos())
		if declPos.Line == pos.Line+1 {
			ns.start = pos
			ns.end = fset.Position(decl.End())
			return ns, nil
		}
	}

	// default behavior:
	// apply only to the comment line
	ns.start = pos
	ns.end = pos
	return ns, nil
}

// indexStatementsByLine traverses the AST once and maps each line to its
// corresponding statement. If multiple statements exist on a single line,
// only the first statement is recorded.
func indexStatementsByLine(f *ast.File, fset *token.FileSet) map[int]ast.Stmt {
	stmtMap := make(map[int]ast.Stmt)
	ast.Inspect(f, func(n ast.Node) bool {
		if n == nil {
			return false
		}
		if stmt, ok := n.(ast.Stmt); ok {
			line := fset.Position(stmt.Pos()).Line
			if _, exists := stmtMap[line]; !exists {
				stmtMap[line] = stmt
			}
		}
		return true
	})
	return stmtMap
}

// IsSuppressed reports whether the given position falls inside any noscrub scope.
func (m *Manager) IsSuppressed(pos token.Position) bool {
	if m == nil {
		return false
	}
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if posInRange(pos, ns.start, ns.end) {
			return true
		}
	}
	return false
}

func posInRange(pos, start, end token.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Column < start.Column {
		return false
	}
	if pos.Line == end.Line && end.Column > 0 && pos.Column > end.Column {
		return false
	}
	return true
}
