package internal

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"strconv"
	"strings"

	"github.com/scrublabs/tscrub/internal/noscrub"
	tt "github.com/scrublabs/tscrub/internal/types"
	"golang.org/x/tools/go/ast/astutil"
)

// Run parses the given file, rewrites every matching string literal, and
// returns the formatted output together with the list of changes. The
// output equals the input when no literal matched.
func (e *Engine) Run(filename string) ([]byte, []tt.Change, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}
	return e.run(filename, src)
}

// RunSource is like Run but operates on in-memory source.
func (e *Engine) RunSource(src []byte) ([]byte, []tt.Change, error) {
	return e.run("source.go", src)
}

func (e *Engine) run(filename string, src []byte) ([]byte, []tt.Change, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file: %w", err)
	}

	mgr := noscrub.ParseComments(f, fset)

	var changes []tt.Change
	astutil.Apply(f, func(c *astutil.Cursor) bool {
		switch node := c.Node().(type) {
		case *ast.GenDecl:
			// import paths identify modules, not content
			if node.Tok == token.IMPORT {
				return false
			}
		case *ast.BasicLit:
			if node.Kind != token.STRING {
				return true
			}
			if mgr.IsSuppressed(fset.Position(node.Pos())) {
				return true
			}
			if change, ok := e.rewriteLiteral(node, fset); ok {
				changes = append(changes, change)
			}
		}
		return true
	}, nil)

	if len(changes) == 0 {
		return src, nil, nil
	}

	var buf bytes.Buffer
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, nil, fmt.Errorf("failed to format file: %w", err)
	}
	return buf.Bytes(), changes, nil
}

// rewriteLiteral rewrites one string literal in place and reports the
// change. The literal keeps its position and, where possible, its quote
// style; only the decoded text is recomputed.
func (e *Engine) rewriteLiteral(lit *ast.BasicLit, fset *token.FileSet) (tt.Change, bool) {
	old, ok := decodeLiteral(lit.Value)
	if !ok {
		return tt.Change{}, false
	}

	rewritten, changed := e.RewriteText(old)
	if !changed {
		return tt.Change{}, false
	}

	start := fset.Position(lit.Pos())
	end := fset.Position(lit.End())
	lit.Value = encodeLiteral(lit.Value, rewritten)

	return tt.Change{
		Filename: start.Filename,
		Start:    start,
		End:      end,
		Old:      old,
		New:      rewritten,
		Patterns: e.matchedPatterns(old),
	}, true
}

// decodeLiteral returns the decoded text of a quoted string literal.
func decodeLiteral(quoted string) (string, bool) {
	if len(quoted) < 2 {
		return "", false
	}
	if quoted[0] == '`' {
		// carriage returns are discarded from raw string literal values
		return strings.ReplaceAll(quoted[1:len(quoted)-1], "\r", ""), true
	}
	s, err := strconv.Unquote(quoted)
	if err != nil {
		return "", false
	}
	return s, true
}

// encodeLiteral re-quotes rewritten text, keeping the original raw quote
// style when the new text still permits it.
func encodeLiteral(original, text string) string {
	if original[0] == '`' && !strings.ContainsAny(text, "`\r") {
		return "`" + text + "`"
	}
	return strconv.Quote(text)
}
