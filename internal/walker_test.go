package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustEngine(t *testing.T, matches []string, replaceWith string) *Engine {
	t.Helper()
	engine, err := NewEngine(matches, replaceWith)
	require.NoError(t, err)
	return engine
}

func TestRunSource(t *testing.T) {
	t.Parallel()

	hanPattern := `[\x{4E00}-\x{9FFF}]`

	tests := []struct {
		name        string
		matches     []string
		replaceWith string
		src         string
		expected    string
		numChanges  int
	}{
		{
			name:    "no matching literal is untouched",
			matches: []string{hanPattern},
			src: `package main

import "fmt"

func main() {
	fmt.Println("transform")
}
`,
			expected: `package main

import "fmt"

func main() {
	fmt.Println("transform")
}
`,
			numChanges: 0,
		},
		{
			name:    "removes matches in call arguments",
			matches: []string{hanPattern},
			src: `package main

import "fmt"

func main() {
	fmt.Println("transform中文")
}
`,
			expected: `package main

import "fmt"

func main() {
	fmt.Println("transform")
}
`,
			numChanges: 1,
		},
		{
			name:    "removes matches in struct fields",
			matches: []string{hanPattern},
			src: `package main

var errInfo = struct {
	code    int
	message string
	detail  string
}{
	code:    1,
	message: "视频下载错误",
	detail:  "只要视频下载xhr错误就使用，此类型",
}
`,
			expected: `package main

var errInfo = struct {
	code    int
	message string
	detail  string
}{
	code:    1,
	message: "",
	detail:  "xhr，",
}
`,
			numChanges: 2,
		},
		{
			name:        "masks url preserving length",
			matches:     []string{`abc\.com|cde\.org`},
			replaceWith: "*",
			src: `package main

const endpoint = "https://abc.com/faker-url"
`,
			expected: `package main

const endpoint = "https://*******/faker-url"
`,
			numChanges: 1,
		},
		{
			name:    "escaped backslashes survive",
			matches: []string{hanPattern},
			src: `package main

const sep = "\\\\"
`,
			expected: `package main

const sep = "\\\\"
`,
			numChanges: 0,
		},
		{
			name:    "raw literal keeps raw quoting",
			matches: []string{hanPattern},
			src: "package main\n\nconst tmpl = `\\\\中文`\n",
			expected: "package main\n\nconst tmpl = `\\\\`\n",
			numChanges: 1,
		},
		{
			name:    "import paths are never scrubbed",
			matches: []string{`abc\.com|cde\.org`},
			src: `package main

import (
	_ "abc.com/faker"
	other "abc.com/faker/v2"
)

var _ = other.Value
`,
			expected: `package main

import (
	_ "abc.com/faker"
	other "abc.com/faker/v2"
)

var _ = other.Value
`,
			numChanges: 0,
		},
		{
			name:    "body literals change while import paths stay",
			matches: []string{`abc\.com`},
			src: `package main

import _ "abc.com/faker"

const url = "https://abc.com/path"
`,
			expected: `package main

import _ "abc.com/faker"

const url = "https:///path"
`,
			numChanges: 1,
		},
		{
			name:    "noscrub suppresses the literal",
			matches: []string{hanPattern},
			src: `package main

func message() string {
	return "视频下载错误" //noscrub
}
`,
			expected: `package main

func message() string {
	return "视频下载错误" //noscrub
}
`,
			numChanges: 0,
		},
		{
			name:    "file level noscrub suppresses everything",
			matches: []string{hanPattern},
			src: `//noscrub

package main

const a = "中文"
const b = "错误"
`,
			expected: `//noscrub

package main

const a = "中文"
const b = "错误"
`,
			numChanges: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := mustEngine(t, tt.matches, tt.replaceWith)

			output, changes, err := engine.RunSource([]byte(tt.src))
			require.NoError(t, err)
			assert.Len(t, changes, tt.numChanges)
			assert.Equal(t, tt.expected, string(output))
		})
	}
}

func TestDecodeLiteral(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		quoted   string
		expected string
		ok       bool
	}{
		{"interpreted", `"a\tb"`, "a\tb", true},
		{"raw", "`a\\tb`", "a\\tb", true},
		{"raw discards carriage returns", "`a\rb`", "ab", true},
		{"empty raw", "``", "", true},
		{"malformed", `"unterminated`, "", false},
		{"too short", `"`, "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := decodeLiteral(tt.quoted)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// a raw literal's value never contains carriage returns, so a pattern may
// match across a \r in the literal's source text
func TestRunSource_RawLiteralCarriageReturn(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, []string{"ab"}, "*")

	src := "package main\n\nconst v = `a\rb`\n"
	output, changes, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, "ab", changes[0].Old)
	assert.Equal(t, "**", changes[0].New)
	assert.Equal(t, "package main\n\nconst v = `**`\n", string(output))
}

func TestRunSource_ChangeMetadata(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, []string{`baidu\.com|google\.com`}, "")

	src := `package main

const notice = "see baidu.com now"
`
	_, changes, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, changes, 1)

	change := changes[0]
	assert.Equal(t, "see baidu.com now", change.Old)
	assert.Equal(t, "see  now", change.New)
	assert.Equal(t, []string{`baidu\.com|google\.com`}, change.Patterns)
	assert.Equal(t, 3, change.Start.Line)
	assert.Equal(t, 16, change.Start.Column)
}

func TestRunSource_ParseError(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, []string{"x"}, "")
	_, _, err := engine.RunSource([]byte("not valid go"))
	assert.Error(t, err)
}

func TestRun_File(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "sample.go")
	src := `package sample

const greeting = "hello 中文 world"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	engine := mustEngine(t, []string{`[\x{4E00}-\x{9FFF}]`}, "*")
	output, changes, err := engine.Run(path)
	require.NoError(t, err)
	require.Len(t, changes, 1)

	assert.Equal(t, `package sample

const greeting = "hello ** world"
`, string(output))
	assert.Equal(t, path, changes[0].Filename)

	// Run never writes; the file on disk is untouched
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, src, string(onDisk))
}

func TestRun_MissingFile(t *testing.T) {
	t.Parallel()

	engine := mustEngine(t, []string{"x"}, "")
	_, _, err := engine.Run(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}
