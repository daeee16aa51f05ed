package formatter

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/scrublabs/tscrub/internal"
	tt "github.com/scrublabs/tscrub/internal/types"
)

const tabWidth = 8

var (
	headerStyle  = color.New(color.FgRed, color.Bold)
	patternStyle = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	newTextStyle = color.New(color.FgGreen, color.Bold)
)

// GenerateFormattedChanges formats a slice of changes into a human-readable
// report: the offending line with arrows under the literal, followed by the
// rewritten text.
func GenerateFormattedChanges(changes []tt.Change, sourceCode *internal.SourceCode) string {
	var builder strings.Builder
	for _, change := range changes {
		builder.WriteString(formatChangeHeader(change))
		builder.WriteString(formatChangeBody(change, sourceCode))
	}
	return builder.String()
}

func formatChangeHeader(change tt.Change) string {
	return headerStyle.Sprint("rewrite: ") + patternStyle.Sprint(strings.Join(change.Patterns, ", ")) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", change.Filename, change.Start.Line, change.Start.Column) + "\n"
}

func formatChangeBody(change tt.Change, sourceCode *internal.SourceCode) string {
	var result strings.Builder

	lineNumberStr := fmt.Sprintf("%d", change.Start.Line)
	padding := strings.Repeat(" ", len(lineNumberStr))

	if change.Start.Line >= 1 && change.Start.Line <= len(sourceCode.Lines) {
		line := sourceCode.Lines[change.Start.Line-1]
		result.WriteString(lineStyle.Sprintf("%s |\n", padding))
		result.WriteString(lineStyle.Sprintf("%s | ", lineNumberStr))
		result.WriteString(expandTabs(line) + "\n")
		result.WriteString(lineStyle.Sprintf("%s | ", padding))

		visualStart := calculateVisualColumn(line, change.Start.Column)
		visualEnd := visualStart + 1
		if change.End.Line == change.Start.Line {
			visualEnd = calculateVisualColumn(line, change.End.Column)
		}
		arrowLength := visualEnd - visualStart
		if arrowLength < 1 {
			arrowLength = 1
		}
		result.WriteString(strings.Repeat(" ", visualStart))
		result.WriteString(headerStyle.Sprint(strings.Repeat("^", arrowLength)))
		result.WriteString("\n")
	}

	result.WriteString(lineStyle.Sprintf("%s = ", padding))
	result.WriteString(newTextStyle.Sprintf("replaced with %q", change.New))
	result.WriteString("\n\n")
	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for _, ch := range line {
		if ch == '\t' {
			expanded.WriteString(strings.Repeat(" ", tabWidth-(expanded.Len()%tabWidth)))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

// calculateVisualColumn converts a 1-based column into a visual offset,
// accounting for tab expansion.
func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
