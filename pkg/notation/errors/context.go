package errors

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mercator-hq/lexicon/pkg/notation/ast"
)

// ExtractContext reads the notation file and extracts the surrounding lines
// around the given location for error context display.
// It returns a formatted string showing the error location with line numbers.
func ExtractContext(location ast.Location, contextLines int) string {
	if !location.IsValid() {
		return ""
	}

	file, err := os.Open(location.File)
	if err != nil {
		// File not accessible, return empty context
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lines := make([]string, 0)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return ""
	}

	return formatContext(lines, location, contextLines)
}

// LineContext formats a single in-memory line with a column marker.
func LineContext(line string, location ast.Location) string {
	if location.Line <= 0 {
		location.Line = 1
	}
	lines := make([]string, location.Line)
	lines[location.Line-1] = line
	return formatContext(lines, location, 0)
}

func formatContext(lines []string, location ast.Location, contextLines int) string {
	errorLine := location.Line - 1 // 0-based index
	if errorLine < 0 || errorLine >= len(lines) {
		return ""
	}

	startLine := max(errorLine-contextLines, 0)
	endLine := min(errorLine+contextLines, len(lines)-1)

	var sb strings.Builder
	maxLineNumWidth := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		sb.WriteString(fmt.Sprintf("  %s %*d | %s\n", prefix, maxLineNumWidth, i+1, lines[i]))

		// Column indicator for the error line
		if i == errorLine && location.Column > 0 {
			sb.WriteString(fmt.Sprintf("     %s | %s^\n",
				strings.Repeat(" ", maxLineNumWidth), strings.Repeat(" ", location.Column-1)))
		}
	}

	return sb.String()
}

// WithContext fills err.Context from the source file.
func WithContext(err *Error, contextLines int) *Error {
	if err.Location.IsValid() {
		err.Context = ExtractContext(err.Location, contextLines)
	}
	return err
}

// AddContextToError adds context to an error by reading the source file.
// It shows the offending line only; notation entries are independent lines.
func AddContextToError(err *Error) *Error {
	return WithContext(err, 0)
}
