package ingestion

import (
	"regexp"
	"strings"
)

var excessiveBlankLines = regexp.MustCompile(`\n\n\n+`)

// CleanText normalizes line endings, strips trailing whitespace from each
// line and keeps at most one blank line between blocks. Line boundaries are
// preserved because date ranges are matched per line.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// CRLF and lone CR both become LF
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\u00a0")
	}

	result := strings.Join(lines, "\n")
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}
