package experience

import (
	"strings"
)

// punctuationReplacer folds typographic quotes and dashes to ASCII.
var punctuationReplacer = strings.NewReplacer(
	"’", "'", // right single quotation mark
	"‘", "'", // left single quotation mark
	"–", "-", // en dash
	"—", "-", // em dash
)

// century is prepended to two-digit year shorthand. Dates before 2000 or
// after 2099 written as 'NN are misread.
const century = "20"

// Normalize canonicalizes quotes, dashes and two-digit year shorthand ('24 -> 2024)
// and trims surrounding whitespace. It is total and idempotent.
func Normalize(text string) string {
	text = punctuationReplacer.Replace(text)
	text = expandYearShorthand(text)
	return strings.TrimSpace(text)
}

// expandYearShorthand rewrites an apostrophe followed by exactly two digits
// into a four-digit year. An apostrophe followed by three or more digits is
// left alone, so the output never contains a new shorthand.
func expandYearShorthand(text string) string {
	if !strings.Contains(text, "'") {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text) + 8)

	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\'' && i+2 < len(text) && isDigit(text[i+1]) && isDigit(text[i+2]) &&
			(i+3 == len(text) || !isDigit(text[i+3])) {
			sb.WriteString(century)
			sb.WriteByte(text[i+1])
			sb.WriteByte(text[i+2])
			i += 2
			continue
		}
		sb.WriteByte(c)
	}

	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
