package experience

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// RangeMatch is one bracketed date range found on a line, e.g. "(Jan 2019 - Present)".
// Month slots hold the three letters as written; they are validated by ParseMonth.
type RangeMatch struct {
	StartMonth string
	StartYear  string
	EndMonth   string // empty when EndPresent
	EndYear    string // optional when EndPresent
	EndPresent bool
	Offset     int // byte offset of the opening parenthesis
	Length     int // bytes up to and including the closing parenthesis
}

// StartToken returns the start endpoint as "<month> <year>".
func (m RangeMatch) StartToken() string {
	return m.StartMonth + " " + m.StartYear
}

// EndToken returns the end endpoint as "<month> <year>", or "present".
func (m RangeMatch) EndToken() string {
	if m.EndPresent {
		return "present"
	}
	return m.EndMonth + " " + m.EndYear
}

// ScanLine returns every bracketed date range on the line, leftmost first.
// When there is none, the error is a *ScanError describing why the first
// opening parenthesis did not start a range.
func ScanLine(line string) ([]RangeMatch, error) {
	var (
		matches  []RangeMatch
		firstErr error
	)

	for from := 0; from < len(line); {
		i := strings.IndexByte(line[from:], '(')
		if i < 0 {
			break
		}
		open := from + i

		m, err := matchRange(line, open)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			from = open + 1
			continue
		}
		matches = append(matches, m)
		from = open + m.Length
	}

	if len(matches) == 0 {
		if firstErr == nil {
			firstErr = &ScanError{Reason: ReasonNoOpenParen, Offset: 0}
		}
		return nil, firstErr
	}
	return matches, nil
}

// matchRange runs the range grammar anchored at the '(' at position open:
//
//	( ws* MON ws+ YYYY ws* - ws* (MON | present | current) ws* [YYYY] ws* )
//
// Letters match case-insensitively; YYYY is exactly four ASCII digits.
func matchRange(line string, open int) (RangeMatch, error) {
	fail := func(reason ScanReason, at int) (RangeMatch, error) {
		return RangeMatch{}, &ScanError{Reason: reason, Offset: at}
	}

	m := RangeMatch{Offset: open}
	pos := open + 1

	pos = skipSpace(line, pos)
	word, ok := letters(line, pos, 3)
	if !ok {
		return fail(ReasonStartMonth, pos)
	}
	m.StartMonth = word
	pos += 3

	after := skipSpace(line, pos)
	if after == pos {
		return fail(ReasonStartMonth, pos)
	}
	pos = after

	year, ok := digits4(line, pos)
	if !ok {
		return fail(ReasonStartYear, pos)
	}
	m.StartYear = year
	pos += 4

	pos = skipSpace(line, pos)
	if pos >= len(line) || line[pos] != '-' {
		return fail(ReasonHyphen, pos)
	}
	pos = skipSpace(line, pos+1)

	switch {
	case hasFoldPrefix(line[pos:], "present"):
		m.EndPresent = true
		pos += len("present")
	case hasFoldPrefix(line[pos:], "current"):
		m.EndPresent = true
		pos += len("current")
	default:
		word, ok := letters(line, pos, 3)
		if !ok {
			return fail(ReasonEndToken, pos)
		}
		m.EndMonth = word
		pos += 3
	}

	pos = skipSpace(line, pos)
	if year, ok := digits4(line, pos); ok {
		m.EndYear = year
		pos = skipSpace(line, pos+4)
	} else if !m.EndPresent {
		return fail(ReasonEndYear, pos)
	}

	if pos >= len(line) || line[pos] != ')' {
		return fail(ReasonCloseParen, pos)
	}
	m.Length = pos + 1 - open

	return m, nil
}

func skipSpace(s string, pos int) int {
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}

// letters returns the n ASCII letters starting at pos.
func letters(s string, pos, n int) (string, bool) {
	if pos+n > len(s) {
		return "", false
	}
	for i := pos; i < pos+n; i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return "", false
		}
	}
	return s[pos : pos+n], true
}

func digits4(s string, pos int) (string, bool) {
	if pos+4 > len(s) {
		return "", false
	}
	for i := pos; i < pos+4; i++ {
		if !isDigit(s[i]) {
			return "", false
		}
	}
	return s[pos : pos+4], true
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
