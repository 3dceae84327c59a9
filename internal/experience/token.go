package experience

import (
	"strconv"
	"strings"
)

// monthNumbers maps three-letter month codes to month numbers
var monthNumbers = map[string]int{
	"jan": 1,
	"feb": 2,
	"mar": 3,
	"apr": 4,
	"may": 5,
	"jun": 6,
	"jul": 7,
	"aug": 8,
	"sep": 9,
	"oct": 10,
	"nov": 11,
	"dec": 12,
}

// presentWords resolve to the clock's current month wherever they occur in a token.
var presentWords = []string{"present", "current"}

// LookupMonth returns the month number for a name whose first three letters
// are a recognised month code ("Mar", "march", "SEPT").
func LookupMonth(name string) (int, bool) {
	code := strings.ToLower(name)
	if len(code) > 3 {
		code = code[:3]
	}
	n, ok := monthNumbers[code]
	return n, ok
}

// IsPresentWord reports whether the token mentions "present" or "current".
func IsPresentWord(token string) bool {
	lower := strings.ToLower(token)
	for _, w := range presentWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ParseMonth converts "<month> <year>" (e.g. "Mar 2021") into a calendar month.
// Tokens mentioning present or current resolve to clock.Now().
func ParseMonth(token string, clock Clock) (Month, error) {
	if IsPresentWord(token) {
		if clock == nil {
			clock = SystemClock{}
		}
		return clock.Now(), nil
	}

	fields := strings.Fields(token)
	if len(fields) != 2 {
		return Month{}, &ParseError{Token: token, Message: "expected month name and year"}
	}

	month, ok := LookupMonth(fields[0])
	if !ok {
		return Month{}, &ParseError{Token: token, Message: "unrecognised month " + strconv.Quote(fields[0])}
	}

	year, err := strconv.Atoi(fields[1])
	if err != nil {
		return Month{}, &ParseError{Token: token, Message: "year is not a number", Cause: err}
	}

	return Month{Year: year, Month: month}, nil
}
