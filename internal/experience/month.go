package experience

import (
	"fmt"
	"time"
)

// Month is a calendar month, ordered by year then month.
type Month struct {
	Year  int
	Month int // 1..12
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: int(t.Month())}
}

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after o.
func (m Month) Compare(o Month) int {
	switch {
	case m.Year < o.Year:
		return -1
	case m.Year > o.Year:
		return 1
	case m.Month < o.Month:
		return -1
	case m.Month > o.Month:
		return 1
	}
	return 0
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool {
	return m.Compare(o) < 0
}

// Next returns the following calendar month, rolling the year over after December.
func (m Month) Next() Month {
	if m.Month >= 12 {
		return Month{Year: m.Year + 1, Month: 1}
	}
	return Month{Year: m.Year, Month: m.Month + 1}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, m.Month)
}

// MarshalText renders the month as YYYY-MM.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a YYYY-MM value.
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseYearMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseYearMonth parses a YYYY-MM string such as "2024-06".
func ParseYearMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, &ParseError{Token: s, Message: "expected YYYY-MM", Cause: err}
	}
	return MonthOf(t), nil
}

// MonthsBetween counts the calendar months from start to end, both inclusive.
// The result is zero or negative when end is before start.
func MonthsBetween(start, end Month) int {
	return (end.Year-start.Year)*12 + (end.Month - start.Month) + 1
}

// Interval is an inclusive range of calendar months covering one engagement.
type Interval struct {
	Start Month `json:"start"`
	End   Month `json:"end"`
}

// Reversed reports whether the interval ends before it starts.
func (iv Interval) Reversed() bool {
	return iv.End.Before(iv.Start)
}

func (iv Interval) String() string {
	return iv.Start.String() + ".." + iv.End.String()
}

// Clock supplies the month that "present" and "current" resolve to.
type Clock interface {
	Now() Month
}

// SystemClock reads the wall clock on every call.
type SystemClock struct{}

// Now returns the current month in local time.
func (SystemClock) Now() Month {
	return MonthOf(time.Now())
}

// FixedClock always reports the same month.
type FixedClock Month

// Now returns the fixed month.
func (c FixedClock) Now() Month {
	return Month(c)
}
