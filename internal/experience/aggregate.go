package experience

import (
	"fmt"
	"strings"
)

// ReversedPolicy decides what happens to an interval whose end precedes its start.
type ReversedPolicy string

const (
	// ReversedDrop counts the interval as zero months.
	ReversedDrop ReversedPolicy = "drop"
	// ReversedError fails the aggregation with a *ReversedIntervalError.
	ReversedError ReversedPolicy = "error"
	// ReversedSwap exchanges start and end before counting.
	ReversedSwap ReversedPolicy = "swap"
)

// ParseReversedPolicy maps a config value to a policy. Empty means drop.
func ParseReversedPolicy(s string) (ReversedPolicy, error) {
	switch p := ReversedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ReversedDrop, nil
	case ReversedDrop, ReversedError, ReversedSwap:
		return p, nil
	default:
		return "", fmt.Errorf("unknown reversed interval policy %q (want drop, error or swap)", s)
	}
}

// Timeline is the set of calendar months covered by at least one interval.
type Timeline struct {
	months map[Month]struct{}
}

// NewTimeline returns an empty timeline.
func NewTimeline() *Timeline {
	return &Timeline{months: make(map[Month]struct{})}
}

// Add inserts every month from iv.Start to iv.End inclusive and returns how
// many of them were not already present. A reversed interval adds nothing.
func (t *Timeline) Add(iv Interval) int {
	added := 0
	for cur := iv.Start; !iv.End.Before(cur); cur = cur.Next() {
		if _, ok := t.months[cur]; ok {
			continue
		}
		t.months[cur] = struct{}{}
		added++
	}
	return added
}

// Len returns the number of distinct months.
func (t *Timeline) Len() int {
	return len(t.months)
}

// TotalMonths returns the number of distinct calendar months covered by the
// intervals. Overlapping and adjacent intervals count their union once;
// reversed intervals contribute nothing.
func TotalMonths(intervals []Interval) int {
	tl := NewTimeline()
	for _, iv := range intervals {
		tl.Add(iv)
	}
	return tl.Len()
}

// Aggregate is TotalMonths with an explicit policy for reversed intervals.
func Aggregate(intervals []Interval, policy ReversedPolicy) (*Timeline, error) {
	tl := NewTimeline()
	for _, iv := range intervals {
		if iv.Reversed() {
			switch policy {
			case ReversedError:
				return nil, &ReversedIntervalError{Interval: iv}
			case ReversedSwap:
				iv = Interval{Start: iv.End, End: iv.Start}
			}
		}
		tl.Add(iv)
	}
	return tl, nil
}

// FormatYearsMonths renders a month count as "<years> years <months> months".
func FormatYearsMonths(totalMonths int) string {
	return fmt.Sprintf("%d years %d months", totalMonths/12, totalMonths%12)
}
