package experience

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(y1, m1, y2, m2 int) Interval {
	return Interval{Start: Month{y1, m1}, End: Month{y2, m2}}
}

func TestTotalMonths(t *testing.T) {
	tests := []struct {
		name      string
		intervals []Interval
		expected  int
	}{
		{"No intervals", nil, 0},
		{"Single month", []Interval{iv(2020, 5, 2020, 5)}, 1},
		{"Three full years", []Interval{iv(2019, 1, 2021, 12)}, 36},
		{"Crosses year boundary", []Interval{iv(2020, 11, 2021, 2)}, 4},
		{"Overlapping", []Interval{iv(2020, 1, 2020, 6), iv(2020, 4, 2020, 9)}, 9},
		{"Adjacent", []Interval{iv(2020, 1, 2020, 6), iv(2020, 7, 2020, 12)}, 12},
		{"Nested", []Interval{iv(2018, 1, 2020, 12), iv(2019, 3, 2019, 8)}, 36},
		{"Duplicate", []Interval{iv(2020, 1, 2020, 3), iv(2020, 1, 2020, 3)}, 3},
		{"Gap between jobs", []Interval{iv(2020, 1, 2020, 3), iv(2021, 1, 2021, 3)}, 6},
		{"Reversed contributes nothing", []Interval{iv(2021, 5, 2021, 1)}, 0},
		{"Reversed alongside valid", []Interval{iv(2021, 5, 2021, 1), iv(2020, 1, 2020, 2)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TotalMonths(tt.intervals))
		})
	}
}

func TestTotalMonths_SingleIntervalMatchesMonthsBetween(t *testing.T) {
	for _, span := range []Interval{
		iv(2019, 1, 2021, 12),
		iv(2000, 12, 2001, 1),
		iv(1998, 7, 2024, 3),
		iv(2023, 2, 2023, 2),
	} {
		assert.Equal(t, MonthsBetween(span.Start, span.End), TotalMonths([]Interval{span}), span.String())
	}
}

func TestAggregate_ReversedPolicies(t *testing.T) {
	intervals := []Interval{iv(2021, 5, 2021, 1), iv(2020, 1, 2020, 2)}

	t.Run("drop", func(t *testing.T) {
		tl, err := Aggregate(intervals, ReversedDrop)
		require.NoError(t, err)
		assert.Equal(t, 2, tl.Len())
	})

	t.Run("swap", func(t *testing.T) {
		tl, err := Aggregate(intervals, ReversedSwap)
		require.NoError(t, err)
		assert.Equal(t, 7, tl.Len())
	})

	t.Run("error", func(t *testing.T) {
		_, err := Aggregate(intervals, ReversedError)
		require.Error(t, err)

		var rev *ReversedIntervalError
		require.True(t, errors.As(err, &rev))
		assert.Equal(t, intervals[0], rev.Interval)
	})
}

func TestTimeline(t *testing.T) {
	tl := NewTimeline()
	assert.Equal(t, 3, tl.Add(iv(2020, 11, 2021, 1)))
	assert.Equal(t, 1, tl.Add(iv(2021, 1, 2021, 2)))
	assert.Equal(t, 0, tl.Add(iv(2021, 3, 2021, 2)))
	assert.Equal(t, 4, tl.Len())
}

func TestParseReversedPolicy(t *testing.T) {
	for in, want := range map[string]ReversedPolicy{
		"":       ReversedDrop,
		"drop":   ReversedDrop,
		" SWAP ": ReversedSwap,
		"error":  ReversedError,
	} {
		got, err := ParseReversedPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseReversedPolicy("ignore")
	assert.Error(t, err)
}

func TestFormatYearsMonths(t *testing.T) {
	tests := []struct {
		months   int
		expected string
	}{
		{0, "0 years 0 months"},
		{3, "0 years 3 months"},
		{12, "1 years 0 months"},
		{36, "3 years 0 months"},
		{25, "2 years 1 months"},
		{127, "10 years 7 months"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatYearsMonths(tt.months))
	}
}
