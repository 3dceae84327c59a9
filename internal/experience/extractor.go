package experience

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// Extractor turns resume text into intervals and an experience total.
// An Extractor holds no per-resume state and may be shared.
type Extractor struct {
	clock  Clock
	logger zerolog.Logger
	policy ReversedPolicy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock "present" and "current" resolve against.
func WithClock(c Clock) Option {
	return func(e *Extractor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger for skipped lines and reversed intervals.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = l
	}
}

// WithReversedPolicy sets how reversed intervals are aggregated.
func WithReversedPolicy(p ReversedPolicy) Option {
	return func(e *Extractor) {
		if p != "" {
			e.policy = p
		}
	}
}

// NewExtractor returns an Extractor using the system clock, a no-op logger
// and the drop policy unless overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		clock:  SystemClock{},
		logger: zerolog.Nop(),
		policy: ReversedDrop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Summary is the result of analysing one resume.
type Summary struct {
	Intervals    []Interval  `json:"intervals"`
	TotalMonths  int         `json:"total_months"`
	Formatted    string      `json:"formatted"`
	SkippedLines []LineError `json:"skipped_lines,omitempty"`
}

// LineError records a line whose bracketed range could not be parsed.
type LineError struct {
	Line    int    `json:"line"` // 1-based
	Message string `json:"message"`
}

// ExtractIntervals scans normalized text line by line and returns at most one
// interval per line, in line order. Lines whose range fails to parse are skipped.
func (e *Extractor) ExtractIntervals(text string) []Interval {
	intervals, _ := e.extract(text)
	return intervals
}

func (e *Extractor) extract(text string) ([]Interval, []LineError) {
	var (
		intervals []Interval
		skipped   []LineError
	)

	for n, line := range strings.Split(text, "\n") {
		matches, err := ScanLine(line)
		if err != nil {
			continue
		}

		var lastErr error
		found := false
		for _, m := range matches {
			iv, err := e.buildInterval(m)
			if err != nil {
				lastErr = err
				continue
			}
			intervals = append(intervals, iv)
			found = true
			break
		}

		if !found && lastErr != nil {
			e.logger.Debug().Int("line", n+1).Err(lastErr).Msg("skipping unparsable date range")
			skipped = append(skipped, LineError{Line: n + 1, Message: lastErr.Error()})
		}
	}

	return intervals, skipped
}

func (e *Extractor) buildInterval(m RangeMatch) (Interval, error) {
	start, err := ParseMonth(m.StartToken(), e.clock)
	if err != nil {
		return Interval{}, err
	}

	var end Month
	if m.EndPresent {
		end = e.clock.Now()
	} else {
		end, err = ParseMonth(m.EndToken(), e.clock)
		if err != nil {
			return Interval{}, err
		}
	}

	return Interval{Start: start, End: end}, nil
}

// Analyze normalizes raw resume text, extracts its intervals and totals them.
// Blank text fails with *EmptyTextError before any extraction.
func (e *Extractor) Analyze(rawText string) (*Summary, error) {
	text := Normalize(rawText)
	if text == "" {
		return nil, &EmptyTextError{}
	}

	intervals, skipped := e.extract(text)

	for _, iv := range intervals {
		if !iv.Reversed() {
			continue
		}
		switch e.policy {
		case ReversedSwap:
			e.logger.Warn().Stringer("interval", iv).Msg("swapping reversed interval")
		case ReversedDrop:
			e.logger.Warn().Stringer("interval", iv).Msg("dropping reversed interval")
		}
	}

	tl, err := Aggregate(intervals, e.policy)
	if err != nil {
		var rev *ReversedIntervalError
		if errors.As(err, &rev) {
			e.logger.Error().Stringer("interval", rev.Interval).Msg("reversed interval rejected")
		}
		return nil, err
	}

	total := tl.Len()
	e.logger.Debug().Int("intervals", len(intervals)).Int("total_months", total).Msg("experience computed")

	return &Summary{
		Intervals:    intervals,
		TotalMonths:  total,
		Formatted:    FormatYearsMonths(total),
		SkippedLines: skipped,
	}, nil
}
