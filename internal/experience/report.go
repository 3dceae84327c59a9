package experience

import "encoding/json"

// Report is the JSON document the experience command emits per file.
type Report struct {
	File         string      `json:"file"`
	TotalMonths  int         `json:"total_months"`
	Formatted    string      `json:"formatted"`
	Intervals    []Interval  `json:"intervals"`
	SkippedLines []LineError `json:"skipped_lines"`
}

// NewReport builds a Report for file. Empty slices are emitted as [] rather
// than null.
func NewReport(file string, s *Summary) *Report {
	r := &Report{
		File:         file,
		Formatted:    FormatYearsMonths(0),
		Intervals:    []Interval{},
		SkippedLines: []LineError{},
	}
	if s == nil {
		return r
	}
	r.TotalMonths = s.TotalMonths
	r.Formatted = s.Formatted
	if len(s.Intervals) > 0 {
		r.Intervals = s.Intervals
	}
	if len(s.SkippedLines) > 0 {
		r.SkippedLines = s.SkippedLines
	}
	return r
}

// ToJSON returns the indented JSON encoding of the report.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
