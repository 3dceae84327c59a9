// Package experience extracts employment date ranges from resume text and
// computes deduplicated professional experience in months.
package experience

import (
	"errors"
	"fmt"
)

// ErrEmptyText is matched by every EmptyTextError via errors.Is.
var ErrEmptyText = errors.New("no usable content")

// ParseError represents a date token that could not be turned into a calendar month
type ParseError struct {
	Token   string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %q: %s: %v", e.Token, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %q: %s", e.Token, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// EmptyTextError is returned when the text is blank after normalization
type EmptyTextError struct {
	Source string
}

func (e *EmptyTextError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %v", e.Source, ErrEmptyText)
	}
	return ErrEmptyText.Error()
}

func (e *EmptyTextError) Is(target error) bool {
	return target == ErrEmptyText
}

// ReversedIntervalError is returned by aggregation under ReversedError when an
// interval ends before it starts.
type ReversedIntervalError struct {
	Interval Interval
}

func (e *ReversedIntervalError) Error() string {
	return fmt.Sprintf("reversed interval: end %s is before start %s", e.Interval.End, e.Interval.Start)
}

// ScanError describes why a bracketed range on a line was not recognised.
type ScanError struct {
	Reason ScanReason
	Offset int
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error at byte %d: %s", e.Offset, e.Reason)
}

// ScanReason identifies the slot of the date-range pattern that failed.
type ScanReason string

// Scan failure reasons, one per slot of the pattern.
const (
	ReasonNoOpenParen ScanReason = "no opening parenthesis"
	ReasonStartMonth  ScanReason = "start month name expected"
	ReasonStartYear   ScanReason = "four-digit start year expected"
	ReasonHyphen      ScanReason = "hyphen expected"
	ReasonEndToken    ScanReason = "end month name, present or current expected"
	ReasonEndYear     ScanReason = "four-digit end year expected"
	ReasonCloseParen  ScanReason = "closing parenthesis expected"
)
