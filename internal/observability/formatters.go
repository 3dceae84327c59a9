// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-chat/internal/chat"
	"github.com/jonathan/resume-chat/internal/experience"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stderr; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// PrintReport outputs the intervals found in one resume and the merged total.
func (p *Printer) PrintReport(r *experience.Report) {
	if r == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File:   %s\n", r.File))
	sb.WriteString(fmt.Sprintf("Total:  %s (%d months)\n", r.Formatted, r.TotalMonths))

	if len(r.Intervals) > 0 {
		sb.WriteString("\nIntervals:\n")
		count := min(len(r.Intervals), maxItemsToShow)
		for i := 0; i < count; i++ {
			iv := r.Intervals[i]
			sb.WriteString(fmt.Sprintf("  • %s", iv))
			if iv.Reversed() {
				sb.WriteString(" (reversed)")
			} else {
				sb.WriteString(fmt.Sprintf(" (%d months)", experience.MonthsBetween(iv.Start, iv.End)))
			}
			sb.WriteString("\n")
		}
		if len(r.Intervals) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.Intervals)-maxItemsToShow))
		}
	}

	if len(r.SkippedLines) > 0 {
		sb.WriteString("\nSkipped lines:\n")
		count := min(len(r.SkippedLines), maxItemsToShow)
		for i := 0; i < count; i++ {
			le := r.SkippedLines[i]
			sb.WriteString(fmt.Sprintf("  • line %d: %s\n", le.Line, le.Message))
		}
		if len(r.SkippedLines) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(r.SkippedLines)-maxItemsToShow))
		}
	}

	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnswer outputs how a question was answered.
func (p *Printer) PrintAnswer(question string, a *chat.Answer) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Question: %s\n", question))
	sb.WriteString(fmt.Sprintf("Source:   %s\n", a.Source))
	if a.Summary != nil {
		sb.WriteString(fmt.Sprintf("Intervals: %d, total %d months\n", len(a.Summary.Intervals), a.Summary.TotalMonths))
	}

	p.printBox("ANSWER", strings.TrimSuffix(sb.String(), "\n"))
}
