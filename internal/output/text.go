package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/redline/internal/review"
)

const reportTitle = "Contract Review Report"

// TextWriter outputs the human-readable report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	ew.println(FormatText(report.Result))
	return ew.err
}

// FormatText renders a review result as a sectioned plain-text report.
// It is a pure function of its input.
func FormatText(result review.Result) string {
	lines := []string{
		reportTitle,
		strings.Repeat("=", len(reportTitle)),
		fmt.Sprintf("Overall risk: %s", strings.ToUpper(string(result.OverallRisk))),
		"",
	}

	for _, c := range result.Clauses {
		lines = append(lines,
			fmt.Sprintf("[%s - risk: %s]", c.Name, c.RiskLevel),
			c.Summary,
		)
		lines = appendBlock(lines, "Matched sentences:", c.MatchedSentences)
		lines = appendBlock(lines, "Issues:", c.Issues)
		lines = appendBlock(lines, "Notes:", c.Notes)
		if c.Recommendation != "" {
			lines = append(lines, "  Recommendation: "+c.Recommendation)
		}
		lines = append(lines, "")
	}

	if len(result.Clauses) == 0 {
		lines = append(lines, "No clauses analyzed.")
	}

	return strings.Join(lines, "\n")
}

func appendBlock(lines []string, heading string, items []string) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, "  "+heading)
	for _, item := range items {
		lines = append(lines, "    - "+item)
	}
	return lines
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
