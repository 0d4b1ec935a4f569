package output

import (
	"io"
	"strings"

	"github.com/dshills/redline/internal/review"
)

// MarkdownWriter outputs a review suitable for pasting into a ticket or PR.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	result := report.Result

	ew.printf("## Contract Review\n\n")
	ew.printf("**Overall risk:** %s %s\n\n",
		mdRiskIcon(result.OverallRisk), strings.ToUpper(string(result.OverallRisk)))

	if len(result.Clauses) == 0 {
		ew.println("No clauses analyzed.")
		return ew.err
	}

	// Summary table
	ew.printf("| Clause | Present | Risk |\n")
	ew.printf("|--------|---------|------|\n")
	for _, c := range result.Clauses {
		ew.printf("| %s | %s | %s |\n", mdEscape(c.Name), yesNo(c.Present), c.RiskLevel)
	}
	ew.printf("\n")

	for _, c := range result.Clauses {
		ew.printf("### %s %s\n\n", mdRiskIcon(c.RiskLevel), c.Name)
		if c.Summary != "" {
			ew.printf("%s\n\n", c.Summary)
		}
		if len(c.MatchedSentences) > 0 {
			ew.printf("<details>\n<summary>Matched sentences (%d)</summary>\n\n", len(c.MatchedSentences))
			for _, s := range c.MatchedSentences {
				ew.printf("> %s\n\n", s)
			}
			ew.printf("</details>\n\n")
		}
		mdList(ew, "Issues", c.Issues)
		mdList(ew, "Notes", c.Notes)
		if c.Recommendation != "" {
			ew.printf("**Recommendation:** %s\n\n", c.Recommendation)
		}
		ew.printf("---\n\n")
	}

	ew.printf("*Reviewed %s in %dms*\n", report.Source, report.Timing.TotalMs)
	return ew.err
}

func mdList(ew *errWriter, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	ew.printf("**%s:**\n\n", heading)
	for _, item := range items {
		ew.printf("- %s\n", item)
	}
	ew.printf("\n")
}

func mdRiskIcon(r review.RiskLevel) string {
	switch r {
	case review.RiskHigh:
		return ":red_circle:"
	case review.RiskMedium:
		return ":orange_circle:"
	case review.RiskLow:
		return ":green_circle:"
	default:
		return ":white_circle:"
	}
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
