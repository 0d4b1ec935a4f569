package review

// RiskLevel is the risk attached to a clause and to a whole review.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Rank returns the ordinal of a risk level (low=0, medium=1, high=2).
// Unknown levels rank -1.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	default:
		return -1
	}
}

// Valid reports whether r is one of low, medium or high.
func (r RiskLevel) Valid() bool {
	return r.Rank() >= 0
}

// ParseRiskLevel converts a string into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, bool) {
	r := RiskLevel(s)
	return r, r.Valid()
}

// MeetsThreshold returns true if level is at or above the threshold.
func MeetsThreshold(level RiskLevel, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	t := RiskLevel(threshold)
	if !t.Valid() || !level.Valid() {
		return false
	}
	return level.Rank() >= t.Rank()
}

// ClauseResult is the outcome of evaluating one clause against a contract.
type ClauseResult struct {
	Name             string    `json:"name"`
	Present          bool      `json:"present"`
	RiskLevel        RiskLevel `json:"risk_level"`
	MissingRisk      RiskLevel `json:"missing_risk"`
	MatchedSentences []string  `json:"matched_sentences"`
	Issues           []string  `json:"issues"`
	Notes            []string  `json:"notes"`
	Recommendation   string    `json:"recommendation"`
	Summary          string    `json:"summary"`
}

// Result is the structured outcome of a single review.
type Result struct {
	OverallRisk RiskLevel      `json:"overall_risk"`
	Clauses     []ClauseResult `json:"clauses"`
}

// Clause returns the result for the named clause.
func (r Result) Clause(name string) (ClauseResult, bool) {
	for _, c := range r.Clauses {
		if c.Name == name {
			return c, true
		}
	}
	return ClauseResult{}, false
}

// MapSentences returns a copy of r with fn applied to every matched sentence.
func (r Result) MapSentences(fn func(string) string) Result {
	out := Result{
		OverallRisk: r.OverallRisk,
		Clauses:     make([]ClauseResult, len(r.Clauses)),
	}
	for i, c := range r.Clauses {
		sentences := make([]string, len(c.MatchedSentences))
		for j, s := range c.MatchedSentences {
			sentences[j] = fn(s)
		}
		c.MatchedSentences = sentences
		c.Issues = append([]string{}, c.Issues...)
		c.Notes = append([]string{}, c.Notes...)
		out.Clauses[i] = c
	}
	return out
}

// RiskCounts holds clause counts by risk level.
type RiskCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// Summary provides an overview of a review.
type Summary struct {
	Counts  RiskCounts `json:"counts"`
	Present int        `json:"present"`
	Absent  int        `json:"absent"`
}

// Timing contains performance metrics.
type Timing struct {
	ExtractMs int64 `json:"extract_ms"`
	ReviewMs  int64 `json:"review_ms"`
	TotalMs   int64 `json:"total_ms"`
}

// Report is the top-level output structure written by the CLI.
type Report struct {
	Tool    string  `json:"tool"`
	Version string  `json:"version"`
	RunID   string  `json:"run_id"`
	Source  string  `json:"source"`
	Format  string  `json:"input_format,omitempty"`
	Summary Summary `json:"summary"`
	Result  Result  `json:"result"`
	Timing  Timing  `json:"timing"`
}

// ComputeSummary calculates the summary from clause results.
func ComputeSummary(results []ClauseResult) Summary {
	var s Summary
	for _, c := range results {
		switch c.RiskLevel {
		case RiskLow:
			s.Counts.Low++
		case RiskMedium:
			s.Counts.Medium++
		case RiskHigh:
			s.Counts.High++
		}
		if c.Present {
			s.Present++
		} else {
			s.Absent++
		}
	}
	return s
}
