package review

import (
	"fmt"
	"strings"
)

// compiledClause pairs a clause with its keyword matchers.
type compiledClause struct {
	clause   Clause
	matchers []*Matcher
}

func compileClause(c Clause) compiledClause {
	return compiledClause{clause: c, matchers: compileMatchers(c.Keywords)}
}

// EvaluateClause evaluates one clause against the sentences of a normalized
// contract.
func EvaluateClause(c Clause, sentences []string) ClauseResult {
	return compileClause(c).evaluate(sentences)
}

func (cc compiledClause) evaluate(sentences []string) ClauseResult {
	c := cc.clause
	result := ClauseResult{
		Name:             c.Name,
		MissingRisk:      c.MissingRisk,
		MatchedSentences: []string{},
		Issues:           []string{},
		Notes:            []string{},
		Recommendation:   c.Recommendation,
		Summary:          c.Summary,
	}

	for _, s := range sentences {
		if matchAny(cc.matchers, s) {
			result.MatchedSentences = append(result.MatchedSentences, s)
		}
	}

	if len(result.MatchedSentences) == 0 {
		result.RiskLevel = c.MissingRisk
		result.Issues = []string{fmt.Sprintf("%s clause not detected.", c.Name)}
		return result
	}

	result.Present = true
	result.RiskLevel = RiskLow

	var warned, severe bool
	for _, s := range result.MatchedSentences {
		for _, w := range c.Warnings {
			if !containsPhrase(s, w.Text) {
				continue
			}
			warned = true
			if w.Severe {
				severe = true
			}
			result.Issues = append(result.Issues, warningMessage(w))
		}

		var hits []string
		for _, p := range c.Positives {
			if containsPhrase(s, p) {
				hits = append(hits, p)
			}
		}
		if len(hits) > 0 {
			result.Notes = append(result.Notes,
				fmt.Sprintf("Favorable: %s wording improves the terms.", strings.Join(hits, ", ")))
		}
	}

	switch {
	case severe:
		result.RiskLevel = RiskHigh
	case warned:
		result.RiskLevel = RiskMedium
	}
	return result
}

// containsPhrase is a plain substring test without boundary anchoring.
func containsPhrase(sentence, phrase string) bool {
	phrase = strings.ToLower(phrase)
	if phrase == "" {
		return false
	}
	return strings.Contains(sentence, phrase)
}

func warningMessage(w Phrase) string {
	if w.Severe {
		return fmt.Sprintf("Severe: '%s' wording carries significant risk.", w.Text)
	}
	return fmt.Sprintf("Caution: '%s' wording may increase risk.", w.Text)
}

// OverallRisk returns the highest risk level across results, or low when
// there are none.
func OverallRisk(results []ClauseResult) RiskLevel {
	overall := RiskLow
	for _, r := range results {
		if r.RiskLevel.Rank() > overall.Rank() {
			overall = r.RiskLevel
		}
	}
	return overall
}
