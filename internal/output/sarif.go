package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/redline/internal/review"
)

// SARIFWriter outputs clause findings in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *review.Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	Help             sarifMessage       `json:"help"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
	Fixes     []sarifFix      `json:"fixes,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

// buildSARIF registers one rule per clause and emits a result for each clause
// that is absent or above low risk.
func buildSARIF(report *review.Report) sarifLog {
	rules := make([]sarifRule, 0, len(report.Result.Clauses))
	results := make([]sarifResult, 0)

	for _, c := range report.Result.Clauses {
		ruleID := generateRuleID(c.Name)
		rules = append(rules, sarifRule{
			ID:               ruleID,
			Name:             c.Name,
			ShortDescription: sarifMessage{Text: c.Summary},
			Help:             sarifMessage{Text: c.Recommendation},
			DefaultConfig:    sarifDefaultConfig{Level: ruleLevel(c)},
		})

		if c.Present && c.RiskLevel == review.RiskLow {
			continue
		}

		result := sarifResult{
			RuleID:  ruleID,
			Level:   riskToLevel(c.RiskLevel),
			Message: sarifMessage{Text: resultMessage(c)},
		}
		if report.Source != "" {
			result.Locations = []sarifLocation{{
				PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: report.Source},
				},
			}}
		}
		if c.Recommendation != "" {
			result.Fixes = append(result.Fixes, sarifFix{
				Description: sarifMessage{Text: c.Recommendation},
			})
		}
		results = append(results, result)
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           review.Tool,
						Version:        report.Version,
						InformationURI: "https://github.com/dshills/redline",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

func resultMessage(c review.ClauseResult) string {
	msg := fmt.Sprintf("%s (%s risk)", c.Name, c.RiskLevel)
	if len(c.Issues) > 0 {
		msg += ": " + strings.Join(c.Issues, " ")
	}
	return msg
}

// riskToLevel maps a risk level to a SARIF level.
func riskToLevel(r review.RiskLevel) string {
	switch r {
	case review.RiskHigh:
		return "error"
	case review.RiskMedium:
		return "warning"
	case review.RiskLow:
		return "note"
	default:
		return "none"
	}
}

// ruleLevel is the rule's default level, taken from the clause's configured
// missing risk so it does not vary between runs.
func ruleLevel(c review.ClauseResult) string {
	if !c.MissingRisk.Valid() {
		return "warning"
	}
	return riskToLevel(c.MissingRisk)
}

// generateRuleID creates a stable rule ID from the clause name.
func generateRuleID(name string) string {
	h := sha256.Sum256([]byte(strings.ToLower(name)))
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	return fmt.Sprintf("redline/%s/%x", slug, h[:4])
}
