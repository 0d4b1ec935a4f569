package review

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidClause is returned when a clause definition cannot be used.
var ErrInvalidClause = errors.New("invalid clause")

// Phrase is a warning phrase. Severe phrases force a clause to high risk.
type Phrase struct {
	Text   string `json:"text" yaml:"text"`
	Severe bool   `json:"severe,omitempty" yaml:"severe,omitempty"`
}

// UnmarshalYAML accepts either a plain string or a {text, severe} mapping.
func (p *Phrase) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		p.Text = node.Value
		p.Severe = false
		return nil
	}
	type plain Phrase
	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}
	*p = Phrase(v)
	return nil
}

// MarshalYAML writes non-severe phrases as plain strings so exported clauses
// read back the same way packs are written.
func (p Phrase) MarshalYAML() (interface{}, error) {
	if !p.Severe {
		return p.Text, nil
	}
	type plain Phrase
	return plain(p), nil
}

// UnmarshalJSON accepts either a plain string or a {text, severe} object.
func (p *Phrase) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Text = s
		p.Severe = false
		return nil
	}
	type plain Phrase
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Phrase(v)
	return nil
}

// Clause describes how one clause category is detected and scored.
type Clause struct {
	Name           string    `json:"name" yaml:"name"`
	Keywords       []string  `json:"keywords" yaml:"keywords"`
	MissingRisk    RiskLevel `json:"missingRisk" yaml:"missingRisk"`
	Summary        string    `json:"summary" yaml:"summary"`
	Recommendation string    `json:"recommendation" yaml:"recommendation"`
	Warnings       []Phrase  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Positives      []string  `json:"positives,omitempty" yaml:"positives,omitempty"`
}

// Validate checks the clause invariants.
func (c Clause) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidClause)
	}
	if !c.MissingRisk.Valid() {
		return fmt.Errorf("%w: %s: missing risk %q must be low, medium or high",
			ErrInvalidClause, c.Name, c.MissingRisk)
	}
	return nil
}

// warnings wraps plain strings as non-severe phrases.
func warnings(texts ...string) []Phrase {
	out := make([]Phrase, len(texts))
	for i, t := range texts {
		out[i] = Phrase{Text: t}
	}
	return out
}

// DefaultClauses returns the built-in clause categories.
func DefaultClauses() []Clause {
	return []Clause{
		{
			Name:           "Termination",
			Keywords:       []string{"terminate", "termination", "notice", "cancel"},
			MissingRisk:    RiskHigh,
			Summary:        "Checks termination rights and conditions.",
			Recommendation: "Specify a reasonable mutual notice period and the grounds for termination.",
			Warnings:       warnings("immediate", "sole discretion", "without cause"),
			Positives:      []string{"written notice", "prior notice", "mutual"},
		},
		{
			Name:           "Confidentiality",
			Keywords:       []string{"confidential", "non-disclosure", "nda", "proprietary"},
			MissingRisk:    RiskHigh,
			Summary:        "Reviews the scope of confidentiality obligations.",
			Recommendation: "Clearly define confidential information and its exceptions.",
			Warnings:       warnings("perpetual", "unlimited", "irrevocable"),
			Positives:      []string{"return", "destroy", "survive"},
		},
		{
			Name:           "Liability",
			Keywords:       []string{"liability", "indemnify", "damages", "hold harmless"},
			MissingRisk:    RiskHigh,
			Summary:        "Checks liability and the limits on damages.",
			Recommendation: "Clearly define the damages cap and the scope of indemnification.",
			Warnings:       warnings("unlimited", "all damages", "any damages"),
			Positives:      []string{"cap", "limited", "maximum"},
		},
		{
			Name:           "Payment Terms",
			Keywords:       []string{"payment", "fee", "compensation", "invoice"},
			MissingRisk:    RiskMedium,
			Summary:        "Checks the payment conditions.",
			Recommendation: "Include payment timing, conditions and remedies for late payment.",
			Warnings:       warnings("late fee", "penalty", "interest"),
			Positives:      []string{"net", "days", "schedule"},
		},
		{
			Name:           "Intellectual Property",
			Keywords:       []string{"intellectual property", "ip", "license", "ownership"},
			MissingRisk:    RiskMedium,
			Summary:        "Checks ownership and usage terms for intellectual property.",
			Recommendation: "State who owns the work product and the permitted scope of use.",
			Warnings:       warnings("assign", "transfer", "exclusive"),
			Positives:      []string{"retain", "non-exclusive", "limited"},
		},
		{
			Name:           "Governing Law",
			Keywords:       []string{"governing law", "jurisdiction", "venue"},
			MissingRisk:    RiskLow,
			Summary:        "Checks the governing law and jurisdiction.",
			Recommendation: "Describe the dispute resolution process and jurisdiction concretely.",
			Warnings:       warnings("exclusive jurisdiction", "foreign"),
			Positives:      []string{"arbitration", "mediation"},
		},
	}
}

// ValidateClauses validates each clause and checks names are unique.
func ValidateClauses(clauses []Clause) error {
	seen := make(map[string]bool, len(clauses))
	for _, c := range clauses {
		if err := c.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if seen[key] {
			return fmt.Errorf("%w: duplicate clause name %q", ErrInvalidClause, c.Name)
		}
		seen[key] = true
	}
	return nil
}
