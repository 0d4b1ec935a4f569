package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pack is a clause pack loaded from --clauses.
type Pack struct {
	// Inherit starts from DefaultClauses before applying the pack.
	Inherit              bool                 `json:"inherit" yaml:"inherit"`
	Disable              []string             `json:"disable,omitempty" yaml:"disable,omitempty"`
	MissingRiskOverrides map[string]RiskLevel `json:"missingRiskOverrides,omitempty" yaml:"missingRiskOverrides,omitempty"`
	Clauses              []Clause             `json:"clauses,omitempty" yaml:"clauses,omitempty"`
}

// LoadPack loads a clause pack from disk. YAML is used for .yaml and .yml
// files, JSON otherwise. Returns nil Pack and nil error if path is empty.
func LoadPack(path string) (*Pack, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clause pack: %w", err)
	}

	var pack Pack
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &pack)
	default:
		err = json.Unmarshal(data, &pack)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing clause pack: %w", err)
	}
	return &pack, nil
}

// Resolve produces the validated clause list described by the pack. A nil
// pack resolves to DefaultClauses.
func (p *Pack) Resolve() ([]Clause, error) {
	if p == nil {
		return DefaultClauses(), nil
	}

	var clauses []Clause
	if p.Inherit {
		clauses = DefaultClauses()
	}

	seen := make(map[string]bool, len(p.Clauses))
	for _, c := range p.Clauses {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate clause name %q in pack", ErrInvalidClause, c.Name)
		}
		seen[key] = true

		// Pack names are unique, so a hit here is an inherited clause.
		if i := indexClause(clauses, c.Name); i >= 0 {
			clauses[i] = c
			continue
		}
		clauses = append(clauses, c)
	}

	for _, name := range p.Disable {
		i := indexClause(clauses, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: cannot disable unknown clause %q", ErrInvalidClause, name)
		}
		clauses = append(clauses[:i], clauses[i+1:]...)
	}

	for name, risk := range p.MissingRiskOverrides {
		i := indexClause(clauses, name)
		if i < 0 {
			return nil, fmt.Errorf("%w: missing risk override for unknown clause %q", ErrInvalidClause, name)
		}
		clauses[i].MissingRisk = risk
	}

	if clauses == nil {
		clauses = []Clause{}
	}
	if err := ValidateClauses(clauses); err != nil {
		return nil, err
	}
	return clauses, nil
}

func indexClause(clauses []Clause, name string) int {
	for i, c := range clauses {
		if strings.EqualFold(strings.TrimSpace(c.Name), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}
