package review

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Service reviews contract text against a fixed set of clauses. It holds no
// mutable state, so Review may be called from multiple goroutines.
type Service struct {
	clauses []compiledClause
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-clause debug records.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service. A nil clauses slice selects DefaultClauses;
// a non-nil empty slice configures no clauses at all.
func NewService(clauses []Clause, opts ...Option) (*Service, error) {
	if clauses == nil {
		clauses = DefaultClauses()
	}
	if err := ValidateClauses(clauses); err != nil {
		return nil, err
	}

	s := &Service{
		clauses: make([]compiledClause, 0, len(clauses)),
		logger:  slog.Default(),
	}
	for _, c := range clauses {
		s.clauses = append(s.clauses, compileClause(cloneClause(c)))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Clauses returns a copy of the configured clauses.
func (s *Service) Clauses() []Clause {
	out := make([]Clause, len(s.clauses))
	for i, cc := range s.clauses {
		out[i] = cloneClause(cc.clause)
	}
	return out
}

// Review analyzes contract text. It never fails: empty input yields a result
// where every clause is absent.
func (s *Service) Review(text string) Result {
	sentences := SplitSentences(Normalize(text))

	results := make([]ClauseResult, 0, len(s.clauses))
	for _, cc := range s.clauses {
		r := cc.evaluate(sentences)
		s.logger.Debug("clause evaluated",
			"clause", r.Name,
			"present", r.Present,
			"risk", string(r.RiskLevel),
			"matched", len(r.MatchedSentences),
		)
		results = append(results, r)
	}

	return Result{
		OverallRisk: OverallRisk(results),
		Clauses:     results,
	}
}

// ReviewAll reviews independent documents concurrently and returns results in
// input order. It stops early and returns ctx.Err() if ctx is cancelled.
func (s *Service) ReviewAll(ctx context.Context, texts []string) ([]Result, error) {
	results := make([]Result, len(texts))

	maxConcurrency := runtime.NumCPU()
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrency)

	for i, text := range texts {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}: // acquire
		}
		wg.Add(1)
		go func(i int, text string) {
			defer wg.Done()
			defer func() { <-sem }() // release
			results[i] = s.Review(text)
		}(i, text)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// BuildReport wraps a review result in the report envelope.
func BuildReport(source, format string, result Result, timing Timing) *Report {
	return &Report{
		Tool:    Tool,
		Version: Version,
		RunID:   generateRunID(),
		Source:  source,
		Format:  format,
		Summary: ComputeSummary(result.Clauses),
		Result:  result,
		Timing:  timing,
	}
}

// Tool and Version identify reports produced by this package.
const (
	Tool    = "redline"
	Version = "0.3.0"
)

func generateRunID() string {
	return uuid.New().String()
}

func cloneClause(c Clause) Clause {
	c.Keywords = append([]string(nil), c.Keywords...)
	c.Warnings = append([]Phrase(nil), c.Warnings...)
	c.Positives = append([]string(nil), c.Positives...)
	return c
}
