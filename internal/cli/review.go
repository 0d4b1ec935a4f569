package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	"github.com/dshills/redline/internal/config"
	"github.com/dshills/redline/internal/extract"
	"github.com/dshills/redline/internal/logging"
	"github.com/dshills/redline/internal/output"
	"github.com/dshills/redline/internal/redact"
	"github.com/dshills/redline/internal/review"
	"github.com/spf13/cobra"
)

// stdinPath selects standard input as the contract source.
const stdinPath = "-"

// Review flags
var (
	flagFormat        string
	flagOut           string
	flagFailOn        string
	flagClauses       string
	flagMaxInputBytes int
	flagNoRedact      bool
	flagLogLevel      string
	flagLogFormat     string
)

func addReviewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit 1 when overall risk reaches this level (none, low, medium, high)")
	cmd.Flags().IntVar(&flagMaxInputBytes, "max-input-bytes", 0, "Maximum input size in bytes")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Do not redact personal data in matched sentences")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
}

func addClausesFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagClauses, "clauses", "", "Clause pack file (.yaml, .yml or .json)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagClauses != "" {
		m["clausesFile"] = flagClauses
	}
	if flagMaxInputBytes > 0 {
		m["maxInputBytes"] = strconv.Itoa(flagMaxInputBytes)
	}
	if flagLogLevel != "" {
		m["logging.level"] = flagLogLevel
	}
	if flagLogFormat != "" {
		m["logging.format"] = flagLogFormat
	}
	if flagNoRedact {
		m["privacy.redactSecrets"] = "false"
	}
	return m
}

var reviewCmd = &cobra.Command{
	Use:   "review <path|->",
	Short: "Review a contract for risky or missing clauses",
	Long: "Review a contract file (plain text, PDF or DOCX) and report, per clause category, " +
		"whether it is present, its risk level, matched sentences, issues and recommendations. " +
		"Use - to read from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		exitCode = runReview(cmd, args[0], cfg)
		return nil
	},
}

func init() {
	addReviewFlags(reviewCmd)
	addClausesFlag(reviewCmd)
}

// runReview performs one review and returns the exit code.
func runReview(cmd *cobra.Command, path string, cfg config.Config) int {
	stderr := cmd.ErrOrStderr()
	logger := logging.Init(stderr, cfg.Logging.Format, cfg.Logging.Level)
	if !cfg.Privacy.RedactSecrets {
		logger.Warn("redaction is disabled; matched sentences are reported verbatim")
	}

	start := time.Now()
	doc, source, err := loadInput(cmd.InOrStdin(), path, cfg.MaxInputBytes)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, fs.ErrNotExist) {
			return ExitUsageError
		}
		return ExitRuntimeError
	}
	extractMs := time.Since(start).Milliseconds()
	logger.Info("review started", "source", source, "input_format", doc.Format, "bytes", len(doc.Text))

	svc, err := newService(cfg.ClausesFile, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitRuntimeError
	}

	reviewStart := time.Now()
	result := svc.Review(doc.Text)
	reviewMs := time.Since(reviewStart).Milliseconds()

	if cfg.Privacy.RedactSecrets {
		result = result.MapSentences(redact.Text)
	}

	report := review.BuildReport(source, doc.Format, result, review.Timing{
		ExtractMs: extractMs,
		ReviewMs:  reviewMs,
		TotalMs:   time.Since(start).Milliseconds(),
	})
	logger.Info("review finished",
		"run_id", report.RunID,
		"source", source,
		"overall_risk", result.OverallRisk,
		"duration_ms", report.Timing.TotalMs,
	)

	if err := output.WriteReportTo(cmd.OutOrStdout(), report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return ExitRuntimeError
	}

	if review.MeetsThreshold(result.OverallRisk, cfg.FailOn) {
		return ExitFindings
	}
	return ExitSuccess
}

func loadInput(stdin io.Reader, path string, maxBytes int) (extract.Document, string, error) {
	if path == stdinPath {
		doc, err := extract.FromReader(stdin, maxBytes)
		if err != nil {
			return extract.Document{}, "", fmt.Errorf("stdin: %w", err)
		}
		return doc, "stdin", nil
	}
	doc, err := extract.Load(path, maxBytes)
	return doc, path, err
}

// newService builds a review service from the clause pack at path, or the
// built-in clauses when path is empty.
func newService(path string, logger *slog.Logger) (*review.Service, error) {
	clauses, err := resolveClauses(path)
	if err != nil {
		return nil, err
	}
	return review.NewService(clauses, review.WithLogger(logger))
}

func resolveClauses(path string) ([]review.Clause, error) {
	pack, err := review.LoadPack(path)
	if err != nil {
		return nil, err
	}
	clauses, err := pack.Resolve()
	if err != nil {
		return nil, fmt.Errorf("clause pack %s: %w", path, err)
	}
	return clauses, nil
}
