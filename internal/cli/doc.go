// Package cli wires together the Cobra command tree for the redline binary.
//
// It defines the root command and all subcommands (review, clauses, config,
// version), binds flags, reads configuration, invokes the review service, and
// returns deterministic exit codes for CI gating.
package cli
