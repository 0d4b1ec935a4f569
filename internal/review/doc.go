// Package review contains the clause definitions and the engine that reviews
// contract text.
//
// A review normalizes the text (whitespace collapsed, lower-cased), splits it
// into sentences on terminal punctuation, and evaluates every configured
// [Clause] against those sentences. A clause is present when any of its
// keywords matches a sentence at word boundaries. Warning phrases found in
// matched sentences raise the clause to medium risk (high for severe phrases);
// positive phrases add notes. Absent clauses take their configured missing
// risk. The overall risk is the highest clause risk.
//
// The engine is a deterministic keyword heuristic. It does no language
// understanding and keeps no state between calls.
//
// Clause packs (rules.go) let callers extend, disable, or re-weight the
// built-in clauses from a YAML or JSON file.
package review
