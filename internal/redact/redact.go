package redact

import (
	"regexp"
)

// Placeholder replaces redacted values.
const Placeholder = "[REDACTED]"

// patterns are regex heuristics for personal and account data that commonly
// appears in contracts. Input is usually lower-cased, so all are
// case-insensitive.
var patterns = []*regexp.Regexp{
	// Email addresses
	regexp.MustCompile(`(?i)[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`),
	// IBANs, optionally grouped in fours. Only the bank code group may hold
	// letters; the rest must be digits so "fy24 work item plan" survives.
	regexp.MustCompile(`(?i)\b[a-z]{2}\d{2}\s?[a-z0-9]{4}(?:\s?\d{4}){2,7}(?:\s?\d{1,3})?\b`),
	// US social security numbers
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	// Payment card numbers (13-19 digits, optional space/dash separators)
	regexp.MustCompile(`\b\d(?:[ -]?\d){12,18}\b`),
	// Phone numbers
	regexp.MustCompile(`(?:\+\d{1,3}[\s.-]?)?\(?\b\d{3}\)?[\s.-]\d{3}[\s.-]\d{4}\b`),
	// Bank routing / account assignments
	regexp.MustCompile(`(?i)\b(account|routing|swift|bic)(\s+(no\.?|number))?\s*[:#]?\s*[a-z0-9]*\d[a-z0-9-]{5,}\b`),
	// Credentials pasted into exhibits
	regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)\s*[:=]\s*["']?[^\s"']{8,}["']?`),
}

// Text replaces detected personal data and credentials in s with
// [Placeholder].
func Text(s string) string {
	result := s
	for _, pat := range patterns {
		result = pat.ReplaceAllString(result, Placeholder)
	}
	return result
}
