// Package redact removes personal data and credentials from text before it is
// written to a report.
//
// Matched sentences are echoed verbatim into every output format, so emails,
// phone numbers, IBANs, card numbers, SSNs, bank account references and
// pasted credentials are replaced with [REDACTED] unless redaction is turned
// off. Detection is heuristic and regex-based.
package redact
