// Package output formats review reports for display or machine consumption.
//
// Four formats are supported:
//   - text     : sectioned plain-text report (default), see [FormatText]
//   - json     : full structured JSON report
//   - markdown : summary table plus one section per clause
//   - sarif    : SARIF v2.1.0, one rule per clause
//
// Use [GetWriter] to obtain a [Writer] for a given format string, then call
// [Writer.Write] with an [io.Writer] and a [*review.Report]. [WriteReport]
// handles destination selection.
package output
