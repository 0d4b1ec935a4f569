// Redline is a local CLI that reviews contract text for common clause
// categories using keyword heuristics.
//
// For each category (termination, confidentiality, liability, payment terms,
// intellectual property, governing law) it reports whether the clause is
// present, a risk level, the matched sentences, issues, notes and a
// recommendation. Exit codes are deterministic so the tool can gate CI jobs.
//
// Usage:
//
//	redline review contract.pdf                  # text report on stdout
//	redline review contract.txt --format json    # structured report
//	cat contract.txt | redline review -          # read from stdin
//	redline review nda.docx --fail-on high       # exit 1 on high overall risk
//	redline clauses list --clauses pack.yaml     # effective clause set
//	redline config init                          # write a default config file
package main
