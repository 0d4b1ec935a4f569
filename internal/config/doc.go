// Package config loads and merges redline configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (REDLINE_FORMAT, REDLINE_FAIL_ON, REDLINE_CLAUSES, etc.)
//  3. Config file ($XDG_CONFIG_HOME/redline/config.json)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged and validated [Config], [Save] to write the
// config file, and [SetField] to update a single key.
package config
