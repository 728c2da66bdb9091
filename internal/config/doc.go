// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and ROSTER_ environment variables.
// Environment variables win over the file, the file wins over defaults.
package config
