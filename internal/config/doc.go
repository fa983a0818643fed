// Package config loads and validates the normalization server configuration.
//
// Settings come from an optional TOML file layered over Default. Sections:
//   - server: listen address, timeouts, request size and concurrency limits
//   - logging: log file and output format
//   - processing: normalizer type, batch workers and warm-up
package config
