package config

import _ "embed"

// DefaultConfigYAML is the embedded default configuration. Any field can be
// overridden by an external config.yaml or FINTRACK_* environment variables.
//
//go:embed default.yaml
var DefaultConfigYAML []byte
