//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the semantic version of the confc module embedded at build time.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and default config paths.
	Name = "confc"
	// Description is a short, human-readable summary of the project used in
	// help output and documentation.
	Description = "Configuration language to JSON compiler"
)
