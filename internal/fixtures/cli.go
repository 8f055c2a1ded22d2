package fixtures

import (
	"os"
)

// ShowHelp prints usage information for the fixtures tool.
func ShowHelp() {
	os.Stdout.WriteString(`Delfos Fixtures Tool
====================

Writes a synthetic O*NET dataset for smoke runs and checks derived artifacts.

Usage:
  go run ./cmd/fixtures [options]

Options:
  -generate string
        Directory to write the five source tables into
  -seed uint
        Seed for generated values (default 30)
  -ragged int
        Truncate every Nth row (default 97, 0 disables)
  -non-numeric int
        Write "n/a" as the value of every Nth row (default 89, 0 disables)
  -verify string
        Artifact file to check for consistency
  -help
        Show this help message

Examples:
  # Generate a dataset and derive from it
  go run ./cmd/fixtures -generate /tmp/onet
  DELFOS_SOURCE_DIR=/tmp/onet DELFOS_OUTPUT_FILE=/tmp/out.json go run ./cmd

  # Check the artifact
  go run ./cmd/fixtures -verify /tmp/out.json
`)
}
