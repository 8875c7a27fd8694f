// Package cli holds shared helpers for the cmd layer: output format
// handling, parameter parsing, and the wait spinner.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable formats output as a table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatJSON formats output as JSON data
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML formats output as YAML data
	OutputFormatYAML OutputFormat = "yaml"
)

// ValidateOutputFormat validates that the given format string is a
// supported output format.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (valid: table, json, yaml)", format)
	}
}

// PrintStructured writes data as JSON or YAML. Table rendering is data
// specific and stays with the callers.
func PrintStructured(out io.Writer, format OutputFormat, data interface{}) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("format %q is not a structured format", format)
	}
}

// NewSpinner creates the standard wait spinner used while a synchronous
// operation polls. The caller is responsible for Start/Stop.
func NewSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	return s
}
