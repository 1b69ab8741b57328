package api

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how CLI commands print structured responses.
type OutputFormat string

const (
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatJSON OutputFormat = "json"
)

// current holds the format selected by the root command's --output flag.
var current = OutputFormatYAML

// SetOutputFormat parses the --output flag value. Unrecognized values
// fall back to YAML.
func SetOutputFormat(format string) {
	if OutputFormat(format) == OutputFormatJSON {
		current = OutputFormatJSON
		return
	}
	current = OutputFormatYAML
}

// Output prints data to stdout in the selected format.
func Output(data any) error {
	return OutputTo(os.Stdout, current, data)
}

// OutputTo encodes data to w in the given format.
func OutputTo(w io.Writer, format OutputFormat, data any) error {
	switch format {
	case OutputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
