package config

import "fmt"

type OutputFormat string

const (
	OutputFormatDefault OutputFormat = ""
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatJSON    OutputFormat = "json"
)

func (o *OutputFormat) String() string {
	return string(*o)
}

// Set validates v, so it can back a command-line converter.
func (o *OutputFormat) Set(v string) error {
	switch OutputFormat(v) {
	case OutputFormatDefault, OutputFormatYAML, OutputFormatJSON:
		*o = OutputFormat(v)
	default:
		return fmt.Errorf("unknown output format: %v", v)
	}
	return nil
}
