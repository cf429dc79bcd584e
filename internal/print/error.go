package print

import (
	"fmt"
	"io"

	"github.com/kgtools/foundation/internal/config"
)

// Error reports err in the requested format. The default format returns err
// unchanged so that the caller's usual error path prints it.
func Error(out io.Writer, err error, outputFormat config.OutputFormat) error {
	type errorResponse struct {
		Error string `json:"error"`
	}

	rawResponse := errorResponse{Error: err.Error()}

	switch outputFormat {
	case config.OutputFormatDefault:
		return err
	case config.OutputFormatJSON:
		return RawJSON(out, rawResponse)
	case config.OutputFormatYAML:
		return RawYAML(out, rawResponse)
	default:
		return fmt.Errorf("unsupported output format: %q", outputFormat)
	}
}
