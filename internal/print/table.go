package print

import (
	"fmt"
	"io"

	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/tabular"
)

// Table prints t as aligned text, or as a list of records keyed by the
// header row for the JSON and YAML formats.
func Table(out io.Writer, t *tabular.Table, outputFormat config.OutputFormat, align []tabular.Align) error {
	switch outputFormat {
	case config.OutputFormatDefault:
		return t.Flush(out, tabular.DefaultSpacing, align)
	case config.OutputFormatJSON, config.OutputFormatYAML:
		records, err := t.Records()
		if err != nil {
			return err
		}
		if outputFormat == config.OutputFormatJSON {
			return RawJSON(out, records)
		}
		return RawYAML(out, records)
	default:
		return fmt.Errorf("unsupported output format: %q", outputFormat)
	}
}
