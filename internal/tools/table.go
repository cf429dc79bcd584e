package tools

import (
	"bufio"
	"context"
	"io"
	"slices"
	"strings"

	"github.com/kgtools/foundation/internal/clio"
	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/kgerr"
	"github.com/kgtools/foundation/internal/logging"
	"github.com/kgtools/foundation/internal/print"
	"github.com/kgtools/foundation/internal/tabular"
)

var tableParams = []command.Param{
	{Name: "file", Type: command.Path, Optional: true, Extra: command.Extra{Help: "Input file"}},
	{Name: "sep", Kind: command.KeywordOnly, Type: command.String, Default: command.Some(","),
		Extra: command.Extra{Help: `Column separator, or "tab"`}},
	{Name: "header", Kind: command.KeywordOnly, Type: command.Bool,
		Extra: command.Extra{Help: "Treat the first line as a header"}},
	{Name: "records", Kind: command.KeywordOnly, Type: command.Bool,
		Extra: command.Extra{Help: "Input is a YAML or JSON list of objects"}},
	{Name: "sort", Kind: command.KeywordOnly, Type: command.String, Optional: true,
		Extra: command.Extra{Help: "Sort by the header column with this title"}},
	{Name: "align", Kind: command.KeywordOnly, Type: command.String, Optional: true,
		Extra: command.Extra{Help: "One of l, c or r per column, e.g. lrr"}},
	{Name: "output", Kind: command.KeywordOnly, Type: command.Custom("output format"), Optional: true,
		Extra: command.Extra{Help: "json or yaml", Converter: parseOutputFormat}},
}

func parseOutputFormat(s string) (any, error) {
	var f config.OutputFormat
	if err := f.Set(s); err != nil {
		return nil, err
	}
	return f, nil
}

// table reports failures in the -output format, so a json or yaml consumer
// always gets a document.
func (t *Tools) table(ctx context.Context, args *command.Args) error {
	format, _ := args.Get("output").(config.OutputFormat)
	if err := t.renderTable(ctx, args, format); err != nil {
		return print.Error(t.Out, err, format)
	}
	return nil
}

func (t *Tools) renderTable(ctx context.Context, args *command.Args, format config.OutputFormat) error {
	var (
		tbl *tabular.Table
		err error
	)
	hasHeader := args.Bool("header") || args.Bool("records")
	if args.Bool("records") {
		tbl, err = readRecords(args.String("file"), t.In)
	} else {
		tbl, err = readDelimited(args.String("file"), t.In, args.String("sep"), hasHeader)
	}
	if err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("read table", "rows", tbl.Len())

	if column := args.String("sort"); column != "" {
		if !hasHeader {
			return kgerr.New("-sort requires -header", "column", column)
		}
		if err := tbl.Sort(column); err != nil {
			return err
		}
	}

	var align []tabular.Align
	for _, a := range args.String("align") {
		align = append(align, tabular.Align(a))
	}
	return print.Table(t.Out, tbl, format, align)
}

func readDelimited(filename string, stdin io.Reader, sep string, header bool) (*tabular.Table, error) {
	in, err := clio.Open(filename, stdin)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	if sep == "tab" {
		sep = "\t"
	}

	tbl := tabular.New()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, sep)
		cells := make([]any, len(fields))
		for i, f := range fields {
			cells[i] = strings.TrimSpace(f)
		}
		var err error
		if header && tbl.Len() == 0 {
			err = tbl.Header(cells...)
		} else {
			err = tbl.Row(cells...)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if tbl.Len() == 0 {
		return nil, kgerr.New("no input rows")
	}
	return tbl, nil
}

// readRecords builds a table from a list of objects. Columns are the union
// of their keys, sorted.
func readRecords(filename string, stdin io.Reader) (*tabular.Table, error) {
	records, err := clio.LoadYAML[[]map[string]any](filename, stdin)
	if err != nil {
		return nil, err
	}
	if len(*records) == 0 {
		return nil, kgerr.New("no input rows")
	}

	var keys []string
	for _, rec := range *records {
		for k := range rec {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)

	tbl := tabular.New()
	header := make([]any, len(keys))
	for i, k := range keys {
		header[i] = k
	}
	if err := tbl.Header(header...); err != nil {
		return nil, err
	}
	for _, rec := range *records {
		row := make([]any, len(keys))
		for i, k := range keys {
			if v, ok := rec[k]; ok && v != nil {
				row[i] = v
			} else {
				row[i] = ""
			}
		}
		if err := tbl.Row(row...); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
