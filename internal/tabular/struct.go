package tabular

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

type structColumn struct {
	index []int
	title string
	max   int
}

// structColumns reads `tabular:"TITLE"` or `tabular:"TITLE,max=N"` tags.
// Untagged fields are skipped.
func structColumns(rowType reflect.Type) []structColumn {
	var cols []structColumn
	for _, f := range reflect.VisibleFields(rowType) {
		tag := f.Tag.Get("tabular")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		c := structColumn{index: f.Index, title: parts[0]}
		for _, attr := range parts[1:] {
			if v, ok := strings.CutPrefix(attr, "max="); ok {
				if n, err := strconv.Atoi(v); err == nil {
					c.max = n
				}
			}
		}
		cols = append(cols, c)
	}
	return cols
}

// FromStructs builds a table with a header from the tagged fields of S and
// one row per element of rows.
func FromStructs[S any](rows []S, opts ...Option) (*Table, error) {
	var zero S
	cols := structColumns(reflect.TypeOf(zero))
	t := New(opts...)

	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	if err := t.Header(header...); err != nil {
		return nil, err
	}

	for _, r := range rows {
		v := reflect.ValueOf(r)
		cells := make([]any, len(cols))
		for i, c := range cols {
			cell := v.FieldByIndex(c.index).Interface()
			if c.max > 0 {
				cell = Truncate(t.format(cell), c.max)
			}
			cells[i] = cell
		}
		if err := t.Row(cells...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Truncate shortens s to at most n runes, ending in ".." when there is room.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	if n > 2 {
		return string(runes[:n-2]) + ".."
	}
	return string(runes[:n])
}
