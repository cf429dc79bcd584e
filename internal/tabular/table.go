// Package tabular renders rows of strings as fixed-width, left/center/right
// justified columns. Widths ignore ANSI color codes so colored cells line up.
package tabular

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/kgerr"
	"golang.org/x/term"
)

const DefaultSpacing = 2

// Align is a column alignment.
type Align byte

const (
	Left   Align = 'l'
	Center Align = 'c'
	Right  Align = 'r'
)

type Table struct {
	widths    []int
	rows      [][]string
	n         int
	numFormat string
	hasHeader bool
}

type Option func(*Table)

// WithNumFormat sets the fmt verb used for integer cells. The default is "%d".
func WithNumFormat(format string) Option {
	return func(t *Table) { t.numFormat = format }
}

func New(opts ...Option) *Table {
	t := &Table{numFormat: "%d"}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Header adds a row colored yellow. It is only treated as a header for
// Records when it is the first row.
func (t *Table) Header(items ...any) error {
	if len(t.rows) == 0 {
		t.hasHeader = true
	}
	return t.RowColor(colors.Yellow, items...)
}

func (t *Table) Row(items ...any) error {
	return t.RowColor(nil, items...)
}

// RowColor adds a row, passing each cell through color when it is not nil.
// The first row fixes the number of columns.
func (t *Table) RowColor(color func(string) string, items ...any) error {
	if len(t.rows) == 0 {
		if len(items) == 0 {
			return kgerr.New("first row cannot be empty")
		}
		t.n = len(items)
	} else if len(items) != t.n {
		return kgerr.New("row wrong length", "expected", t.n, "actual", len(items), "items", items)
	}

	cells := make([]string, len(items))
	for i, item := range items {
		s := t.format(item)
		if color != nil {
			s = color(s)
		}
		cells[i] = s
	}
	t.updateWidths(cells)
	t.rows = append(t.rows, cells)
	return nil
}

func (t *Table) format(item any) string {
	switch v := item.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf(t.numFormat, v)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (t *Table) updateWidths(cells []string) {
	if len(t.widths) == 0 {
		t.widths = make([]int, len(cells))
	}
	for i, c := range cells {
		t.widths[i] = max(t.widths[i], colors.Width(c))
	}
}

// Len is the number of rows, including any header.
func (t *Table) Len() int { return len(t.rows) }

// Sort orders every row after the first by the cell in the column whose
// first-row title (colors stripped) is column.
func (t *Table) Sort(column string) error {
	i, err := t.columnIndex(column)
	if err != nil {
		return err
	}
	body := t.rows[1:]
	sort.SliceStable(body, func(a, b int) bool {
		return body[a][i] < body[b][i]
	})
	return nil
}

func (t *Table) columnIndex(column string) (int, error) {
	if len(t.rows) == 0 {
		return 0, kgerr.New("cannot sort an empty table")
	}
	header := t.headerTitles()
	for i, h := range header {
		if h == column {
			return i, nil
		}
	}
	return 0, kgerr.New("sort column not found", "column", column, "options", header)
}

func (t *Table) headerTitles() []string {
	out := make([]string, len(t.rows[0]))
	for i, c := range t.rows[0] {
		out[i] = colors.Strip(c)
	}
	return out
}

// Lines renders every row left-justified with spacing spaces between columns.
// Trailing whitespace is trimmed from each line.
func (t *Table) Lines(spacing int) []string {
	lines, _ := t.render(spacing, nil)
	return lines
}

// String renders the table with a trailing newline. align may be nil, which
// left-justifies every column.
func (t *Table) String(spacing int, align []Align) (string, error) {
	lines, err := t.render(spacing, align)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// Flush prints the table to w through colors.Print, so colors are dropped
// when w is not a terminal. On a terminal, lines are cut to its width.
func (t *Table) Flush(w io.Writer, spacing int, align []Align) error {
	lines, err := t.render(spacing, align)
	if err != nil {
		return err
	}
	width := terminalWidth(w)
	for _, line := range lines {
		if width > 0 && colors.Width(line) > width {
			line = ansi.Truncate(line, width, "..")
		}
		if err := colors.Print(w, line); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) render(spacing int, align []Align) ([]string, error) {
	if align != nil {
		if len(align) != t.n {
			return nil, kgerr.New("alignment list must match number of columns", "expected", t.n, "actual", len(align))
		}
		for _, a := range align {
			if a != Left && a != Center && a != Right {
				return nil, kgerr.New("invalid alignment values", "valid_values", "l, c, r", "provided", string(alignBytes(align)))
			}
		}
	}

	sep := strings.Repeat(" ", spacing)
	lines := make([]string, 0, len(t.rows))
	cells := make([]string, t.n)
	for _, row := range t.rows {
		for i, cell := range row {
			a := Left
			if align != nil {
				a = align[i]
			}
			switch a {
			case Right:
				cells[i] = RightJustify(cell, t.widths[i])
			case Center:
				cells[i] = CenterJustify(cell, t.widths[i])
			default:
				cells[i] = LeftJustify(cell, t.widths[i])
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, sep), " "))
	}
	return lines, nil
}

func alignBytes(align []Align) []byte {
	b := make([]byte, len(align))
	for i, a := range align {
		b[i] = byte(a)
	}
	return b
}

// Records returns the body rows keyed by header title. The table must have
// been started with Header.
func (t *Table) Records() ([]map[string]string, error) {
	if !t.hasHeader {
		return nil, kgerr.New("table has no header")
	}
	header := t.headerTitles()
	out := make([]map[string]string, 0, len(t.rows)-1)
	for _, row := range t.rows[1:] {
		rec := make(map[string]string, len(row))
		for i, c := range row {
			rec[header[i]] = colors.Strip(c)
		}
		out = append(out, rec)
	}
	return out, nil
}

func LeftJustify(s string, width int) string {
	pad := width - colors.Width(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}

func RightJustify(s string, width int) string {
	pad := width - colors.Width(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// CenterJustify pads s on both sides. When the padding is odd, the extra
// space goes on the left only if both the padding and width are odd.
func CenterJustify(s string, width int) string {
	pad := width - colors.Width(s)
	if pad <= 0 {
		return s
	}
	left := pad/2 + (pad & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Quick prints headers (if any) and rows to w with the default spacing.
func Quick(w io.Writer, headers []any, rows ...[]any) error {
	t := New()
	if headers != nil {
		if err := t.Header(headers...); err != nil {
			return err
		}
	}
	for _, row := range rows {
		if err := t.Row(row...); err != nil {
			return err
		}
	}
	return t.Flush(w, DefaultSpacing, nil)
}
