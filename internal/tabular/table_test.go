package tabular

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/kgerr"
)

func countries() *Table {
	t := New()
	t.Header("country", "capital", "population")
	t.Row("France", "Paris", "70 million")
	t.Row("United States", "Washington DC", "300 million")
	t.Row("Malaysia", "Kuala Lumpur", "35 million")
	return t
}

func ExampleTable_Flush() {
	t := countries()
	t.Flush(os.Stdout, DefaultSpacing, nil)

	// Output:
	// country        capital        population
	// France         Paris          70 million
	// United States  Washington DC  300 million
	// Malaysia       Kuala Lumpur   35 million
}

func ExampleTable_Sort() {
	t := countries()
	if err := t.Sort("country"); err != nil {
		panic(err)
	}
	t.Flush(os.Stdout, DefaultSpacing, nil)

	// Output:
	// country        capital        population
	// France         Paris          70 million
	// Malaysia       Kuala Lumpur   35 million
	// United States  Washington DC  300 million
}

func ExampleFromStructs() {
	type job struct {
		Name    string `tabular:"NAME"`
		Retries int    `tabular:"RETRIES"`
		Note    string `tabular:"NOTE,max=8"`
		secret  string
	}
	t, err := FromStructs([]job{
		{Name: "backup", Retries: 3, Note: "nightly at 2am"},
		{Name: "sync", Retries: 12, Note: "hourly"},
	})
	if err != nil {
		panic(err)
	}
	t.Flush(os.Stdout, DefaultSpacing, nil)

	// Output:
	// NAME    RETRIES  NOTE
	// backup  3        nightl..
	// sync    12       hourly
}

func TestRowLengthMismatch(t *testing.T) {
	tab := New()
	if err := tab.Row(); err == nil {
		t.Fatal("empty first row accepted")
	}
	if err := tab.Row("a", "b"); err != nil {
		t.Fatal(err)
	}
	err := tab.Row("a")
	e, ok := kgerr.As(err)
	if !ok {
		t.Fatalf("expected kgerr, got %v", err)
	}
	if e.Val("expected") != 2 || e.Val("actual") != 1 {
		t.Errorf("unexpected context: %s", e.HumanString())
	}
}

func TestNumFormat(t *testing.T) {
	tab := New(WithNumFormat("%05d"))
	tab.Row("n", 42)
	if got := tab.Lines(1); got[0] != "n 00042" {
		t.Errorf("Lines() = %q", got)
	}
}

func TestAlignment(t *testing.T) {
	tab := New()
	tab.Row("a", "b", "c")
	tab.Row("xxxx", "yyyy", "zzzzz")
	got, err := tab.String(1, []Align{Right, Center, Left})
	if err != nil {
		t.Fatal(err)
	}
	want := "   a  b   c\nxxxx yyyy zzzzz\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if _, err := tab.String(1, []Align{Left}); err == nil {
		t.Error("short alignment list accepted")
	}
	if _, err := tab.String(1, []Align{Left, 'x', Left}); err == nil {
		t.Error("invalid alignment accepted")
	}
}

func TestCenterJustify(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"a", 4, " a  "},
		{"a", 3, " a "},
		{"ab", 5, "  ab "},
		{"abc", 2, "abc"},
	}
	for _, tc := range tests {
		if got := CenterJustify(tc.s, tc.width); got != tc.want {
			t.Errorf("CenterJustify(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
		}
	}
}

func TestColoredCellsAlign(t *testing.T) {
	tab := New()
	tab.Row(colors.Red("x"), "1")
	tab.Row("yyy", "2")
	lines := tab.Lines(1)
	if got := colors.Strip(lines[0]); got != "x   1" {
		t.Errorf("colored row rendered as %q", got)
	}
}

func TestSortErrors(t *testing.T) {
	if err := New().Sort("x"); err == nil {
		t.Error("sorting an empty table succeeded")
	}
	if err := countries().Sort("continent"); err == nil {
		t.Error("sorting by a missing column succeeded")
	}
}

func TestRecords(t *testing.T) {
	recs, err := countries().Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[1]["capital"] != "Washington DC" {
		t.Errorf("Records() = %v", recs)
	}

	tab := New()
	tab.Row("a")
	if _, err := tab.Records(); err == nil {
		t.Error("Records() without header succeeded")
	}
}

func TestQuick(t *testing.T) {
	var b strings.Builder
	if err := Quick(&b, []any{"k", "v"}, []any{"a", 1}, []any{"bb", 22}); err != nil {
		t.Fatal(err)
	}
	if want := "k   v\na   1\nbb  22\n"; b.String() != want {
		t.Errorf("Quick() wrote %q, want %q", b.String(), want)
	}
}

func FuzzTruncate(f *testing.F) {
	f.Add("abc", 10)
	f.Add("abcdef", 6)
	f.Add(strings.Repeat("abc", 70), 30)
	f.Add(strings.Repeat("Hello, 世界", 70), 8)

	f.Fuzz(func(t *testing.T, in string, n int) {
		inLen := utf8.RuneCountInString(in)
		if n < 0 {
			n = 0
		}
		out := Truncate(in, n)
		if outLen := utf8.RuneCountInString(out); outLen > n {
			t.Errorf("RuneCountInString() = %v; want at most %v", outLen, n)
		}
		if utf8.ValidString(in) && !utf8.ValidString(out) {
			t.Errorf("truncation produced invalid UTF-8 string %q", out)
		}
		if inLen <= n && out != in {
			t.Errorf("Truncate(%q, %v) = %q; expected no change", in, n, out)
		}
	})
}
