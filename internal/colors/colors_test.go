package colors

import (
	"bytes"
	"testing"
)

func TestColorCodes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		want string
	}{
		{"red", Red, "\x1b[31mhi\x1b[0m"},
		{"yellow", Yellow, "\x1b[33mhi\x1b[0m"},
		{"cyan", Cyan, "\x1b[36mhi\x1b[0m"},
		{"green", Green, "\x1b[32mhi\x1b[0m"},
		{"gray", Gray, "\x1b[90mhi\x1b[0m"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn("hi"); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStrip(t *testing.T) {
	in := Red("error") + ": " + Gray("details") + "\x1b[1;4mbold\x1b[0m"
	if got, want := Strip(in), "error: detailsbold"; got != want {
		t.Errorf("Strip() = %q, want %q", got, want)
	}
	if got := Strip("plain"); got != "plain" {
		t.Errorf("Strip() changed plain text: %q", got)
	}
}

func TestWidth(t *testing.T) {
	if got := Width(Yellow("country")); got != 7 {
		t.Errorf("Width() = %d, want 7", got)
	}
}

func TestPrintStripsWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	if err := Print(&buf, Green("ok"), 3); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "ok 3\n"; got != want {
		t.Errorf("Print() wrote %q, want %q", got, want)
	}
}

func TestErrorTo(t *testing.T) {
	var buf bytes.Buffer
	if err := ErrorTo(&buf, "too few arguments"); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "Error: too few arguments\n"; got != want {
		t.Errorf("ErrorTo() wrote %q, want %q", got, want)
	}
}

func TestEnabledRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	if Enabled(&buf) {
		t.Error("Enabled() = true with NO_COLOR set")
	}
}
