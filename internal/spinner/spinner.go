// Package spinner displays a progress indicator next to a running task.
//
// On a terminal the spinner animates a single line. Otherwise yacspin prints
// each update on its own line without color.
package spinner

import (
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/kgtools/foundation/internal/tabular"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

type T struct {
	*yacspin.Spinner

	out io.Writer
	// prefixWidth is the width of the spinner character and title.
	prefixWidth int
}

func New(out io.Writer, title string) (*T, error) {
	cfg := yacspin.Config{
		Writer:            out,
		Frequency:         100 * time.Millisecond,
		CharSet:           yacspin.CharSets[14],
		StopCharacter:     "✓",
		StopColors:        []string{"fgGreen"},
		StopFailCharacter: "✗",
		StopFailColors:    []string{"fgRed"},
		Message:           "...",
		Suffix:            fmt.Sprintf(" %s: ", title),
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.ColorAll = false
		cfg.StopColors = nil
		cfg.StopFailColors = nil
	}
	s, err := yacspin.New(cfg)
	if err != nil {
		return nil, err
	}
	return &T{
		Spinner:     s,
		out:         out,
		prefixWidth: utf8.RuneCountInString(cfg.CharSet[0] + cfg.Suffix),
	}, nil
}

// Start creates a spinner and starts it.
func Start(out io.Writer, title string) (*T, error) {
	s, err := New(out, title)
	if err != nil {
		return nil, err
	}
	if err := s.Spinner.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Message replaces the status text, cut to fit on one terminal line. The
// same text is shown if the spinner later fails.
func (t *T) Message(msg string) {
	t.Spinner.StopFailMessage(msg)
	if width := t.termWidth(); width > t.prefixWidth {
		msg = tabular.Truncate(msg, width-t.prefixWidth)
	}
	t.Spinner.Message(msg)
}

func (t *T) Messagef(format string, args ...any) {
	t.Message(fmt.Sprintf(format, args...))
}

// Done stops the spinner, marking it failed when err is not nil.
func (t *T) Done(err error) error {
	if err != nil {
		t.Spinner.StopFailMessage(err.Error())
		return t.Spinner.StopFail()
	}
	t.Spinner.StopMessage("done")
	return t.Spinner.Stop()
}

// termWidth returns the terminal width, or 0 if out is not a terminal.
func (t *T) termWidth() int {
	file, ok := t.out.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 0
	}
	return width
}
