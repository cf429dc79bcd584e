// Package colors wraps strings in ANSI color codes and prints them, dropping
// the codes when the destination is not a terminal or NO_COLOR is set.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	red    = forced(color.FgRed)
	yellow = forced(color.FgYellow)
	cyan   = forced(color.FgCyan)
	green  = forced(color.FgGreen)
	gray   = forced(color.FgHiBlack)
)

// forced returns a color whose codes are always emitted. Whether they reach
// the user is decided at print time.
func forced(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

func Red(s string) string    { return red.Sprint(s) }
func Yellow(s string) string { return yellow.Sprint(s) }
func Cyan(s string) string   { return cyan.Sprint(s) }
func Green(s string) string  { return green.Sprint(s) }
func Gray(s string) string   { return gray.Sprint(s) }

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}

// Width is the number of terminal cells s occupies once escape sequences are
// removed.
func Width(s string) int {
	return lipgloss.Width(s)
}

// Print writes args separated by spaces followed by a newline. Colors are
// stripped unless w is a terminal and NO_COLOR is unset
// (https://no-color.org/).
func Print(w io.Writer, args ...any) error {
	msg := strings.TrimSuffix(fmt.Sprintln(args...), "\n")
	if !Enabled(w) {
		msg = Strip(msg)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}

// Eprint is Print to standard error.
func Eprint(args ...any) error {
	return Print(os.Stderr, args...)
}

// Error prints a red "Error:" prefix followed by args to standard error.
func Error(args ...any) error {
	return ErrorTo(os.Stderr, args...)
}

func ErrorTo(w io.Writer, args ...any) error {
	return Print(w, append([]any{Red("Error:")}, args...)...)
}

// Enabled reports whether colors written to w would be shown.
func Enabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
