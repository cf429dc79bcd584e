// Package prelude holds small helpers that most scripts end up needing.
package prelude

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kgtools/foundation/internal/kgerr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Pluralize formats n with thousands separators followed by word, or by its
// plural when n != 1. The plural defaults to word + "s".
func Pluralize(n int, word string, plural ...string) string {
	p := word + "s"
	if len(plural) > 0 && plural[0] != "" {
		p = plural[0]
	}
	if n == 1 {
		return printer.Sprintf("%d %s", n, word)
	}
	return printer.Sprintf("%d %s", n, p)
}

// RemovePrefix returns s without prefix, or s unchanged if it does not have it.
func RemovePrefix(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// MustRemovePrefix is like RemovePrefix but fails when prefix is absent.
func MustRemovePrefix(s, prefix string) (string, error) {
	if !strings.HasPrefix(s, prefix) {
		return s, kgerr.New("string does not have expected prefix", "s", s, "prefix", prefix)
	}
	return s[len(prefix):], nil
}

func RemoveSuffix(s, suffix string) string {
	return strings.TrimSuffix(s, suffix)
}

func MustRemoveSuffix(s, suffix string) (string, error) {
	if !strings.HasSuffix(s, suffix) {
		return s, kgerr.New("string does not have expected suffix", "s", s, "suffix", suffix)
	}
	return s[:len(s)-len(suffix)], nil
}

// FindFirst returns the first element of xs satisfying pred.
func FindFirst[T any](xs []T, pred func(T) bool) (T, bool) {
	for _, x := range xs {
		if pred(x) {
			return x, true
		}
	}
	var zero T
	return zero, false
}

func Flatten[T any](xss [][]T) []T {
	var out []T
	for _, xs := range xss {
		out = append(out, xs...)
	}
	return out
}

// SHA256 returns the hex digest of s.
func SHA256(s string) string {
	return SHA256Bytes([]byte(s))
}

func SHA256Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Confirm asks prompt on out until the user answers yes or no on in. EOF
// counts as no.
func Confirm(in io.Reader, out io.Writer, prompt string) bool {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintln(out, "Please enter 'yes' or 'no'.")
		}
	}
}

// ConfirmOrBail exits the process unless the user confirms on stdin.
func ConfirmOrBail(prompt string) {
	if !Confirm(os.Stdin, os.Stdout, prompt) {
		Bail("Aborted.")
	}
}

// Bail prints args to standard error and exits with status 1.
func Bail(args ...any) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}
