// Package scripting runs shell snippets from Go the way a shell script would:
// through bash, failing on a non-zero exit status.
package scripting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/spinner"
	"github.com/oklog/run"
)

// Runner runs commands with bash. The zero value is not usable; use New or
// Default.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	// Check makes a non-zero exit status an error.
	Check bool
	now   func() time.Time
}

func New(stdout, stderr io.Writer) *Runner {
	return &Runner{Stdout: stdout, Stderr: stderr, Check: true, now: time.Now}
}

// Default writes to the process's stdout and stderr.
var Default = New(os.Stdout, os.Stderr)

func (r *Runner) command(ctx context.Context, script string) *exec.Cmd {
	return exec.CommandContext(ctx, "/usr/bin/env", "bash", "-c", script)
}

func (r *Runner) run(cmd *exec.Cmd) error {
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if _, ok := err.(*exec.ExitError); ok && !r.Check {
		return nil
	}
	return fmt.Errorf("running %q: %w", strings.Join(cmd.Args[3:], " "), err)
}

// Sh0 runs script with output going to the runner's writers.
func (r *Runner) Sh0(ctx context.Context, script string) error {
	cmd := r.command(ctx, script)
	cmd.Stdin = os.Stdin
	cmd.Stdout, cmd.Stderr = r.Stdout, r.Stderr
	return r.run(cmd)
}

// Sh1 runs script and returns its stdout. On failure the captured stderr is
// copied to the runner's stderr.
func (r *Runner) Sh1(ctx context.Context, script string) (string, error) {
	stdout, stderr, err := r.Sh2(ctx, script)
	if err != nil {
		io.WriteString(r.Stderr, stderr)
	}
	return stdout, err
}

// Sh2 runs script and returns its stdout and stderr.
func (r *Runner) Sh2(ctx context.Context, script string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := r.command(ctx, script)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := r.run(cmd)
	return stdout.String(), stderr.String(), err
}

// Log prints args to stderr after a yellow [HH:MM] timestamp.
func (r *Runner) Log(args ...any) {
	stamp := colors.Yellow("[" + r.now().Format("15:04") + "]")
	colors.Print(r.Stderr, append([]any{stamp}, args...)...)
}

// Spin runs script behind a spinner titled title, showing the last line the
// script printed. An interrupt stops the script and marks the spinner failed.
// It returns the script's stdout.
func (r *Runner) Spin(ctx context.Context, title, script string) (string, error) {
	s, err := spinner.Start(r.Stderr, title)
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var stdout bytes.Buffer
	cmd := r.command(ctx, script)
	cmd.Stdout = io.MultiWriter(&stdout, lastLine{s})
	cmd.Stderr = lastLine{s}

	var g run.Group
	g.Add(func() error { return r.run(cmd) }, func(error) { cancel() })
	g.Add(run.SignalHandler(ctx, os.Interrupt))

	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		err = fmt.Errorf("interrupted by %v", sig.Signal)
	}
	if serr := s.Done(err); serr != nil && err == nil {
		err = serr
	}
	return stdout.String(), err
}

// lastLine forwards the last non-empty line of each write to a spinner.
type lastLine struct {
	s *spinner.T
}

func (l lastLine) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimRight(string(p), "\n"), "\n")
	if last := strings.TrimSpace(lines[len(lines)-1]); last != "" {
		l.s.Message(last)
	}
	return len(p), nil
}

func Sh0(ctx context.Context, script string) error { return Default.Sh0(ctx, script) }

func Sh1(ctx context.Context, script string) (string, error) { return Default.Sh1(ctx, script) }

func Sh2(ctx context.Context, script string) (string, string, error) {
	return Default.Sh2(ctx, script)
}

func Log(args ...any) { Default.Log(args...) }
