package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kgtools/foundation/internal/buildinfo"
	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/kgerr"
	"github.com/kgtools/foundation/internal/logging"
	"github.com/spf13/cobra"
)

type dispatcher struct {
	argv    []string
	bail    bool
	logInit func(slog.Level)
	env     *config.Env
	stdout  io.Writer
	stderr  io.Writer
	exit    func(int)
}

// DispatchOption configures Dispatch.
type DispatchOption func(*dispatcher)

// WithArgv replaces os.Args.
func WithArgv(argv ...string) DispatchOption {
	return func(d *dispatcher) { d.argv = argv }
}

// WithoutExit makes Dispatch return command-line errors instead of printing
// them and exiting.
func WithoutExit() DispatchOption {
	return func(d *dispatcher) { d.bail = false }
}

// WithLogInit is called with the chosen log level before the handler runs.
func WithLogInit(f func(slog.Level)) DispatchOption {
	return func(d *dispatcher) { d.logInit = f }
}

// WithEnv skips loading the environment and config file.
func WithEnv(env *config.Env) DispatchOption {
	return func(d *dispatcher) { d.env = env }
}

func WithOutput(stdout, stderr io.Writer) DispatchOption {
	return func(d *dispatcher) { d.stdout, d.stderr = stdout, stderr }
}

// WithExit replaces os.Exit. When exit returns, Dispatch returns the error
// that caused it.
func WithExit(exit func(int)) DispatchOption {
	return func(d *dispatcher) { d.exit = exit }
}

// Dispatch parses the command line against node and runs the selected
// handler. Help and version requests are answered on stdout, and
// "__complete" requests from generated shell completion scripts are served
// from node.
func Dispatch(ctx context.Context, node Node, opts ...DispatchOption) error {
	d := &dispatcher{
		argv:   os.Args,
		bail:   true,
		stdout: os.Stdout,
		stderr: os.Stderr,
		exit:   os.Exit,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.env == nil {
		env, err := config.Load("")
		if err != nil {
			return err
		}
		d.env = env
	}

	if len(d.argv) > 1 && d.argv[1] == cobra.ShellCompRequestCmd {
		return d.complete(ctx, node)
	}

	handler, result, err := Parse(node, d.argv)
	var help *HelpRequest
	switch {
	case errors.As(err, &help):
		fmt.Fprintln(d.stdout, HelpText(help.Node, d.program(node, help.Index)))
		if help.Message == "" {
			return nil
		}
		fmt.Fprintln(d.stdout)
		colors.ErrorTo(d.stderr, help.Message)
		d.exit(1)
		return help
	case errors.Is(err, ErrVersion):
		fmt.Fprintln(d.stdout, buildinfo.String())
		return nil
	case err != nil:
		if d.bail {
			fmt.Fprintf(d.stderr, "Command-line error: %s\n", err)
			d.exit(1)
		}
		return err
	}

	if d.logInit != nil {
		level := slog.LevelInfo
		if result.LessLogging {
			level = slog.LevelWarn
		}
		if d.env.LogLevel != "" {
			if level, err = logging.ParseLevel(d.env.LogLevel); err != nil {
				return err
			}
		}
		d.logInit(level)
	}

	ctx = logging.WithLogger(ctx, slog.Default())
	err = handler(ctx, NewArgs(result))
	if err == nil {
		return nil
	}
	if kerr, ok := kgerr.As(err); ok && result.LessLogging {
		d.report(kerr)
		d.exit(1)
	}
	return err
}

// program is the name shown in usage lines: the node's Program, else
// KG_PROGRAM_NAME, else argv[0], followed by the subcommands typed so far.
func (d *dispatcher) program(node Node, index int) string {
	name := node.nodeProgram()
	if name == "" {
		name = d.env.ProgramName
	}
	if name == "" && len(d.argv) > 0 {
		name = d.argv[0]
	}
	parts := []string{name}
	if index > 1 && len(d.argv) > 1 {
		parts = append(parts, d.argv[1:min(index, len(d.argv))]...)
	}
	return strings.Join(parts, " ")
}

func (d *dispatcher) report(err *kgerr.Error) {
	fmt.Fprintf(d.stderr, "%+v\n", err)
	fmt.Fprintln(d.stderr)
	fmt.Fprintln(d.stderr, "The command failed due to an error.")
	fmt.Fprintln(d.stderr)
	fmt.Fprintln(d.stderr, indent(err.HumanString(), "  "))
	fmt.Fprintln(d.stderr)
}

func (d *dispatcher) complete(ctx context.Context, node Node) error {
	name := node.nodeProgram()
	if name == "" {
		name = d.env.ProgramName
	}
	if name == "" {
		name = d.argv[0]
	}
	root := mirror(name, node)
	root.SetArgs(d.argv[1:])
	root.SetOut(d.stdout)
	root.SetErr(d.stderr)
	return root.ExecuteContext(ctx)
}

// indent prefixes every non-blank line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
