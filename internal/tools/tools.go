// Package tools defines the subcommands of the kg binary.
package tools

import (
	"io"
	"os"
	"time"

	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/scripting"
)

const defaultProgram = "kg"

// Tools holds what the kg subcommands read from and write to.
type Tools struct {
	Env *config.Env
	In  io.Reader
	Out io.Writer
	Err io.Writer

	now  func() time.Time
	root *command.Group
}

func New(env *config.Env) *Tools {
	return &Tools{
		Env: env,
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		now: time.Now,
	}
}

func (t *Tools) shell() *scripting.Runner {
	return scripting.New(t.Out, t.Err)
}

func (t *Tools) program() string {
	if t.Env != nil && t.Env.ProgramName != "" {
		return t.Env.ProgramName
	}
	return defaultProgram
}

// Root builds the kg command tree.
func (t *Tools) Root() (*command.Group, error) {
	root := command.NewGroup(command.WithHelp("Small command-line tools for everyday scripting."))
	t.root = root

	subcommands := []struct {
		name    string
		handler command.Handler
		params  []command.Param
		help    string
	}{
		{"table", t.table, tableParams, "Render delimited text as an aligned table.\nReads standard input unless a file is given."},
		{"month", t.month, monthParams, "List the days of a month and its quarter."},
		{"ago", t.ago, agoParams, "Show a Unix timestamp and how long ago it was."},
		{"strip", t.strip, nil, "Remove ANSI color codes from standard input."},
		{"sha256", t.sha256, sha256Params, "Print SHA-256 checksums of files or standard input."},
		{"run", t.run, runParams, "Run a shell command and report how long it took."},
		{"spin", t.spin, spinParams, "Run a shell command behind a spinner."},
		{"help-all", t.helpAll, nil, "Show help for every subcommand."},
		{"completion", t.completion, completionParams, "Print a shell completion script."},
	}
	for _, sc := range subcommands {
		if err := root.AddFunc(sc.name, sc.handler, sc.params, command.WithHelp(sc.help)); err != nil {
			return nil, err
		}
	}
	return root, nil
}
