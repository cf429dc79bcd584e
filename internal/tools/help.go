package tools

import (
	"context"
	"fmt"

	"github.com/kgtools/foundation/internal/command"
)

func (t *Tools) helpAll(_ context.Context, _ *command.Args) error {
	_, err := fmt.Fprintln(t.Out, command.HelpTextRecursive(t.root, t.program()))
	return err
}

var completionParams = []command.Param{
	{Name: "shell", Type: command.Enum(command.Shells...), Extra: command.Extra{Help: "bash, zsh, fish or powershell"}},
}

func (t *Tools) completion(_ context.Context, args *command.Args) error {
	return command.WriteCompletion(t.Out, t.program(), t.root, args.String("shell"))
}
