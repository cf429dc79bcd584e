package tools

import (
	"context"

	"al.essio.dev/pkg/shellescape"
	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/kgerr"
	"github.com/kgtools/foundation/internal/logging"
	"github.com/kgtools/foundation/internal/timehelper"
)

var runParams = []command.Param{
	{Name: "argv", Type: command.String, List: true, Extra: command.Extra{Passthrough: true}},
}

func (t *Tools) run(ctx context.Context, args *command.Args) error {
	argv := args.Strings("argv")
	if len(argv) == 0 {
		return kgerr.New("nothing to run")
	}
	script := shellescape.QuoteCommand(argv)
	logging.FromContext(ctx).Info("running", "script", script)

	defer timehelper.PrintTimeTo(t.Err, argv[0])()
	sh := t.shell()
	sh.Log("$", script)
	return sh.Sh0(ctx, script)
}

var spinParams = []command.Param{
	{Name: "title", Type: command.String},
	{Name: "argv", Type: command.String, List: true, Extra: command.Extra{Help: "Command to run, after --"}},
}

func (t *Tools) spin(ctx context.Context, args *command.Args) error {
	script := shellescape.QuoteCommand(args.Strings("argv"))
	out, err := t.shell().Spin(ctx, args.String("title"), script)
	if err != nil {
		return err
	}
	_, err = t.Out.Write([]byte(out))
	return err
}
