package tools

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kgtools/foundation/internal/colors"
	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/prelude"
)

func (t *Tools) strip(_ context.Context, _ *command.Args) error {
	data, err := io.ReadAll(t.In)
	if err != nil {
		return err
	}
	_, err = io.WriteString(t.Out, colors.Strip(string(data)))
	return err
}

var sha256Params = []command.Param{
	{Name: "files", Type: command.Path, List: true, Optional: true},
}

func (t *Tools) sha256(_ context.Context, args *command.Args) error {
	files := args.Strings("files")
	if len(files) == 0 {
		data, err := io.ReadAll(t.In)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(t.Out, "%s  -\n", prelude.SHA256Bytes(data))
		return err
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(t.Out, "%s  %s\n", prelude.SHA256Bytes(data), path)
	}
	return nil
}
