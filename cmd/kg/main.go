package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kgtools/foundation/internal/command"
	"github.com/kgtools/foundation/internal/config"
	"github.com/kgtools/foundation/internal/logging"
	"github.com/kgtools/foundation/internal/tools"
)

func main() {
	env, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	root, err := tools.New(env).Root()
	if err != nil {
		panic(err)
	}
	err = command.Dispatch(context.Background(), root,
		command.WithEnv(env),
		command.WithLogInit(logging.Initializer(env)),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
