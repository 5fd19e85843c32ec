package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/parallelstacks/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx))
}

func run(ctx context.Context) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	if err := c.RootCommand().ExecuteContext(ctx); err != nil {
		code := cli.ExitCode(err)
		if code != cli.ExitInterrupted {
			cli.PrintError("%s", cli.ErrorMessage(err))
		}
		return code
	}
	return cli.ExitOK
}
