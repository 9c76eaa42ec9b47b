// Package main is the bvhkin command itself.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	bvhcli "github.com/wghou/BeeVeeH/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := bvhcli.NewApp(os.Stdout, os.Stderr)
	if err := app.RunContext(ctx, os.Args); err != nil {
		cancel()
		cli.HandleExitCoder(bvhcli.ExitError(err))
	}
}
