package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/weiawesome/typedid/internal/cli"
	pkglog "github.com/weiawesome/typedid/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRoot().ExecuteContext(ctx); err != nil {
		l := pkglog.L()
		l.Error().Err(err).Msg("idgen failed")
		stop()
		os.Exit(1)
	}
}
