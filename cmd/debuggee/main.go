// Command debuggee prints a number and its address once a second, forever.
// Overwrite the number from another process and the next line shows it.
//
// Reports go to stdout as "<value> (<address>)". Logs go to stderr.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pboyd/injectee"
	"github.com/pboyd/injectee/internal/logger"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg, err := logger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer lg.Sync()

	cfg, err := injectee.LoadConfig()
	if err != nil {
		lg.Error(err.Error())
		os.Exit(1)
	}
	if cfg.Debug {
		logger.SetDebug()
	}

	err = injectee.RunDebuggee(ctx, cfg, os.Stdout, lg.Named("debuggee"))
	if err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("debuggee failed", zap.Error(err))
		os.Exit(1)
	}
}
