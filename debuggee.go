package injectee

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"
)

// RunDebuggee seeds a generator, draws a starting value and runs a Target
// that reports to w until ctx is done. A nil cfg means DefaultConfig.
func RunDebuggee(ctx context.Context, cfg *Config, w io.Writer, logger *zap.Logger) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Generator{}
	if cfg.Seed != 0 {
		g.Seed(cfg.Seed)
	} else {
		g.SeedRandom()
	}

	t := NewRandomTarget(g)
	t.Interval = cfg.Interval
	t.Logger = logger

	logger.Info("debuggee started",
		zap.Int("pid", os.Getpid()),
		zap.Uint32("seed", g.LastSeed()),
	)

	return t.Run(ctx, w)
}
