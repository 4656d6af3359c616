// Package logger builds the zap logger shared by the binaries.
package logger

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey struct{}

var (
	ctxLoggerKey = loggerKey{}
	loggingLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

	debugColor = color.New(color.FgHiBlack)
	infoColor  = color.New(color.FgBlue)
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed)
	fatalColor = color.New(color.FgHiRed)
	nameColor  = color.New(color.FgHiBlue)
	timeColor  = color.New(color.Faint)
)

// New returns a console logger writing to stderr. Stdout is left alone
// because the debuggee's reports go there.
func New() (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.ConsoleSeparator = " "
	cfg.EncoderConfig.EncodeLevel = levelEncoder
	cfg.EncoderConfig.EncodeTime = timeEncoder
	cfg.EncoderConfig.EncodeName = func(s string, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(nameColor.Sprint(s))
	}
	cfg.Level = loggingLevel

	lg, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return lg, nil
}

// WithLogger returns a copy of ctx carrying lg.
func WithLogger(ctx context.Context, lg *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, lg)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if lg, ok := ctx.Value(ctxLoggerKey).(*zap.Logger); ok {
		return lg
	}
	return zap.NewNop()
}

// SetDebug lowers the level of every logger built by New to debug.
func SetDebug() {
	loggingLevel.SetLevel(zap.DebugLevel)
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString(debugColor.Sprint("D"))
	case zapcore.InfoLevel:
		enc.AppendString(infoColor.Sprint("I"))
	case zapcore.WarnLevel:
		enc.AppendString(warnColor.Sprint("W"))
	case zapcore.ErrorLevel:
		enc.AppendString(errorColor.Sprint("E"))
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		enc.AppendString(fatalColor.Sprint("F"))
	default:
		enc.AppendString("U")
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(timeColor.Sprint(t.Format("02/01/2006 15:04:05")))
}
