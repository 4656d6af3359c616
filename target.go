package injectee

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unsafe"

	"go.uber.org/zap"
)

// DefaultInterval is how often a Target reports.
const DefaultInterval = time.Second

// ValueRange is the exclusive upper bound of a Target's starting value.
const ValueRange = 255

// ErrMalformedReport is returned by ParseReport for lines that aren't in the
// format written by Target.Run.
var ErrMalformedReport = errors.New("malformed report")

// Target holds a single int32 at a fixed address and reports it until
// stopped. Anything that knows the address may overwrite the value.
type Target struct {
	Interval time.Duration
	Logger   *zap.Logger

	// value is only ever read as a whole aligned word so that a concurrent
	// write from another process shows up as either the old or new value.
	value int32
}

// NewTarget returns a Target holding value. Targets must not be copied once
// their address has been reported.
func NewTarget(value int32) *Target {
	return &Target{
		Interval: DefaultInterval,
		Logger:   zap.NewNop(),
		value:    value,
	}
}

// NewRandomTarget draws the starting value from [0, ValueRange) using g.
func NewRandomTarget(g *Generator) *Target {
	return NewTarget(int32(g.Random(ValueRange)))
}

// Addr returns the address of the value.
func (t *Target) Addr() uintptr {
	return uintptr(unsafe.Pointer(&t.value))
}

// Value returns the current value.
func (t *Target) Value() int32 {
	return atomic.LoadInt32(&t.value)
}

// Run writes a report to w every interval until ctx is done. It only returns
// early if writing fails.
func (t *Target) Run(ctx context.Context, w io.Writer) error {
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	logger := t.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	logger.Info("target running",
		zap.Int32("value", t.Value()),
		zap.String("addr", fmt.Sprintf("%p", &t.value)),
		zap.Duration("interval", interval),
	)

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		v := t.Value()
		if _, err := fmt.Fprintf(w, "%d (%p)\n", v, &t.value); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Debug("reported", zap.Int32("value", v))

		timer.Reset(interval)
		select {
		case <-ctx.Done():
			logger.Info("target stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Report is one line of Target output.
type Report struct {
	Value int32
	Addr  uintptr
}

// ParseReport parses a line written by Target.Run, e.g. "42 (0xc000012345)".
func ParseReport(line string) (Report, error) {
	line = strings.TrimSpace(line)

	valueStr, rest, ok := strings.Cut(line, " ")
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrMalformedReport, line)
	}

	addrStr, ok := strings.CutPrefix(rest, "(")
	if ok {
		addrStr, ok = strings.CutSuffix(addrStr, ")")
	}
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", ErrMalformedReport, line)
	}

	value, err := strconv.ParseInt(valueStr, 10, 32)
	if err != nil {
		return Report{}, fmt.Errorf("%w: value: %w", ErrMalformedReport, err)
	}

	// Bare hex is accepted too.
	addrStr = strings.TrimPrefix(strings.ToLower(addrStr), "0x")
	addr, err := strconv.ParseUint(addrStr, 16, 64)
	if err != nil {
		return Report{}, fmt.Errorf("%w: address: %w", ErrMalformedReport, err)
	}

	return Report{Value: int32(value), Addr: uintptr(addr)}, nil
}
