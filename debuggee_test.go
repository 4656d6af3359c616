package injectee

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDebuggee_NilConfig(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := RunDebuggee(ctx, nil, &buf, nil)
	assert.ErrorIs(t, err, context.Canceled)

	r, err := ParseReport(buf.String())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Value, int32(0))
	assert.Less(t, r.Value, int32(ValueRange))
}

func TestRunDebuggee_Seed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Seed = 42

	var buf bytes.Buffer
	RunDebuggee(ctx, cfg, &buf, nil)

	r, err := ParseReport(buf.String())
	require.NoError(t, err)
	assert.Equal(t, int32(NewGenerator(42).Random(ValueRange)), r.Value)
}
