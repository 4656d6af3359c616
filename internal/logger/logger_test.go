package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFromContext(t *testing.T) {
	lg := zap.NewExample()
	ctx := WithLogger(context.Background(), lg)
	assert.Same(t, lg, FromContext(ctx))
}

func TestFromContext_Missing(t *testing.T) {
	lg := FromContext(context.Background())
	require.NotNil(t, lg)
	// A no-op logger must be safe to use.
	lg.Info("dropped")
}

func TestSetDebug(t *testing.T) {
	t.Cleanup(func() { loggingLevel.SetLevel(zap.InfoLevel) })

	lg, err := New()
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zap.DebugLevel))

	SetDebug()
	assert.True(t, lg.Core().Enabled(zap.DebugLevel))
}
