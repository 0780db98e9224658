package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewWithWriterTeesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("production", &buf)
	require.NoError(t, err)

	log.Info("cart persisted", zap.Int("lines", 2))
	_ = log.Sync()

	assert.Contains(t, buf.String(), `"msg":"cart persisted"`)
	assert.Contains(t, buf.String(), `"lines":2`)
}

func TestNewWithFileAppendsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "storefront.json")
	log, closer, err := NewWithFile("production", path)
	require.NoError(t, err)

	log.Warn("wishlist fallback", zap.String("user_id", "7"))
	_ = log.Sync()
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"wishlist fallback"`)
	assert.Contains(t, string(data), `"level":"warn"`)
}

func TestNewWithFileWithoutPath(t *testing.T) {
	log, closer, err := NewWithFile("development", "")
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.NoError(t, closer.Close())
}

func TestFromContextAddsRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithRequestID(context.Background(), "req-1")

	FromContext(ctx, zap.New(core)).Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.NotNil(t, OrNop(nil))
}
