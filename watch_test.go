package cerebras_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerebras "github.com/waferscale/cerebras-go"
)

func TestWatchConfig_EmitsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cerebras.toml")
	require.NoError(t, os.WriteFile(path, []byte(`api_key = "key-1"`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ch := cerebras.WatchConfig(ctx, path)

	// Give the watcher a moment to establish before rotating the key.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`api_key = "key-2"`), 0o600))

	select {
	case cfg, ok := <-ch:
		require.True(t, ok)
		assert.Equal(t, "key-2", cfg.APIKey)
	case <-ctx.Done():
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatchConfig_ClosesOnCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cerebras.toml")
	require.NoError(t, os.WriteFile(path, []byte(`api_key = "key-1"`), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	ch := cerebras.WatchConfig(ctx, path)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should close after cancellation")
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancellation")
	}
}
