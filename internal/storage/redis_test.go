package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/p-n-ai/dsa-sheet/internal/platform/cache"
	"github.com/p-n-ai/dsa-sheet/internal/storage"
)

func TestRedis(t *testing.T) {
	url := os.Getenv("DSA_TEST_REDIS_URL")
	if url == "" {
		t.Skip("DSA_TEST_REDIS_URL not set")
	}

	c, err := cache.Connect(context.Background(), cache.Options{URL: url, Prefix: "dsa-sheet-test:" + t.Name() + ":"})
	require.NoError(t, err)
	r := storage.NewRedis(c)
	t.Cleanup(func() {
		_ = c.Delete(context.Background(), storage.KeyProgress, storage.KeyUser, storage.KeyTheme)
		_ = r.Close()
	})

	exerciseBackend(t, r)
}
