package tests

import (
	"context"
	"testing"

	"github.com/aretw0/eventgrid/pkg/domain"
	"github.com/aretw0/eventgrid/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DocumentCacheContractTest is a reusable test suite that verifies if an adapter complies with ports.DocumentCache.
func DocumentCacheContractTest(t *testing.T, cache ports.DocumentCache) {
	t.Helper()
	ctx := context.Background()
	key := ports.Key([]byte("<events/>"), "contract", t.Name())

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put_Get", func(t *testing.T) {
		doc := []byte("File type = \"ooTextFile\"\n")
		require.NoError(t, cache.Put(ctx, key, doc))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("Put_Replaces", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, key, []byte("v2")))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key))
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)

		require.NoError(t, cache.Delete(ctx, key), "deleting a missing key is not an error")
	})
}
