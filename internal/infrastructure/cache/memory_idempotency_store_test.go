package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	t.Run("claims a new key", func(t *testing.T) {
		claimed, err := store.MarkProcessed(ctx, "key-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
	})

	t.Run("refuses a claimed key", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "key-2", time.Hour)
		require.NoError(t, err)

		claimed, err := store.MarkProcessed(ctx, "key-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("reclaims after expiry", func(t *testing.T) {
		_, err := store.MarkProcessed(ctx, "key-3", 10*time.Millisecond)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		claimed, err := store.MarkProcessed(ctx, "key-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, claimed)
	})
}

func TestMemoryIdempotencyStore_Release(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "key", time.Hour)
	require.NoError(t, err)

	processed, err := store.IsProcessed(ctx, "key")
	require.NoError(t, err)
	assert.True(t, processed)

	require.NoError(t, store.Release(ctx, "key"))

	processed, err = store.IsProcessed(ctx, "key")
	require.NoError(t, err)
	assert.False(t, processed)

	claimed, err := store.MarkProcessed(ctx, "key", time.Hour)
	require.NoError(t, err)
	assert.True(t, claimed)

	// releasing an unknown key is a no-op
	assert.NoError(t, store.Release(ctx, "missing"))
}

func TestMemoryIdempotencyStore_Cleanup(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	defer store.Close()

	ctx := context.Background()

	store.MarkProcessed(ctx, "short-1", 10*time.Millisecond)
	store.MarkProcessed(ctx, "short-2", 10*time.Millisecond)
	store.MarkProcessed(ctx, "long", time.Hour)
	assert.Equal(t, 3, store.Size())

	time.Sleep(20 * time.Millisecond)
	store.cleanup()

	assert.Equal(t, 1, store.Size())
	processed, err := store.IsProcessed(ctx, "long")
	require.NoError(t, err)
	assert.True(t, processed)
}

func TestMemoryIdempotencyStore_SweeperRuns(t *testing.T) {
	store := newMemoryIdempotencyStore(5 * time.Millisecond)
	defer store.Close()

	store.MarkProcessed(context.Background(), "short", time.Millisecond)

	assert.Eventually(t, func() bool { return store.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	defer store.Close()

	const workers = 100
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(context.Background(), "same-key", time.Hour)
			if err == nil && ok {
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, claimed)
}

func TestMemoryIdempotencyStore_Close(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
