package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amigowallet/pkg/platform/sentinel"
)

func TestSaveFindDelete(t *testing.T) {
	ctx := context.Background()
	store := New(time.Minute, DefaultCleanupInterval)

	require.NoError(t, store.Save(ctx, "Asha@Example.com", "123456", 0))

	code, err := store.Find(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	require.NoError(t, store.Delete(ctx, "asha@example.com"))
	_, err = store.Find(ctx, "asha@example.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestSaveOverwritesPendingCode(t *testing.T) {
	ctx := context.Background()
	store := New(time.Minute, DefaultCleanupInterval)

	require.NoError(t, store.Save(ctx, "a@example.com", "111111", time.Minute))
	require.NoError(t, store.Save(ctx, "a@example.com", "222222", time.Minute))

	code, err := store.Find(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestExpiredCodeIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := New(time.Minute, DefaultCleanupInterval)

	require.NoError(t, store.Save(ctx, "a@example.com", "111111", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := store.Find(ctx, "a@example.com")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	store := New(time.Minute, DefaultCleanupInterval)
	assert.NoError(t, store.Delete(context.Background(), "nobody@example.com"))
}

func TestRecordFailureCountsUntilSave(t *testing.T) {
	ctx := context.Background()
	store := New(time.Minute, DefaultCleanupInterval)
	require.NoError(t, store.Save(ctx, "a@example.com", "111111", time.Minute))

	for want := 1; want <= 3; want++ {
		n, err := store.RecordFailure(ctx, "A@example.com")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	require.NoError(t, store.Save(ctx, "a@example.com", "222222", time.Minute))
	n, err := store.RecordFailure(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a new code starts a fresh count")

	require.NoError(t, store.Delete(ctx, "a@example.com"))
	n, err = store.RecordFailure(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
