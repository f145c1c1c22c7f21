package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screener/pkg/contracts/domain"
)

func newSession(id string, lastAccess time.Time) *Session {
	return &Session{
		ID:         id,
		Filename:   id + ".xlsx",
		Dataset:    &domain.Dataset{},
		CreatedAt:  lastAccess,
		LastAccess: lastAccess,
	}
}

func TestDatasetStoreCreateGet(t *testing.T) {
	store := NewDatasetStore()

	require.NoError(t, store.Create(newSession("a", time.Now())))
	assert.Equal(t, 1, store.Count())

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "a.xlsx", got.Filename)

	err = store.Create(newSession("a", time.Now()))
	assert.ErrorIs(t, err, ErrDatasetExists)
}

func TestDatasetStoreGetMissing(t *testing.T) {
	store := NewDatasetStore()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
}

func TestDatasetStoreDelete(t *testing.T) {
	store := NewDatasetStore()
	require.NoError(t, store.Create(newSession("a", time.Now())))

	require.NoError(t, store.Delete("a"))
	assert.Equal(t, 0, store.Count())

	assert.ErrorIs(t, store.Delete("a"), ErrDatasetNotFound)
}

func TestDatasetStoreCleanupExpired(t *testing.T) {
	store := NewDatasetStore()
	require.NoError(t, store.Create(newSession("stale", time.Now().Add(-2*time.Hour))))
	require.NoError(t, store.Create(newSession("fresh", time.Now())))

	deleted := store.CleanupExpired(time.Hour)

	assert.Equal(t, 1, deleted)
	assert.Equal(t, 1, store.Count())

	_, err := store.Get("stale")
	assert.ErrorIs(t, err, ErrDatasetNotFound)
	_, err = store.Get("fresh")
	assert.NoError(t, err)
}

func TestDatasetStoreGetRefreshesLastAccess(t *testing.T) {
	store := NewDatasetStore()
	require.NoError(t, store.Create(newSession("a", time.Now().Add(-2*time.Hour))))

	// A read keeps the session alive past its original expiry.
	_, err := store.Get("a")
	require.NoError(t, err)

	assert.Equal(t, 0, store.CleanupExpired(time.Hour))
}
