package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPersistAndRead(t *testing.T) {
	store := NewMemory()

	user := &Profile{ID: 7, Email: "ada@example.com", FullName: "Ada Lovelace"}
	require.NoError(t, store.Persist("token-123", user))

	assert.Equal(t, "token-123", store.CurrentToken())

	got := store.CurrentUser()
	require.NotNil(t, got)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "ada@example.com", got.Email)
	assert.Equal(t, "Ada Lovelace", got.FullName)
}

func TestMemoryEmptyTokenLeavesSlotUntouched(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Persist("token-123", nil))

	require.NoError(t, store.Persist("", &Profile{ID: 1, Email: "a@b.c"}))

	assert.Equal(t, "token-123", store.CurrentToken())
	assert.NotNil(t, store.CurrentUser())
}

func TestMemoryClear(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Persist("token-123", &Profile{ID: 1, Email: "a@b.c"}))

	require.NoError(t, store.Clear())

	assert.Empty(t, store.CurrentToken())
	assert.Nil(t, store.CurrentUser())

	// clearing an empty store is fine
	require.NoError(t, store.Clear())
}

func TestMemoryCorruptUserReadsAsNil(t *testing.T) {
	store := NewMemory()
	store.SeedRawUser([]byte("{not valid json"))

	assert.Nil(t, store.CurrentUser())
}

func TestBadgerPersistAndRead(t *testing.T) {
	store, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	user := &Profile{ID: 42, Email: "grace@example.com"}
	require.NoError(t, store.Persist("badger-token", user))

	assert.Equal(t, "badger-token", store.CurrentToken())

	got := store.CurrentUser()
	require.NotNil(t, got)
	assert.Equal(t, int64(42), got.ID)
	assert.Equal(t, "grace@example.com", got.Email)
}

func TestBadgerMissingValuesReadAsEmpty(t *testing.T) {
	store, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	assert.Empty(t, store.CurrentToken())
	assert.Nil(t, store.CurrentUser())
}

func TestBadgerClear(t *testing.T) {
	store, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Persist("badger-token", &Profile{ID: 1, Email: "a@b.c"}))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.CurrentToken())
	assert.Nil(t, store.CurrentUser())
}

func TestBadgerSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, store.Persist("durable-token", &Profile{ID: 9, Email: "d@e.f"}))
	require.NoError(t, store.Close())

	reopened, err := OpenBadger(dir)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, "durable-token", reopened.CurrentToken())
	require.NotNil(t, reopened.CurrentUser())
	assert.Equal(t, int64(9), reopened.CurrentUser().ID)
}
