package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_CoverRoundTrip(t *testing.T) {
	store := newTestStore(t)

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0, 1, 2, 3}
	require.NoError(t, store.SaveCover("a1", "cover.jpg", data))

	got, err := store.GetCover("a1", "cover.jpg")
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestStore_GetCover_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetCover("nope", "cover.jpg")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_SaveCover_RejectsEmpty(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.SaveCover("a1", "cover.jpg", nil))
}

func TestStore_SearchHistory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.RecordSearch("naruto"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.RecordSearch("one piece"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, store.RecordSearch("naruto"))

	records, err := store.RecentSearches(10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Most recently used first, with the repeat counted.
	assert.Equal(t, "naruto", records[0].Query)
	assert.Equal(t, 2, records[0].Count)
	assert.Equal(t, "one piece", records[1].Query)
}

func TestStore_RecentSearches_Limit(t *testing.T) {
	store := newTestStore(t)

	for _, q := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.RecordSearch(q))
	}

	records, err := store.RecentSearches(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
