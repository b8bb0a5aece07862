package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

func TestCreateIsEmpty(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	assert.Empty(t, a.Index())
	assert.False(t, a.IsDirty())
}

func TestAddThenGetEntryRoundTrips(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	id := tgi.New(1, 2, 3)
	a.Add(id, []byte("payload"), false)

	assert.True(t, a.IsDirty())

	entry, err := a.GetEntry(id)
	require.NoError(t, err)

	data, err := entry.GetUncompressedData()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestGetEntryMissingReturnsNotFound(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	_, err = a.GetEntry(tgi.New(9, 9, 9))
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRemoveHidesEntry(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	id := tgi.New(1, 2, 3)
	a.Add(id, []byte("payload"), false)
	a.Remove(id)

	_, err = a.GetEntry(id)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Empty(t, a.Index())
}

func TestRemoveThenAddAgainIsVisible(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	id := tgi.New(1, 2, 3)
	a.Add(id, []byte("first"), false)
	a.Remove(id)
	a.Add(id, []byte("second"), false)

	entry, err := a.GetEntry(id)
	require.NoError(t, err)

	data, err := entry.GetUncompressedData()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestUpdateReplacesPayload(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	id := tgi.New(1, 2, 3)
	a.Add(id, []byte("first"), false)

	require.NoError(t, a.Update(id, []byte("second"), false))

	entry, err := a.GetEntry(id)
	require.NoError(t, err)

	data, err := entry.GetUncompressedData()
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	err = a.Update(tgi.New(9, 9, 9), []byte("x"), false)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestEntriesByType(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	a.Add(tgi.New(0xAAAA, 1, 1), []byte("a"), false)
	a.Add(tgi.New(0xAAAA, 1, 2), []byte("b"), false)
	a.Add(tgi.New(0xBBBB, 1, 1), []byte("c"), false)

	matched := a.Entries().ByType(0xAAAA)
	assert.Len(t, matched, 2)

	unmatched := a.Entries().ByType(0xCCCC)
	assert.Empty(t, unmatched)
}

func TestStatsReflectsEntryCount(t *testing.T) {
	a, err := Create()
	require.NoError(t, err)

	a.Add(tgi.New(1, 1, 1), []byte("a"), false)
	a.Add(tgi.New(1, 1, 2), []byte("b"), false)
	a.Remove(tgi.New(1, 1, 2))

	stats := a.Stats()
	assert.Equal(t, 1, stats.EntryCount)
	assert.True(t, stats.Dirty)
}
