package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

func TestIndexEntryParseRoundTrip(t *testing.T) {
	entry := IndexEntry{
		TGI:      tgi.New(0x6534284A, 0x1, 0x2),
		Location: 96,
		FileSize: 14,
	}

	data := entry.Bytes()
	require.Len(t, data, IndexEntrySize)

	parsed, err := ParseIndexEntry(data)
	require.NoError(t, err)

	assert.Equal(t, entry.TGI, parsed.TGI)
	assert.Equal(t, entry.Location, parsed.Location)
	assert.Equal(t, entry.FileSize, parsed.FileSize)
	assert.Equal(t, StateNormal, parsed.State)
}

func TestIndexEntryParseWrongSize(t *testing.T) {
	_, err := ParseIndexEntry(make([]byte, IndexEntrySize+1))
	assert.ErrorIs(t, err, errs.ErrInvalidIndexEntrySize)
}

func TestIndexEntryStateNotSerialized(t *testing.T) {
	entry := IndexEntry{TGI: tgi.New(1, 2, 3), State: StateDeleted}
	parsed, err := ParseIndexEntry(entry.Bytes())
	require.NoError(t, err)

	assert.Equal(t, StateNormal, parsed.State)
}
