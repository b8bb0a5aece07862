package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

func TestCompressionDirectoryEntryRoundTrip(t *testing.T) {
	entry := CompressionDirectoryEntry{
		TGI:              tgi.New(0x6534284A, 0x1, 0x2),
		UncompressedSize: 14,
	}

	data := entry.Bytes()
	require.Len(t, data, CompressionDirectoryEntrySize)

	var parsed CompressionDirectoryEntry
	require.NoError(t, parsed.Parse(data))
	assert.Equal(t, entry, parsed)
}

func TestParseCompressionDirectoryMultipleEntries(t *testing.T) {
	a := CompressionDirectoryEntry{TGI: tgi.New(1, 2, 3), UncompressedSize: 10}
	b := CompressionDirectoryEntry{TGI: tgi.New(4, 5, 6), UncompressedSize: 20}

	data := append(a.Bytes(), b.Bytes()...)

	entries, err := ParseCompressionDirectory(data)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0])
	assert.Equal(t, b, entries[1])
}

func TestParseCompressionDirectoryBadLength(t *testing.T) {
	_, err := ParseCompressionDirectory(make([]byte, CompressionDirectoryEntrySize+1))
	assert.ErrorIs(t, err, errs.ErrInvalidIndexEntrySize)
}

func TestParseCompressionDirectoryEmpty(t *testing.T) {
	entries, err := ParseCompressionDirectory(nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
