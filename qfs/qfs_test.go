package qfs

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
)

func repeatPattern(pattern string, n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		out = append(out, pattern...)
	}

	return out[:n]
}

func randomBytes(t *testing.T, n int, seed int64) []byte {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	_, err := r.Read(b)
	require.NoError(t, err)

	return b
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"repeating small", repeatPattern("ABAB", 64)},
		{"repeating large", repeatPattern("the quick brown fox ", 50_000)},
		{"random 1KB", randomBytes(t, 1024, 1)},
		{"random 64KB", randomBytes(t, 64*1024, 2)},
		{"mixed literal and match", append(append(randomBytes(t, 40, 3), repeatPattern("xyz", 200)...), randomBytes(t, 40, 4)...)},
		{"minimum compressible size", repeatPattern("aaaaaaaaaa", minInputSize)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			compressed, ok := Compress(tc.data, false)
			if !ok {
				t.Skip("input did not compress smaller, nothing to round-trip")
			}

			decompressed, err := Decompress(compressed)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(tc.data, decompressed))
		})
	}
}

func TestCompressRoundTripWithLengthPrefix(t *testing.T) {
	data := repeatPattern("compress me please, over and over, ", 20_000)

	compressed, ok := Compress(data, true)
	require.True(t, ok)

	decompressed, err := Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, data, decompressed)
}

func TestCompressBelowMinimumSize(t *testing.T) {
	data := make([]byte, minInputSize-1)
	_, ok := Compress(data, false)
	assert.False(t, ok)
}

func TestCompressAboveMaximumSize(t *testing.T) {
	data := make([]byte, maxInputSize+1)
	_, ok := Compress(data, false)
	assert.False(t, ok)
}

func TestCompressIncompressibleInputGivesUp(t *testing.T) {
	data := randomBytes(t, minInputSize, 42)
	_, ok := Compress(data, false)
	assert.False(t, ok)
}

func TestDecompressRejectsOffsetPastCursor(t *testing.T) {
	// signature, flags=0x10, uncompressed size=4, then a 2-byte op whose
	// copy_offset (1) exceeds the current (zero) output cursor.
	blob := []byte{0x10, 0xFB, 0x00, 0x00, 0x04, 0x00, 0x00}
	_, err := Decompress(blob)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestDecompressTruncatedHeader(t *testing.T) {
	_, err := Decompress([]byte{0x10})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestDecompressUnrecognizedSignature(t *testing.T) {
	_, err := Decompress([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	assert.ErrorIs(t, err, errs.ErrUnsupportedCompressionFormat)
}

func TestHasSignatureAcceptsAllObservedFlagVariants(t *testing.T) {
	for _, flags := range []byte{0x10, 0x11, 0x50, 0x90, 0x91, 0xD0, 0xD1} {
		assert.True(t, hasSignature(flags, 0xFB), "flags=0x%02X", flags)
	}
}

func TestHasSignatureRejectsMissingBit4(t *testing.T) {
	for _, flags := range []byte{0x00, 0x01, 0x40, 0xEF} {
		assert.False(t, hasSignature(flags, 0xFB), "flags=0x%02X", flags)
	}
}

func TestDecodeLiteralRunThenEOFOpcode(t *testing.T) {
	// flags=0x10, uncompressed size=5: a 4-byte literal-run op (0xE0) carrying
	// "AABA", then an EOF op (0xFD) carrying the final literal byte "B".
	blob := []byte{
		0x10, 0xFB, 0x00, 0x00, 0x05,
		0xE0, 'A', 'A', 'B', 'A',
		0xFD, 'B',
	}

	decompressed, err := Decompress(blob)
	require.NoError(t, err)
	assert.Equal(t, []byte("AABAB"), decompressed)
}

func TestCompressionStatsRatio(t *testing.T) {
	data := repeatPattern("abcdefgh", 10_000)
	_, stats, ok := CompressStats(data, false)
	require.True(t, ok)
	assert.Less(t, stats.CompressionRatio(), 1.0)
	assert.Greater(t, stats.CompressionRatio(), 0.0)
}

func TestDecompressedSizeWithoutDecoding(t *testing.T) {
	data := repeatPattern("needs to be long enough to compress nicely ", 5_000)
	compressed, ok := Compress(data, false)
	require.True(t, ok)

	size, err := DecompressedSize(compressed)
	require.NoError(t, err)
	assert.Equal(t, len(data), size)
}

func TestIsCompressed(t *testing.T) {
	data := repeatPattern("0123456789", 5_000)
	compressed, ok := Compress(data, false)
	require.True(t, ok)

	assert.True(t, IsCompressed(compressed))
	assert.False(t, IsCompressed([]byte("plain text, not QFS at all")))
}

func BenchmarkCompress(b *testing.B) {
	data := repeatPattern("the quick brown fox jumps over the lazy dog ", 20_000)
	b.ResetTimer()
	for b.Loop() {
		Compress(data, false)
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := repeatPattern("the quick brown fox jumps over the lazy dog ", 20_000)
	compressed, ok := Compress(data, false)
	require.True(b, ok)

	b.ResetTimer()
	for b.Loop() {
		_, _ = Decompress(compressed)
	}
}
