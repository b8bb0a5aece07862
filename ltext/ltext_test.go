package ltext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
)

func TestEncodeHiProducesDocumentedBytes(t *testing.T) {
	data, err := New("Hi").Encode()
	require.NoError(t, err)

	expected := []byte{0x02, 0x00, 0x00, 0x10, 0x48, 0x00, 0x69, 0x00}
	assert.Equal(t, expected, data)
}

func TestUTF16RoundTrip(t *testing.T) {
	cases := []string{"", "Hi", "Hello, world!", "日本語", "emoji: \U0001F600"}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			data, err := New(s).Encode()
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)
			assert.Equal(t, s, parsed.Value)
		})
	}
}

func TestParseASCIIEncoding(t *testing.T) {
	text := "plain ascii"
	header := []byte{byte(len(text)), 0x00, 0x00, byte(EncodingASCII)}
	data := append(header, text...)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, text, parsed.Value)
}

func TestParseUTF8Encoding(t *testing.T) {
	text := "utf8 text"
	header := []byte{byte(len(text)), 0x00, 0x00, byte(EncodingUTF8)}
	data := append(header, text...)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, text, parsed.Value)
}

func TestParseUnknownEncoding(t *testing.T) {
	data := []byte{0x00, 0x00, 0x00, 0x01}
	_, err := Parse(data)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestParseTruncatedHeader(t *testing.T) {
	_, err := Parse([]byte{0x01, 0x02})
	assert.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestEncodeRejectsOverlongString(t *testing.T) {
	_, err := New(strings.Repeat("a", maxLength+1)).Encode()
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestEncodeAcceptsMaxLength(t *testing.T) {
	_, err := New(strings.Repeat("a", maxLength)).Encode()
	assert.NoError(t, err)
}
