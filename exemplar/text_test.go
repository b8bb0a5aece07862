package exemplar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xC0000054/dbpf/errs"
)

func sampleTextExemplar() []byte {
	text := "ParentCohort=Key:{0x0000000B,0x0000000C,0x0000000A}\n" +
		"PropCount=0x00000003\n" +
		"0x00000010:{\"SomeID\"}=Uint32:0x00000002:{0xDEADBEEF,0x00000001}\n" +
		"0x00000020:{\"Name\"}=String:0x00000003:{\"abc\"}\n" +
		"0x00000030:{\"Flag\"}=Bool:0x00000000:{0x01}\n"

	return append([]byte(textExemplarSignature+"\n"), text...)
}

func TestParseTextProducesEquivalentBinary(t *testing.T) {
	parsed, err := ParseText(sampleTextExemplar())
	require.NoError(t, err)

	assert.False(t, parsed.IsCohort)
	assert.Equal(t, uint32(0xA), parsed.ParentCohort.Type)
	assert.Equal(t, uint32(0xB), parsed.ParentCohort.Group)
	assert.Equal(t, uint32(0xC), parsed.ParentCohort.Instance)

	u32, err := parsed.GetUInt32(0x10)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0xDEADBEEF, 0x1}, u32)

	s, err := parsed.GetString(0x20)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	b, err := parsed.GetBool(0x30)
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, b)
}

func TestParseTextMissingNewlineAfterSignature(t *testing.T) {
	data := append([]byte(textExemplarSignature), "ParentCohort=Key:{0,0,0}"...)
	_, err := ParseText(data)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestParseTextUnknownSignature(t *testing.T) {
	data := append([]byte("XXXXXXXX\n"), "ParentCohort=Key:{0,0,0}\nPropCount=0\n"...)
	_, err := ParseText(data)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestParseDispatchesTextForm(t *testing.T) {
	parsed, err := Parse(sampleTextExemplar())
	require.NoError(t, err)
	assert.Equal(t, uint32(0xA), parsed.ParentCohort.Type)
}

func TestParseTextThenEncodeMatchesDirectBinary(t *testing.T) {
	parsedFromText, err := ParseText(sampleTextExemplar())
	require.NoError(t, err)

	direct := New(false)
	direct.ParentCohort = parsedFromText.ParentCohort
	direct.Set(NewUInt32Property(0x10, 0xDEADBEEF, 0x1))
	direct.Set(NewStringProperty(0x20, "abc"))
	direct.Set(NewBoolProperty(0x30, true))

	assert.Equal(t, direct.Encode(), parsedFromText.Encode())
}
