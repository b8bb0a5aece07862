package tgi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuildsFields(t *testing.T) {
	tr := New(1, 2, 3)
	assert.Equal(t, uint32(1), tr.Type)
	assert.Equal(t, uint32(2), tr.Group)
	assert.Equal(t, uint32(3), tr.Instance)
}

func TestEqualityIsStructural(t *testing.T) {
	assert.Equal(t, New(1, 2, 3), New(1, 2, 3))
	assert.NotEqual(t, New(1, 2, 3), New(1, 2, 4))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Empty.IsEmpty())
	assert.True(t, New(0, 0, 0).IsEmpty())
	assert.False(t, New(1, 0, 0).IsEmpty())
}

func TestStringFormatsHex(t *testing.T) {
	s := New(0xDEADBEEF, 0x12345678, 0x1).String()
	assert.Equal(t, "TGI(0xDEADBEEF, 0x12345678, 0x00000001)", s)
}

func TestUsableAsMapKey(t *testing.T) {
	m := map[TGI]string{
		New(1, 1, 1): "a",
		New(2, 2, 2): "b",
	}

	assert.Equal(t, "a", m[New(1, 1, 1)])
}
