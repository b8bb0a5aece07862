package section

import (
	"github.com/0xC0000054/dbpf/endian"
	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

// CompressionDirectoryEntry records that a record is QFS-compressed on
// disk, and how large it is once decompressed.
type CompressionDirectoryEntry struct {
	TGI              tgi.TGI
	UncompressedSize uint32
}

// Parse decodes a single CompressionDirectoryEntry from exactly
// CompressionDirectoryEntrySize bytes.
func (e *CompressionDirectoryEntry) Parse(data []byte) error {
	if len(data) != CompressionDirectoryEntrySize {
		return errs.ErrInvalidIndexEntrySize
	}

	engine := endian.GetLittleEndianEngine()

	e.TGI = tgi.New(
		engine.Uint32(data[0:4]),
		engine.Uint32(data[4:8]),
		engine.Uint32(data[8:12]),
	)
	e.UncompressedSize = engine.Uint32(data[12:16])

	return nil
}

// Bytes serializes the entry into a fresh CompressionDirectoryEntrySize-byte
// slice.
func (e *CompressionDirectoryEntry) Bytes() []byte {
	b := make([]byte, CompressionDirectoryEntrySize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], e.TGI.Type)
	engine.PutUint32(b[4:8], e.TGI.Group)
	engine.PutUint32(b[8:12], e.TGI.Instance)
	engine.PutUint32(b[12:16], e.UncompressedSize)

	return b
}

// ParseCompressionDirectory decodes a flat byte slice into its constituent
// CompressionDirectoryEntry records; len(data) must be a multiple of
// CompressionDirectoryEntrySize.
func ParseCompressionDirectory(data []byte) ([]CompressionDirectoryEntry, error) {
	if len(data)%CompressionDirectoryEntrySize != 0 {
		return nil, errs.ErrInvalidIndexEntrySize
	}

	count := len(data) / CompressionDirectoryEntrySize
	entries := make([]CompressionDirectoryEntry, count)

	for i := range entries {
		start := i * CompressionDirectoryEntrySize
		if err := entries[i].Parse(data[start : start+CompressionDirectoryEntrySize]); err != nil {
			return nil, err
		}
	}

	return entries, nil
}
