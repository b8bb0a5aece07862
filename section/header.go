package section

import (
	"time"

	"github.com/0xC0000054/dbpf/endian"
	"github.com/0xC0000054/dbpf/errs"
)

// Header is the fixed 96-byte structure at the start of every DBPF file.
type Header struct {
	MajorVersion      uint32
	MinorVersion      uint32
	DateCreated       uint32
	DateModified      uint32
	IndexMajorVersion uint32
	Entries           uint32
	IndexLocation     uint32
	IndexSize         uint32
}

// NewHeader returns a Header for a freshly created archive: current
// timestamp, supported versions, and an empty index.
func NewHeader() Header {
	now := uint32(time.Now().Unix())

	return Header{
		MajorVersion:      SupportedMajorVersion,
		MinorVersion:      SupportedMinorVersion,
		DateCreated:       now,
		DateModified:      now,
		IndexMajorVersion: SupportedIndexMajorVersion,
		IndexLocation:     HeaderSize,
	}
}

// Parse decodes a Header from exactly HeaderSize bytes and validates it.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	if data[0] != signature[0] || data[1] != signature[1] || data[2] != signature[2] || data[3] != signature[3] {
		return errs.ErrInvalidHeader
	}

	h.MajorVersion = engine.Uint32(data[4:8])
	h.MinorVersion = engine.Uint32(data[8:12])
	h.DateCreated = engine.Uint32(data[24:28])
	h.DateModified = engine.Uint32(data[28:32])
	h.IndexMajorVersion = engine.Uint32(data[32:36])
	h.Entries = engine.Uint32(data[36:40])
	h.IndexLocation = engine.Uint32(data[40:44])
	h.IndexSize = engine.Uint32(data[44:48])

	return h.Validate()
}

// Validate checks the fields a reader must agree on before trusting the
// rest of the file: format version, index version, and index size
// consistency.
func (h *Header) Validate() error {
	if h.MajorVersion != SupportedMajorVersion || h.MinorVersion != SupportedMinorVersion {
		return errs.ErrInvalidHeader
	}
	if h.IndexMajorVersion != SupportedIndexMajorVersion {
		return errs.ErrInvalidHeader
	}
	if h.IndexSize != h.Entries*IndexEntrySize {
		return errs.ErrInvalidHeader
	}

	return nil
}

// Bytes serializes the Header into a fresh HeaderSize-byte slice, with all
// reserved fields zeroed.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := endian.GetLittleEndianEngine()

	copy(b[0:4], signature[:])
	engine.PutUint32(b[4:8], h.MajorVersion)
	engine.PutUint32(b[8:12], h.MinorVersion)
	engine.PutUint32(b[24:28], h.DateCreated)
	engine.PutUint32(b[28:32], h.DateModified)
	engine.PutUint32(b[32:36], h.IndexMajorVersion)
	engine.PutUint32(b[36:40], h.Entries)
	engine.PutUint32(b[40:44], h.IndexLocation)
	engine.PutUint32(b[44:48], h.IndexSize)

	return b
}

// ParseHeader parses a Header from a byte slice of at least HeaderSize.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
