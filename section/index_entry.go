package section

import (
	"github.com/0xC0000054/dbpf/endian"
	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/tgi"
)

// State records the in-memory lifecycle of an index entry between opens
// and saves. It has no on-disk representation.
type State uint8

const (
	// StateNormal entries were present when the archive was opened and are
	// unchanged.
	StateNormal State = iota
	// StateNew entries were added in memory and have never been saved.
	StateNew
	// StateModified entries replace a previously-saved payload.
	StateModified
	// StateDeleted entries are removed on the next save but still occupy a
	// slot until then.
	StateDeleted
)

// IndexEntry describes one record's identity and location within a DBPF
// file. Location and FileSize are meaningless for StateNew entries until
// the next save assigns them.
type IndexEntry struct {
	TGI      tgi.TGI
	Location uint32
	FileSize uint32
	State    State
}

// Parse decodes a single IndexEntry from exactly IndexEntrySize bytes.
// State is always set to StateNormal; callers loading from disk have no
// other lifecycle to report.
func (e *IndexEntry) Parse(data []byte) error {
	if len(data) != IndexEntrySize {
		return errs.ErrInvalidIndexEntrySize
	}

	engine := endian.GetLittleEndianEngine()

	e.TGI = tgi.New(
		engine.Uint32(data[0:4]),
		engine.Uint32(data[4:8]),
		engine.Uint32(data[8:12]),
	)
	e.Location = engine.Uint32(data[12:16])
	e.FileSize = engine.Uint32(data[16:20])
	e.State = StateNormal

	return nil
}

// Bytes serializes the entry's on-disk fields (TGI, Location, FileSize).
// State is in-memory only and is not part of the wire format.
func (e *IndexEntry) Bytes() []byte {
	b := make([]byte, IndexEntrySize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[0:4], e.TGI.Type)
	engine.PutUint32(b[4:8], e.TGI.Group)
	engine.PutUint32(b[8:12], e.TGI.Instance)
	engine.PutUint32(b[12:16], e.Location)
	engine.PutUint32(b[16:20], e.FileSize)

	return b
}

// ParseIndexEntry decodes a single IndexEntry from a byte slice of exactly
// IndexEntrySize.
func ParseIndexEntry(data []byte) (IndexEntry, error) {
	e := IndexEntry{}
	if err := e.Parse(data); err != nil {
		return IndexEntry{}, err
	}

	return e, nil
}
