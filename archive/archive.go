package archive

import (
	"fmt"
	"os"
	"sort"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/internal/hash"
	"github.com/0xC0000054/dbpf/section"
	"github.com/0xC0000054/dbpf/tgi"
)

// record pairs an on-disk index entry with its in-memory payload. payload
// is nil for a Normal entry that has never been accessed through GetEntry.
type record struct {
	entry   section.IndexEntry
	payload *Entry
}

// Archive is a mutable, single-owner handle on a DBPF file. It is not safe
// for concurrent use.
type Archive struct {
	path string
	file *os.File

	header         section.Header
	records        []*record
	compressionDir []section.CompressionDirectoryEntry

	byKey map[uint64][]int // hash.TGIKey(t) -> indices into records

	dirty bool
	cfg   *config
}

// Create returns a new, empty in-memory archive. It has no backing file
// until Save or SaveAs is called.
func Create(opts ...Option) (*Archive, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Archive{
		header: section.NewHeader(),
		byKey:  make(map[uint64][]int),
		cfg:    cfg,
	}, nil
}

// Open reads and validates an existing DBPF file at path, parsing its
// header, index, and compression directory.
func Open(path string, opts ...Option) (*Archive, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	a, err := openFile(path, f, cfg)
	if err != nil {
		f.Close()

		return nil, err
	}

	return a, nil
}

func openFile(path string, f *os.File, cfg *config) (*Archive, error) {
	headerBytes := make([]byte, section.HeaderSize)
	if _, err := f.ReadAt(headerBytes, 0); err != nil {
		return nil, fmt.Errorf("archive: reading header: %w", err)
	}

	var h section.Header
	if err := h.Parse(headerBytes); err != nil {
		return nil, err
	}

	indexBytes := make([]byte, int(h.IndexSize))
	if h.IndexSize > 0 {
		if _, err := f.ReadAt(indexBytes, int64(h.IndexLocation)); err != nil {
			return nil, fmt.Errorf("archive: reading index: %w", err)
		}
	}

	a := &Archive{
		path:   path,
		file:   f,
		header: h,
		byKey:  make(map[uint64][]int),
		cfg:    cfg,
	}

	var compressionDirLocation, compressionDirSize uint32

	for i := 0; i < int(h.Entries); i++ {
		start := i * section.IndexEntrySize
		e, err := section.ParseIndexEntry(indexBytes[start : start+section.IndexEntrySize])
		if err != nil {
			return nil, err
		}

		if e.TGI == section.CompressionDirectoryTGI {
			compressionDirLocation, compressionDirSize = e.Location, e.FileSize

			continue
		}

		a.appendRecord(&record{entry: e})
	}

	if compressionDirSize > 0 {
		dirBytes := make([]byte, compressionDirSize)
		if _, err := f.ReadAt(dirBytes, int64(compressionDirLocation)); err != nil {
			return nil, fmt.Errorf("archive: reading compression directory: %w", err)
		}

		dir, err := section.ParseCompressionDirectory(dirBytes)
		if err != nil {
			return nil, err
		}

		a.compressionDir = dir
	}

	a.sortByLocation()

	if cfg.preloadPayloads {
		for _, r := range a.records {
			e, err := a.payloadFor(r)
			if err != nil {
				return nil, err
			}
			if err := e.ensureLoaded(); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

func (a *Archive) appendRecord(r *record) {
	key := hash.TGIKey(r.entry.TGI.Type, r.entry.TGI.Group, r.entry.TGI.Instance)
	a.byKey[key] = append(a.byKey[key], len(a.records))
	a.records = append(a.records, r)
}

func (a *Archive) sortByLocation() {
	sort.SliceStable(a.records, func(i, j int) bool {
		return a.records[i].entry.Location < a.records[j].entry.Location
	})

	a.byKey = make(map[uint64][]int, len(a.records))
	for i, r := range a.records {
		key := hash.TGIKey(r.entry.TGI.Type, r.entry.TGI.Group, r.entry.TGI.Instance)
		a.byKey[key] = append(a.byKey[key], i)
	}
}

func (a *Archive) isCompressedInDirectory(t tgi.TGI) bool {
	for _, d := range a.compressionDir {
		if d.TGI == t {
			return true
		}
	}

	return false
}

// payloadFor returns r's Entry, constructing a lazy one from the backing
// file on first access.
func (a *Archive) payloadFor(r *record) (*Entry, error) {
	if r.payload != nil {
		return r.payload, nil
	}
	if r.entry.State == section.StateNew || r.entry.State == section.StateModified {
		return nil, fmt.Errorf("archive: entry %s: %w", r.entry.TGI, errs.ErrLogicError)
	}

	r.payload = newLazyEntry(
		r.entry.TGI,
		a.file,
		int64(r.entry.Location),
		int(r.entry.FileSize),
		a.isCompressedInDirectory(r.entry.TGI),
	)

	return r.payload, nil
}

// Add appends a new entry in state New with an in-memory payload. Duplicate
// TGIs are permitted.
func (a *Archive) Add(t tgi.TGI, data []byte, compress bool) {
	r := &record{
		entry:   section.IndexEntry{TGI: t, State: section.StateNew},
		payload: newLoadedEntry(t, data, false, compress),
	}

	a.appendRecord(r)
	a.dirty = true
}

// Update replaces the payload of the first non-deleted entry matching t,
// marking it Modified so Save re-encodes it. It fails with errs.ErrNotFound
// if no such entry exists; use Add to insert a new one.
func (a *Archive) Update(t tgi.TGI, data []byte, compress bool) error {
	key := hash.TGIKey(t.Type, t.Group, t.Instance)

	for _, idx := range a.byKey[key] {
		r := a.records[idx]
		if r.entry.TGI != t || r.entry.State == section.StateDeleted {
			continue
		}

		r.payload = newLoadedEntry(t, data, false, compress)
		if r.entry.State == section.StateNormal {
			r.entry.State = section.StateModified
		}
		a.dirty = true

		return nil
	}

	return fmt.Errorf("archive: %s: %w", t, errs.ErrNotFound)
}

// GetEntry returns the first non-deleted entry matching t, reading its
// payload from the backing file on first access. It fails with
// errs.ErrNotFound if no such entry exists.
func (a *Archive) GetEntry(t tgi.TGI) (*Entry, error) {
	key := hash.TGIKey(t.Type, t.Group, t.Instance)

	for _, idx := range a.byKey[key] {
		r := a.records[idx]
		if r.entry.TGI != t || r.entry.State == section.StateDeleted {
			continue
		}

		return a.payloadFor(r)
	}

	return nil, fmt.Errorf("archive: %s: %w", t, errs.ErrNotFound)
}

// Remove marks every entry matching t as Deleted; they are not physically
// discarded until the next Save.
func (a *Archive) Remove(t tgi.TGI) {
	key := hash.TGIKey(t.Type, t.Group, t.Instance)

	for _, idx := range a.byKey[key] {
		r := a.records[idx]
		if r.entry.TGI == t && r.entry.State != section.StateDeleted {
			r.entry.State = section.StateDeleted
			a.dirty = true
		}
	}
}

// Index returns a copy of the current index entries, excluding those
// marked Deleted.
func (a *Archive) Index() []section.IndexEntry {
	out := make([]section.IndexEntry, 0, len(a.records))
	for _, r := range a.records {
		if r.entry.State == section.StateDeleted {
			continue
		}

		out = append(out, r.entry)
	}

	return out
}

// CompressionDirectory returns a copy of the current compression directory
// as last read or written.
func (a *Archive) CompressionDirectory() []section.CompressionDirectoryEntry {
	out := make([]section.CompressionDirectoryEntry, len(a.compressionDir))
	copy(out, a.compressionDir)

	return out
}

// IsDirty reports whether the archive has pending changes since the last
// Open/Save.
func (a *Archive) IsDirty() bool {
	return a.dirty
}

// EntryView is a grouped, read-only view over the archive's current
// non-deleted index entries.
type EntryView struct {
	entries []section.IndexEntry
}

// Entries returns a view over the archive's current entries for grouping
// convenience accessors such as ByType.
func (a *Archive) Entries() EntryView {
	return EntryView{entries: a.Index()}
}

// All returns every entry in the view.
func (v EntryView) All() []section.IndexEntry {
	return v.entries
}

// ByType returns the entries whose TGI.Type matches typeID, in their
// current index order.
func (v EntryView) ByType(typeID uint32) []section.IndexEntry {
	var out []section.IndexEntry

	for _, e := range v.entries {
		if e.TGI.Type == typeID {
			out = append(out, e)
		}
	}

	return out
}

// Stats is a read-only diagnostic snapshot of an archive's current state.
type Stats struct {
	EntryCount           int
	CompressedEntryCount int
	Dirty                bool
}

// Stats returns a snapshot of the archive's current entry counts and dirty
// state.
func (a *Archive) Stats() Stats {
	s := Stats{Dirty: a.dirty}

	for _, r := range a.records {
		if r.entry.State == section.StateDeleted {
			continue
		}

		s.EntryCount++

		if a.isCompressedInDirectory(r.entry.TGI) {
			s.CompressedEntryCount++
		} else if r.payload != nil && r.payload.loaded && r.payload.compressed {
			s.CompressedEntryCount++
		}
	}

	return s
}

// Header returns a copy of the archive's current header.
func (a *Archive) Header() section.Header {
	return a.header
}

// Close releases the backing file handle, if any. It does not flush
// pending changes; call Save first.
func (a *Archive) Close() error {
	if a.file == nil {
		return nil
	}

	err := a.file.Close()
	a.file = nil

	return err
}
