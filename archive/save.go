package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/internal/pool"
	"github.com/0xC0000054/dbpf/section"
)

// Save writes the archive back to the path it was opened from.
func (a *Archive) Save() error {
	if a.path == "" {
		return fmt.Errorf("archive: Save: no associated path, use SaveAs: %w", errs.ErrInvalidArgument)
	}

	return a.saveTo(a.path)
}

// SaveAs writes the archive to path, which becomes its path for subsequent
// Save calls. Saving to the archive's own path is safe: the new file is
// built in memory and swapped in with a single rename.
func (a *Archive) SaveAs(path string) error {
	return a.saveTo(path)
}

// saveTo implements the on-disk layout: header, then every surviving
// record's bytes in order, then the rebuilt compression directory, then the
// index. The header is finalized last, once every offset is known.
func (a *Archive) saveTo(path string) error {
	image, newRecords, newHeader, err := a.buildImage()
	if err != nil {
		return err
	}

	if err := writeAtomic(path, image); err != nil {
		return err
	}

	if a.file != nil {
		a.file.Close()
		a.file = nil
	}

	a.path = path
	a.header = newHeader
	a.records = newRecords
	a.dirty = false
	a.sortByLocation()

	return nil
}

func (a *Archive) buildImage() ([]byte, []*record, section.Header, error) {
	buf := pool.GetArchiveBuffer()
	defer pool.PutArchiveBuffer(buf)

	buf.ExtendOrGrow(section.HeaderSize) // placeholder, overwritten once offsets are known

	newRecords := make([]*record, 0, len(a.records))
	indexEntries := make([]section.IndexEntry, 0, len(a.records)+1)
	var newCompressionDir []section.CompressionDirectoryEntry

	for _, r := range a.records {
		if r.entry.State == section.StateDeleted {
			continue
		}

		data, uncompressedSize, isCompressed, err := a.payloadBytes(r)
		if err != nil {
			return nil, nil, section.Header{}, err
		}

		location := buf.Len()
		buf.MustWrite(data)

		entry := section.IndexEntry{
			TGI:      r.entry.TGI,
			Location: uint32(location),
			FileSize: uint32(len(data)),
			State:    section.StateNormal,
		}

		if isCompressed {
			newCompressionDir = append(newCompressionDir, section.CompressionDirectoryEntry{
				TGI:              r.entry.TGI,
				UncompressedSize: uint32(uncompressedSize),
			})
		}

		indexEntries = append(indexEntries, entry)
		newRecords = append(newRecords, &record{
			entry:   entry,
			payload: newLoadedEntry(r.entry.TGI, data, isCompressed, isCompressed),
		})
	}

	if len(newCompressionDir) > 0 {
		dirLocation := buf.Len()

		for _, d := range newCompressionDir {
			buf.MustWrite(d.Bytes())
		}

		dirSize := len(newCompressionDir) * section.CompressionDirectoryEntrySize

		indexEntries = append(indexEntries, section.IndexEntry{
			TGI:      section.CompressionDirectoryTGI,
			Location: uint32(dirLocation),
			FileSize: uint32(dirSize),
			State:    section.StateNormal,
		})
	}

	indexLocation := buf.Len()
	for _, e := range indexEntries {
		buf.MustWrite(e.Bytes())
	}
	indexSize := len(indexEntries) * section.IndexEntrySize

	h := a.header
	h.MajorVersion = section.SupportedMajorVersion
	h.MinorVersion = section.SupportedMinorVersion
	h.IndexMajorVersion = section.SupportedIndexMajorVersion
	h.Entries = uint32(len(indexEntries))
	h.IndexLocation = uint32(indexLocation)
	h.IndexSize = uint32(indexSize)
	h.DateModified = uint32(time.Now().Unix())
	if h.DateCreated == 0 {
		h.DateCreated = h.DateModified
	}

	copy(buf.Slice(0, section.HeaderSize), h.Bytes())

	image := make([]byte, buf.Len())
	copy(image, buf.Bytes())

	a.compressionDir = newCompressionDir

	return image, newRecords, h, nil
}

// payloadBytes returns the bytes to write for r, along with compression
// metadata: New and Modified entries are (re-)encoded via Entry.serialize,
// while Normal entries are copied through unchanged from their existing
// on-disk representation.
func (a *Archive) payloadBytes(r *record) (data []byte, uncompressedSize int, isCompressed bool, err error) {
	switch r.entry.State {
	case section.StateNew, section.StateModified:
		return r.payload.serialize()
	default:
		e, err := a.payloadFor(r)
		if err != nil {
			return nil, 0, false, err
		}

		raw, err := e.RawBytes()
		if err != nil {
			return nil, 0, false, err
		}

		if !e.IsCompressed() {
			return raw, 0, false, nil
		}

		for _, d := range a.compressionDir {
			if d.TGI == r.entry.TGI {
				return raw, int(d.UncompressedSize), true, nil
			}
		}

		return raw, 0, true, nil
	}
}

// writeAtomic writes data to a temporary file alongside path and renames it
// into place, so a save that fails partway never leaves a truncated file at
// path — including when path is the file the archive was opened from.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".dbpf-save-*")
	if err != nil {
		return fmt.Errorf("archive: creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("archive: writing temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("archive: closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("archive: replacing %s: %w", path, err)
	}

	return nil
}
