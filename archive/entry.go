package archive

import (
	"fmt"
	"io"

	"github.com/0xC0000054/dbpf/errs"
	"github.com/0xC0000054/dbpf/qfs"
	"github.com/0xC0000054/dbpf/tgi"
)

// Entry holds a single record's payload: either (a) a raw byte buffer, with
// a compressed flag and (for new/modified entries) a should-compress hint,
// or (b) a byte range not yet read from the backing stream. The transition
// from (b) to (a) happens once, on first access.
type Entry struct {
	TGI tgi.TGI

	loaded bool
	source io.ReaderAt

	location int64
	length   int

	data           []byte
	compressed     bool
	shouldCompress bool

	uncompressedCache []byte
}

// newLazyEntry builds an Entry whose bytes have not yet been read from
// source.
func newLazyEntry(t tgi.TGI, source io.ReaderAt, location int64, length int, compressed bool) *Entry {
	return &Entry{
		TGI:        t,
		source:     source,
		location:   location,
		length:     length,
		compressed: compressed,
	}
}

// newLoadedEntry builds an Entry whose bytes already live in memory.
func newLoadedEntry(t tgi.TGI, data []byte, compressed, shouldCompress bool) *Entry {
	return &Entry{
		TGI:            t,
		loaded:         true,
		data:           data,
		compressed:     compressed,
		shouldCompress: shouldCompress,
	}
}

// IsCompressed reports whether the entry's on-disk (or raw in-memory) bytes
// are QFS-compressed.
func (e *Entry) IsCompressed() bool {
	return e.compressed
}

// ensureLoaded reads the lazy byte range from the backing stream exactly
// once.
func (e *Entry) ensureLoaded() error {
	if e.loaded {
		return nil
	}

	buf := make([]byte, e.length)
	if _, err := e.source.ReadAt(buf, e.location); err != nil {
		return fmt.Errorf("archive: reading entry %s: %w", e.TGI, err)
	}

	e.data = buf
	e.loaded = true

	return nil
}

// RawBytes returns the entry's bytes exactly as they sit on disk (or in
// memory): compressed if IsCompressed is true, otherwise the raw payload.
func (e *Entry) RawBytes() ([]byte, error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}

	return e.data, nil
}

// GetUncompressedData returns a copy of the entry's decompressed bytes,
// decompressing lazily on first access and caching the result for the
// entry's lifetime. Callers may freely mutate the returned slice.
func (e *Entry) GetUncompressedData() ([]byte, error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, err
	}

	if !e.compressed {
		out := make([]byte, len(e.data))
		copy(out, e.data)

		return out, nil
	}

	if e.uncompressedCache == nil {
		dec, err := qfs.Decompress(e.data)
		if err != nil {
			return nil, fmt.Errorf("archive: decompressing entry %s: %w", e.TGI, err)
		}

		e.uncompressedCache = dec
	}

	out := make([]byte, len(e.uncompressedCache))
	copy(out, e.uncompressedCache)

	return out, nil
}

// serialize prepares the bytes to write for a New or Modified entry: it
// compresses the payload when shouldCompress is set and the payload is
// large enough to benefit, returning the bytes to write and the
// uncompressed size to record in the compression directory (0 if the
// result is not compressed).
func (e *Entry) serialize() (data []byte, uncompressedSize int, isCompressed bool, err error) {
	if err := e.ensureLoaded(); err != nil {
		return nil, 0, false, err
	}
	if e.compressed {
		return nil, 0, false, fmt.Errorf("archive: entry %s already compressed at encode time: %w", e.TGI, errs.ErrLogicError)
	}

	if !e.shouldCompress {
		return e.data, 0, false, nil
	}

	compressed, ok := qfs.Compress(e.data, false)
	if !ok {
		return e.data, 0, false, nil
	}

	return compressed, len(e.data), true, nil
}
