// Package errs collects the sentinel errors shared across dbpf's packages.
//
// All errors are plain sentinels so callers can test them with errors.Is;
// wrapping (via fmt.Errorf's %w) is used at call sites to attach context
// without losing the sentinel identity.
package errs

import "errors"

// Kind classifies an error into one of the families described by the
// archive format's error handling design.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidHeader
	KindUnsupportedCompressionFormat
	KindTruncatedInput
	KindMalformedRecord
	KindNotFound
	KindInvalidArgument
	KindLogicError
)

var (
	// ErrInvalidHeader: DBPF header signature, version, or index-size mismatch.
	ErrInvalidHeader = errors.New("dbpf: invalid header")
	// ErrInvalidHeaderSize: a fixed-size header was parsed from the wrong number of bytes.
	ErrInvalidHeaderSize = errors.New("dbpf: invalid header size")

	// ErrUnsupportedCompressionFormat: QFS signature not found at offset 0 or 4.
	ErrUnsupportedCompressionFormat = errors.New("dbpf: unsupported compression format")

	// ErrTruncatedInput: the stream ended before the expected number of bytes were available.
	ErrTruncatedInput = errors.New("dbpf: truncated input")

	// ErrMalformedRecord: unknown signature, bad key type, unknown property type, or
	// a structurally invalid text/binary record.
	ErrMalformedRecord = errors.New("dbpf: malformed record")
	// ErrInvalidIndexEntrySize: an index or compression-directory entry was the wrong size.
	ErrInvalidIndexEntrySize = errors.New("dbpf: invalid index entry size")

	// ErrNotFound: a TGI lookup failed.
	ErrNotFound = errors.New("dbpf: not found")

	// ErrInvalidArgument: a null/empty/out-of-range argument where one is forbidden.
	ErrInvalidArgument = errors.New("dbpf: invalid argument")

	// ErrLogicError: an internal invariant was violated.
	ErrLogicError = errors.New("dbpf: internal invariant violated")
)

// KindOf classifies err by the sentinel it wraps, or KindUnknown if err
// does not match any of this package's sentinels.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidHeader), errors.Is(err, ErrInvalidHeaderSize):
		return KindInvalidHeader
	case errors.Is(err, ErrUnsupportedCompressionFormat):
		return KindUnsupportedCompressionFormat
	case errors.Is(err, ErrTruncatedInput):
		return KindTruncatedInput
	case errors.Is(err, ErrMalformedRecord), errors.Is(err, ErrInvalidIndexEntrySize):
		return KindMalformedRecord
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrLogicError):
		return KindLogicError
	default:
		return KindUnknown
	}
}
