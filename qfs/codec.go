package qfs

// CompressionStats summarizes the result of a successful Compress call.
type CompressionStats struct {
	UncompressedSize int
	CompressedSize   int
}

// CompressionRatio returns CompressedSize/UncompressedSize, or 0 if the
// input was empty.
func (s CompressionStats) CompressionRatio() float64 {
	if s.UncompressedSize == 0 {
		return 0
	}

	return float64(s.CompressedSize) / float64(s.UncompressedSize)
}

// Compress encodes data as a QFS/RefPack blob. It returns (nil, false) when
// data falls outside the compressible size range, or when the compressed
// form is not smaller than the original — callers are expected to store the
// input uncompressed in either case.
//
// When prefixLength is true, the returned blob is preceded by a 4-byte
// little-endian length of the header and opcodes that follow it (the prefix
// itself is not counted). The archive package writes bare blobs.
func Compress(data []byte, prefixLength bool) ([]byte, bool) {
	if len(data) < minInputSize || len(data) > maxInputSize {
		return nil, false
	}

	opcodes := compressOpcodes(data)

	headerLen := 5
	totalLen := headerLen + len(opcodes)
	if prefixLength {
		totalLen += 4
	}
	if totalLen >= len(data) {
		return nil, false
	}

	out := make([]byte, 0, totalLen)
	if prefixLength {
		n := headerLen + len(opcodes)
		out = append(out, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
	}

	out = append(out, signatureBit, signatureByte2)
	out = append(out, byte(len(data)>>16), byte(len(data)>>8), byte(len(data)))
	out = append(out, opcodes...)

	return out, true
}

// CompressStats behaves like Compress but also returns the resulting
// CompressionStats on success.
func CompressStats(data []byte, prefixLength bool) ([]byte, CompressionStats, bool) {
	out, ok := Compress(data, prefixLength)
	if !ok {
		return nil, CompressionStats{}, false
	}

	return out, CompressionStats{UncompressedSize: len(data), CompressedSize: len(out)}, true
}

// DecompressedSize reports the uncompressed size recorded in a QFS header
// without running the decoder, returning errs.ErrUnsupportedCompressionFormat
// if data does not begin with a recognizable QFS signature.
func DecompressedSize(data []byte) (int, error) {
	h, err := parseHeader(data)
	if err != nil {
		return 0, err
	}

	return h.uncompressedSize, nil
}

// IsCompressed reports whether data begins with a recognizable QFS header,
// bare or length-prefixed.
func IsCompressed(data []byte) bool {
	_, err := parseHeader(data)

	return err == nil
}
