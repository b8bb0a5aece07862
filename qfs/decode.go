package qfs

import (
	"fmt"

	"github.com/0xC0000054/dbpf/errs"
)

// header describes a parsed QFS header: where the opcode stream begins and
// how many bytes the fully decompressed output occupies.
type header struct {
	payloadOffset    int
	uncompressedSize int
}

// parseHeader locates the QFS signature (bare at offset 0, or prefixed with
// a 4-byte little-endian compressed length at offset 4), then reads the
// big-endian uncompressed size that follows it.
func parseHeader(data []byte) (header, error) {
	if len(data) < 2 {
		return header{}, fmt.Errorf("qfs header: %w", errs.ErrTruncatedInput)
	}

	offset := -1
	if hasSignature(data[0], data[1]) {
		offset = 0
	} else if len(data) >= 6 && hasSignature(data[4], data[5]) {
		offset = 4
	}
	if offset < 0 {
		return header{}, errs.ErrUnsupportedCompressionFormat
	}

	flags := data[offset]
	sizeWidth := 3
	if flags&flagLargeSize != 0 {
		sizeWidth = 4
	}

	pos := offset + 2
	if len(data) < pos+sizeWidth {
		return header{}, fmt.Errorf("qfs header: %w", errs.ErrTruncatedInput)
	}
	uncompressedSize := int(readBE(data[pos : pos+sizeWidth]))
	pos += sizeWidth

	if flags&flagSizePresent != 0 {
		if len(data) < pos+sizeWidth {
			return header{}, fmt.Errorf("qfs header: %w", errs.ErrTruncatedInput)
		}
		pos += sizeWidth // compressed size, not needed by the decoder
	}

	return header{payloadOffset: pos, uncompressedSize: uncompressedSize}, nil
}

// readBE reads a big-endian unsigned integer of len(b) bytes (3 or 4).
func readBE(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = (v << 8) | uint32(c)
	}

	return v
}

// Decompress decodes a QFS/RefPack blob (bare or length-prefixed) back into
// its original bytes.
func Decompress(data []byte) ([]byte, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	out := make([]byte, h.uncompressedSize)
	outPos := 0
	inPos := h.payloadOffset

	for {
		if inPos >= len(data) {
			return nil, fmt.Errorf("qfs decode: %w", errs.ErrTruncatedInput)
		}

		b0 := data[inPos]

		switch {
		case b0 <= 0x7F: // 2-byte op
			if inPos+2 > len(data) {
				return nil, fmt.Errorf("qfs decode: %w", errs.ErrTruncatedInput)
			}
			b1 := data[inPos+1]
			plain := int(b0 & 0x03)
			copyCount := int((b0&0x1C)>>2) + 3
			copyOffset := (int(b0&0x60) << 3) + int(b1) + 1
			inPos += 2

			if err := copyLiteral(data, &inPos, out, &outPos, plain); err != nil {
				return nil, err
			}
			if err := backCopy(out, &outPos, copyOffset, copyCount); err != nil {
				return nil, err
			}

		case b0 <= 0xBF: // 3-byte op
			if inPos+3 > len(data) {
				return nil, fmt.Errorf("qfs decode: %w", errs.ErrTruncatedInput)
			}
			b1, b2 := data[inPos+1], data[inPos+2]
			plain := int(b1&0xC0) >> 6
			copyCount := int(b0&0x3F) + 4
			copyOffset := (int(b1&0x3F) << 8) + int(b2) + 1
			inPos += 3

			if err := copyLiteral(data, &inPos, out, &outPos, plain); err != nil {
				return nil, err
			}
			if err := backCopy(out, &outPos, copyOffset, copyCount); err != nil {
				return nil, err
			}

		case b0 <= 0xDF: // 4-byte op
			if inPos+4 > len(data) {
				return nil, fmt.Errorf("qfs decode: %w", errs.ErrTruncatedInput)
			}
			b1, b2, b3 := data[inPos+1], data[inPos+2], data[inPos+3]
			plain := int(b0 & 0x03)
			copyCount := (int(b0&0x0C) << 6) + int(b3) + 5
			copyOffset := (int(b0&0x10) << 12) + (int(b1) << 8) + int(b2) + 1
			inPos += 4

			if err := copyLiteral(data, &inPos, out, &outPos, plain); err != nil {
				return nil, err
			}
			if err := backCopy(out, &outPos, copyOffset, copyCount); err != nil {
				return nil, err
			}

		case b0 <= 0xFB: // literal-run op, 1 byte, no copy
			plain := (int(b0&0x1F) << 2) + 4
			inPos++

			if err := copyLiteral(data, &inPos, out, &outPos, plain); err != nil {
				return nil, err
			}

		default: // 0xFC..0xFF: EOF op, 1 byte
			plain := int(b0 & 0x03)
			inPos++

			if err := copyLiteral(data, &inPos, out, &outPos, plain); err != nil {
				return nil, err
			}

			return out, nil
		}
	}
}

// copyLiteral copies n literal bytes from in[*inPos:] to out[*outPos:],
// advancing both cursors and bounds-checking both buffers.
func copyLiteral(in []byte, inPos *int, out []byte, outPos *int, n int) error {
	if n == 0 {
		return nil
	}
	if *inPos+n > len(in) {
		return fmt.Errorf("qfs decode: literal run: %w", errs.ErrTruncatedInput)
	}
	if *outPos+n > len(out) {
		return fmt.Errorf("qfs decode: literal run overflows output: %w", errs.ErrMalformedRecord)
	}

	copy(out[*outPos:*outPos+n], in[*inPos:*inPos+n])
	*inPos += n
	*outPos += n

	return nil
}

// backCopy performs the LZ77 self-referential copy: count bytes copied one
// at a time from out[*outPos-offset:], which may read bytes written earlier
// in this very call (an overlapping forward copy).
func backCopy(out []byte, outPos *int, offset, count int) error {
	if count == 0 {
		return nil
	}
	if offset < 1 || offset > *outPos {
		return fmt.Errorf("qfs decode: copy offset %d exceeds output cursor %d: %w", offset, *outPos, errs.ErrMalformedRecord)
	}
	if *outPos+count > len(out) {
		return fmt.Errorf("qfs decode: copy overflows output: %w", errs.ErrMalformedRecord)
	}

	src := *outPos - offset
	for i := 0; i < count; i++ {
		out[*outPos+i] = out[src+i]
	}
	*outPos += count

	return nil
}
