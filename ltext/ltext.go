package ltext

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/0xC0000054/dbpf/endian"
	"github.com/0xC0000054/dbpf/errs"
)

// Encoding identifies how an LTEXT record's text bytes are stored.
type Encoding uint8

const (
	// EncodingASCII treats each byte as one character in the active
	// codepage; this library reads it as plain ASCII.
	EncodingASCII Encoding = 0
	// EncodingUTF8 stores each character as a UTF-8 code unit sequence.
	EncodingUTF8 Encoding = 8
	// EncodingUTF16LE stores each character as a little-endian UTF-16 code
	// unit. This is always used when encoding.
	EncodingUTF16LE Encoding = 16
)

const (
	headerSize = 4
	maxLength  = 65535
	lengthMask = 0x00FFFFFF
)

// LTEXT holds a single decoded localized-text value.
type LTEXT struct {
	Value string
}

// New wraps value in an LTEXT, ready for Encode.
func New(value string) LTEXT {
	return LTEXT{Value: value}
}

// Parse decodes an LTEXT record from its wire form: a 4-byte header
// followed by encoded text. The header's length field counts characters,
// not bytes. For ASCII and UTF-16LE it selects how many characters (bytes or
// 16-bit units) are read, and the body must hold at least that many; for
// UTF-8 the whole remaining body is decoded and the length field is not used.
func Parse(data []byte) (LTEXT, error) {
	if len(data) < headerSize {
		return LTEXT{}, fmt.Errorf("ltext: %w", errs.ErrTruncatedInput)
	}

	engine := endian.GetLittleEndianEngine()
	raw := engine.Uint32(data[0:4])
	length := int(raw & lengthMask)
	enc := Encoding(raw >> 24)

	body := data[headerSize:]

	switch enc {
	case EncodingASCII:
		if len(body) < length {
			return LTEXT{}, fmt.Errorf("ltext: %w", errs.ErrTruncatedInput)
		}

		return LTEXT{Value: string(body[:length])}, nil

	case EncodingUTF8:
		if !utf8.Valid(body) {
			return LTEXT{}, fmt.Errorf("ltext: invalid utf-8: %w", errs.ErrMalformedRecord)
		}

		return LTEXT{Value: string(body)}, nil

	case EncodingUTF16LE:
		if len(body) < length*2 {
			return LTEXT{}, fmt.Errorf("ltext: %w", errs.ErrTruncatedInput)
		}

		units := make([]uint16, length)
		for i := 0; i < length; i++ {
			units[i] = engine.Uint16(body[i*2 : i*2+2])
		}

		return LTEXT{Value: string(utf16.Decode(units))}, nil

	default:
		return LTEXT{}, fmt.Errorf("ltext: unknown encoding %d: %w", enc, errs.ErrMalformedRecord)
	}
}

// Encode serializes l into its wire form, always using EncodingUTF16LE.
// It fails if l.Value is longer than 65535 characters.
func (l LTEXT) Encode() ([]byte, error) {
	runes := []rune(l.Value)
	if len(runes) > maxLength {
		return nil, fmt.Errorf("ltext: value exceeds %d characters: %w", maxLength, errs.ErrInvalidArgument)
	}

	units := utf16.Encode(runes)
	engine := endian.GetLittleEndianEngine()

	out := make([]byte, headerSize+len(units)*2)
	header := uint32(len(units))&lengthMask | uint32(EncodingUTF16LE)<<24
	engine.PutUint32(out[0:4], header)

	for i, u := range units {
		engine.PutUint16(out[headerSize+i*2:headerSize+i*2+2], u)
	}

	return out, nil
}
