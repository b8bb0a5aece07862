package qfs

// Size bounds for compressible input (spec'd min/max for the LZ77 front end).
const (
	minInputSize = 10
	maxInputSize = 16_777_215 // 2^24 - 1, the largest size a 3-byte BE field can hold
)

// Header flag bits (byte 0 of the 5-byte QFS header).
const (
	flagLargeSize     = 0x80 // 4-byte size fields instead of 3-byte
	flagSizePresent   = 0x01 // a redundant compressed-size field follows the uncompressed size
	signatureBit      = 0x10 // set in every observed flag byte (0x10, 0x11, 0x50, 0x90, 0x91, ...)
	signatureByte2    = 0xFB
)

// Match-search tuning constants, per the codec's LZ77 front end.
const (
	minMatch    = 3
	maxMatch    = 1028
	niceLength  = 258
	goodLength  = 32
	maxChain    = 4096
	maxWindow   = 131072 // 128 KiB
	minHashSize = 32
)

// hasSignature reports whether (b0, b1) mark the start of a QFS header.
//
// The real constraint shared by every flag byte this codec must recognize
// (0x10, 0x11, 0x50, 0x90, 0x91, ...) is that bit 4 is set; the other bits
// carry independent meaning (flagLargeSize, flagSizePresent, and reserved
// bits) and must not gate recognition.
func hasSignature(b0, b1 byte) bool {
	return b1 == signatureByte2 && b0&signatureBit != 0
}
