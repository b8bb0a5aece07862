package section

import "github.com/0xC0000054/dbpf/tgi"

// Fixed on-disk sizes.
const (
	HeaderSize                    = 96
	IndexEntrySize                = 20
	CompressionDirectoryEntrySize = 16
)

// Supported file format versions; Header.Validate rejects anything else.
const (
	SupportedMajorVersion      = 1
	SupportedMinorVersion      = 0
	SupportedIndexMajorVersion = 7
)

var signature = [4]byte{'D', 'B', 'P', 'F'}

// CompressionDirectoryTGI is the well-known identity of the compression
// directory record within an archive.
var CompressionDirectoryTGI = tgi.New(0xE86B1EEF, 0xE86B1EEF, 0x286B1F03)
