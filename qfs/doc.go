// Package qfs implements the QFS/RefPack compression codec used to store
// compressed record payloads inside a DBPF archive.
//
// QFS is a byte-oriented LZ77-family codec with a 5-byte header
// (signature 0x10 0xFB followed by a big-endian 24-bit uncompressed size)
// and a four-shape opcode grammar for literal runs and back-references.
// The decoder additionally tolerates a 4-byte little-endian length prefix
// and 4-byte "large" size fields, matching variants observed in the wild.
package qfs
