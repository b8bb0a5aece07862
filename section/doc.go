// Package section defines the low-level binary structures that make up a
// DBPF archive: the 96-byte file header, the 20-byte index entry, and the
// 16-byte compression directory entry.
//
// These types are fixed-size, little-endian, and deliberately ignorant of
// any in-memory bookkeeping (payload caching, dirty tracking) layered on
// top of them by the archive package. They exist to give that package a
// single, well-tested place to Parse and Bytes the on-disk layout.
//
// # Header Format
//
// Header (96 bytes):
//
//	Bytes  | Field              | Type   | Description
//	-------|--------------------|--------|-----------------------------------
//	0-3    | Signature          | [4]byte| Always "DBPF"
//	4-7    | MajorVersion       | uint32 | 1
//	8-11   | MinorVersion       | uint32 | 0
//	12-15  | Reserved1          | uint32 | 0
//	16-19  | Reserved2          | uint32 | 0
//	20-23  | Reserved3          | uint32 | 0
//	24-27  | DateCreated        | uint32 | unix seconds
//	28-31  | DateModified       | uint32 | unix seconds
//	32-35  | IndexMajorVersion  | uint32 | 7
//	36-39  | Entries            | uint32 | number of index entries
//	40-43  | IndexLocation      | uint32 | byte offset of the index section
//	44-47  | IndexSize          | uint32 | entries * 20
//	48-51  | HoleEntryCount     | uint32 | unused, always 0
//	52-55  | HoleIndexLocation  | uint32 | unused, always 0
//	56-59  | HoleIndexSize      | uint32 | unused, always 0
//	60-95  | Reserved           | [36]byte | zero
//
// # Index Entry Format
//
// IndexEntry (20 bytes on disk):
//
//	Bytes  | Field     | Type   | Description
//	-------|-----------|--------|----------------------------------
//	0-3    | Type      | uint32 | TGI type ID
//	4-7    | Group     | uint32 | TGI group ID
//	8-11   | Instance  | uint32 | TGI instance ID
//	12-15  | Location  | uint32 | byte offset of the record payload
//	16-19  | FileSize  | uint32 | byte length of the record payload
//
// State, Payload, and other in-memory-only bookkeeping are not part of this
// on-disk layout; they live alongside it in the archive package's entry
// wrapper.
//
// # Compression Directory Entry Format
//
// CompressionDirectoryEntry (16 bytes on disk):
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|----------------------------------
//	0-3    | Type             | uint32 | TGI type ID
//	4-7    | Group            | uint32 | TGI group ID
//	8-11   | Instance         | uint32 | TGI instance ID
//	12-15  | UncompressedSize | uint32 | size of the record once decompressed
//
// The directory itself is stored as a regular DBPF record under the
// well-known TGI returned by CompressionDirectoryTGI; it is never listed
// inside itself.
package section
