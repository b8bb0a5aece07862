// Package hash provides the digest used by the archive package to back an
// O(1) average lookup index over TGI triples.
package hash

import "github.com/cespare/xxhash/v2"

// TGIKey computes the xxHash64 digest of a (type, group, instance) triple.
//
// The triple is laid out as 12 little-endian bytes (type, then group, then
// instance) before hashing, so two equal triples always produce the same
// key and the key can be used directly as a map index without re-deriving
// equality from the original fields.
func TGIKey(typeID, group, instance uint32) uint64 {
	var buf [12]byte
	putUint32(buf[0:4], typeID)
	putUint32(buf[4:8], group)
	putUint32(buf[8:12], instance)

	return xxhash.Sum64(buf[:])
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
