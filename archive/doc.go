// Package archive implements the DBPF container: header/index/compression
// directory consistency, dirty-state tracking, and the save pipeline that
// relocates records, rewrites directories, and atomically replaces an
// in-place file.
//
// Archive is not safe for concurrent use; the library does not internally
// share archives across goroutines. Callers needing concurrent access must
// serialize it themselves.
package archive
