package pool

import "sync"

// int32SlicePool backs the QFS encoder's hash-chain tables (head/prev),
// which are transient per-call scratch arrays reused across many small
// Compress calls.
var int32SlicePool = sync.Pool{
	New: func() any { return &[]int32{} },
}

// GetInt32Slice retrieves an int32 slice of exactly the given length from
// the pool, filled with zero. If the pooled slice has insufficient capacity,
// a new slice is allocated. The caller must call the returned cleanup
// function (typically via defer) to return the slice to the pool.
func GetInt32Slice(size int) ([]int32, func()) {
	ptr, _ := int32SlicePool.Get().(*[]int32)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int32, size)
	} else {
		slice = slice[:size]
		for i := range slice {
			slice[i] = 0
		}
	}
	*ptr = slice

	return slice, func() { int32SlicePool.Put(ptr) }
}
