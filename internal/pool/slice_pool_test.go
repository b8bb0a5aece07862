package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt32Slice(t *testing.T) {
	t.Run("returns slice with correct size", func(t *testing.T) {
		slice, cleanup := GetInt32Slice(100)
		defer cleanup()

		require.Equal(t, 100, len(slice))
		require.GreaterOrEqual(t, cap(slice), 100)
	})

	t.Run("returns zeroed slice", func(t *testing.T) {
		slice, cleanup := GetInt32Slice(10)
		for _, v := range slice {
			require.Equal(t, int32(0), v)
		}
		cleanup()
	})

	t.Run("reuses pooled slice when capacity sufficient", func(t *testing.T) {
		slice1, cleanup1 := GetInt32Slice(50)
		ptr1 := &slice1[0]
		cleanup1()

		slice2, cleanup2 := GetInt32Slice(50)
		defer cleanup2()
		ptr2 := &slice2[0]

		require.Equal(t, ptr1, ptr2, "should reuse same underlying array")
	})

	t.Run("reused slice is cleared of stale data", func(t *testing.T) {
		slice1, cleanup1 := GetInt32Slice(8)
		for i := range slice1 {
			slice1[i] = int32(i + 1)
		}
		cleanup1()

		slice2, cleanup2 := GetInt32Slice(8)
		defer cleanup2()
		for _, v := range slice2 {
			require.Equal(t, int32(0), v)
		}
	})

	t.Run("allocates new slice when capacity insufficient", func(t *testing.T) {
		_, cleanup1 := GetInt32Slice(10)
		cleanup1()

		slice2, cleanup2 := GetInt32Slice(1000)
		defer cleanup2()

		require.Equal(t, 1000, len(slice2))
		require.GreaterOrEqual(t, cap(slice2), 1000)
	})

	t.Run("cleanup returns slice to pool", func(t *testing.T) {
		slice, cleanup := GetInt32Slice(100)
		require.NotNil(t, slice)

		cleanup()
	})
}

func TestSlicePoolConcurrency(t *testing.T) {
	t.Run("concurrent access to int32 pool", func(t *testing.T) {
		const goroutines = 100
		done := make(chan bool, goroutines)

		for i := 0; i < goroutines; i++ {
			go func() {
				slice, cleanup := GetInt32Slice(50)
				defer cleanup()

				for j := range slice {
					slice[j] = int32(j)
				}

				done <- true
			}()
		}

		for i := 0; i < goroutines; i++ {
			<-done
		}
	})
}
