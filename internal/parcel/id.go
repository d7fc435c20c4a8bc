package parcel

import "sync/atomic"

// ID is a process-wide unique parcel identifier, allocated from a
// monotonic counter.
type ID uint64

var nextID uint64

// NextID allocates the next process-wide monotonic parcel ID.
func NextID() ID {
	return ID(atomic.AddUint64(&nextID, 1))
}
