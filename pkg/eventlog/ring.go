package eventlog

// Ring is a fixed-capacity append-only buffer with FIFO eviction.
// Once full, each append evicts the oldest element. Arrival order is
// preserved among surviving elements. Ring is not safe for concurrent
// use; callers serialize access.
type Ring[T any] struct {
	buf   []T
	head  int
	count int
	total uint64
}

// NewRing creates a ring with the given capacity. Capacity must be
// positive; anything else is treated as 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Append adds v, evicting the oldest element if the ring is at capacity.
func (r *Ring[T]) Append(v T) {
	if r.count < len(r.buf) {
		r.buf[(r.head+r.count)%len(r.buf)] = v
		r.count++
	} else {
		r.buf[r.head] = v
		r.head = (r.head + 1) % len(r.buf)
	}
	r.total++
}

// Len returns the number of elements currently held.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap returns the ring's fixed capacity.
func (r *Ring[T]) Cap() int {
	return len(r.buf)
}

// TotalAppended returns the number of elements ever appended, including
// evicted ones.
func (r *Ring[T]) TotalAppended() uint64 {
	return r.total
}

// Snapshot returns the surviving elements in arrival order.
func (r *Ring[T]) Snapshot() []T {
	out := make([]T, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

// Clear empties the ring. The total-appended counter is reset as well so
// that post-clear queries report a fresh buffer.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.buf {
		r.buf[i] = zero
	}
	r.head = 0
	r.count = 0
	r.total = 0
}
