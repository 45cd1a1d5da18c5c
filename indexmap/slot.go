package indexmap

// noIndex terminates the free list.
const noIndex = -1

// slot is either occupied (holds a value) or vacant (holds the index of the
// next vacant slot).
//
// next is stored shifted by one so that the zero slot is a vacant tail.
type slot[T any] struct {
	value    T
	next     int
	occupied bool
}

func occupiedSlot[T any](value T) slot[T] {
	return slot[T]{value: value, occupied: true}
}

func vacantSlot[T any](next int) slot[T] {
	return slot[T]{next: next + 1}
}

func (s *slot[T]) nextFree() int {
	return s.next - 1
}
