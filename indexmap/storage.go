package indexmap

const minCapacity = 4

// storage owns the contiguous slice of slots. Slots are never moved to a
// different index, growing copies them in order.
type storage[T any] struct {
	slots []slot[T]
}

func (s *storage[T]) len() int {
	return len(s.slots)
}

func (s *storage[T]) capacity() int {
	return cap(s.slots)
}

// allocate appends a new slot and returns its index. The slot is vacant until
// setOccupied is called on it.
func (s *storage[T]) allocate() int {
	if len(s.slots) == cap(s.slots) {
		s.grow(max(minCapacity, 2*cap(s.slots)))
	}
	i := len(s.slots)
	s.slots = s.slots[:i+1]
	s.slots[i] = vacantSlot[T](noIndex)
	return i
}

func (s *storage[T]) grow(capacity int) {
	if capacity <= cap(s.slots) {
		return
	}
	slots := make([]slot[T], len(s.slots), capacity)
	copy(slots, s.slots)
	s.slots = slots
}

func (s *storage[T]) occupied(i int) bool {
	return i >= 0 && i < len(s.slots) && s.slots[i].occupied
}

func (s *storage[T]) get(i int) (T, bool) {
	if !s.occupied(i) {
		var zero T
		return zero, false
	}
	return s.slots[i].value, true
}

func (s *storage[T]) getPtr(i int) (*T, bool) {
	if !s.occupied(i) {
		return nil, false
	}
	return &s.slots[i].value, true
}

// setOccupied stores value in the vacant slot i.
func (s *storage[T]) setOccupied(i int, value T) {
	s.slots[i] = occupiedSlot(value)
}

// takeVacant empties the occupied slot i, links it to next and returns the
// value it held.
func (s *storage[T]) takeVacant(i int, next int) T {
	value := s.slots[i].value
	s.slots[i] = vacantSlot[T](next)
	return value
}

// link overwrites the free list link of the vacant slot i.
func (s *storage[T]) link(i int, next int) {
	s.slots[i].next = next + 1
}

func (s *storage[T]) nextFree(i int) int {
	return s.slots[i].nextFree()
}

func (s *storage[T]) truncate(n int) {
	clear(s.slots[n:])
	s.slots = s.slots[:n]
}

// fit reallocates the slots so that capacity equals length.
func (s *storage[T]) fit() {
	if len(s.slots) == cap(s.slots) {
		return
	}
	if len(s.slots) == 0 {
		s.slots = nil
		return
	}
	slots := make([]slot[T], len(s.slots))
	copy(slots, s.slots)
	s.slots = slots
}
