package indexmap

import "iter"

// All yields every live key and value in ascending key order. Keys follow the
// position of the slots, not the order of insertion.
func (m *IndexMap[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := range m.store.slots {
			s := &m.store.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(i, s.value) {
				return
			}
		}
	}
}

// AllMut is All yielding pointers to the stored values. The map must not be
// inserted into while iterating.
func (m *IndexMap[T]) AllMut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range m.store.slots {
			s := &m.store.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(i, &s.value) {
				return
			}
		}
	}
}

func (m *IndexMap[T]) Keys() iter.Seq[int] {
	return func(yield func(int) bool) {
		for key := range m.All() {
			if !yield(key) {
				return
			}
		}
	}
}

func (m *IndexMap[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range m.All() {
			if !yield(value) {
				return
			}
		}
	}
}

func (m *IndexMap[T]) ValuesMut() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, value := range m.AllMut() {
			if !yield(value) {
				return
			}
		}
	}
}

// Drain empties the map and yields the values it held in ascending key order.
// The map is cleared when Drain is called, not when the sequence is consumed;
// entries not consumed are simply dropped.
func (m *IndexMap[T]) Drain() iter.Seq2[int, T] {
	type entry struct {
		key   int
		value T
	}
	entries := make([]entry, 0, m.len)
	for key, value := range m.All() {
		entries = append(entries, entry{key, value})
	}
	m.Clear()

	return func(yield func(int, T) bool) {
		for _, e := range entries {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}
