package indexmap

import (
	"fmt"
)

// IndexMap stores values under keys it generates itself.
//
// The zero value is an empty map ready to use. No memory is allocated until
// the first Insert.
type IndexMap[T any] struct {
	store storage[T]
	free  freeList[T]
	len   int
}

// New returns an empty map with no capacity.
func New[T any]() *IndexMap[T] {
	return &IndexMap[T]{}
}

// WithCapacity returns an empty map able to hold capacity values before
// growing.
func WithCapacity[T any](capacity int) *IndexMap[T] {
	m := &IndexMap[T]{}
	m.store.grow(capacity)
	return m
}

// Capacity is the number of slots the map can hold without reallocating.
func (m *IndexMap[T]) Capacity() int {
	return m.store.capacity()
}

// Len returns the number of live values.
func (m *IndexMap[T]) Len() int {
	return m.len
}

func (m *IndexMap[T]) IsEmpty() bool {
	return m.len == 0
}

// Reserve makes room for at least additional more slots.
func (m *IndexMap[T]) Reserve(additional int) {
	if additional <= 0 {
		return
	}
	m.store.grow(m.store.len() + additional)
}

// Insert stores value and returns its key. The key is distinct from every
// other live key, but it may be the key of a value removed earlier: the most
// recently freed slot is reused first.
func (m *IndexMap[T]) Insert(value T) int {
	i, ok := m.free.pop(&m.store)
	if !ok {
		i = m.store.allocate()
	}
	m.store.setOccupied(i, value)
	m.len++
	return i
}

// Remove deletes key and returns its value. ok is false, and nothing changes,
// when key is not live.
func (m *IndexMap[T]) Remove(key int) (value T, ok bool) {
	if !m.store.occupied(key) {
		return value, false
	}
	value = m.store.takeVacant(key, noIndex)
	m.free.push(&m.store, key)
	m.len--
	return value, true
}

// RemoveEntry is Remove returning the key along with the value.
func (m *IndexMap[T]) RemoveEntry(key int) (int, T, bool) {
	value, ok := m.Remove(key)
	return key, value, ok
}

func (m *IndexMap[T]) Get(key int) (T, bool) {
	return m.store.get(key)
}

// GetMut returns a pointer to the value stored under key. The pointer is valid
// until the next Insert, which may move the slots to a bigger array.
func (m *IndexMap[T]) GetMut(key int) (*T, bool) {
	return m.store.getPtr(key)
}

func (m *IndexMap[T]) GetKeyValue(key int) (int, T, bool) {
	value, ok := m.store.get(key)
	return key, value, ok
}

func (m *IndexMap[T]) ContainsKey(key int) bool {
	return m.store.occupied(key)
}

// MustGet returns the value stored under key and panics if there is none.
// Use it only with keys known to be live, never with external input.
func (m *IndexMap[T]) MustGet(key int) T {
	value, ok := m.store.get(key)
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrKeyNotFound, key))
	}
	return value
}

// MustGetMut is the pointer counterpart of MustGet.
func (m *IndexMap[T]) MustGetMut(key int) *T {
	value, ok := m.store.getPtr(key)
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrKeyNotFound, key))
	}
	return value
}

// Clear removes every value. All slots become free, lowest key first, so the
// following inserts reuse the existing capacity as 0, 1, 2...
func (m *IndexMap[T]) Clear() {
	clear(m.store.slots)
	m.free.rebuild(&m.store)
	m.len = 0
}

// Retain removes every value for which keep returns false. Values are visited
// in ascending key order.
func (m *IndexMap[T]) Retain(keep func(key int, value *T) bool) {
	for i := range m.store.slots {
		if !m.store.slots[i].occupied {
			continue
		}
		if keep(i, &m.store.slots[i].value) {
			continue
		}
		m.store.takeVacant(i, noIndex)
		m.free.push(&m.store, i)
		m.len--
	}
}

// ShrinkToFit drops the free slots at the end of the storage and releases the
// unused capacity. Keys of live values do not change.
func (m *IndexMap[T]) ShrinkToFit() {
	if m.len == 0 {
		m.store.slots = nil
		m.free.setHead(noIndex)
		return
	}

	last := m.store.len() - 1
	for !m.store.slots[last].occupied {
		last--
	}

	m.free.drop(&m.store, last+1)
	m.store.truncate(last + 1)
	m.store.fit()
}

// Clone returns a copy with the same keys, values and free slots. Values are
// copied by assignment.
func (m *IndexMap[T]) Clone() *IndexMap[T] {
	return m.CloneFunc(func(value T) T { return value })
}

// CloneFunc is Clone with every live value copied by fn.
func (m *IndexMap[T]) CloneFunc(fn func(T) T) *IndexMap[T] {
	c := &IndexMap[T]{
		free: m.free,
		len:  m.len,
	}
	if m.store.slots == nil {
		return c
	}
	c.store.slots = make([]slot[T], len(m.store.slots), cap(m.store.slots))
	for i, s := range m.store.slots {
		if s.occupied {
			s.value = fn(s.value)
		}
		c.store.slots[i] = s
	}
	return c
}
