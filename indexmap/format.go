package indexmap

import (
	"fmt"
	"strings"
)

// String formats the live entries like a Go map: indexmap[0:vim 2:x].
func (m *IndexMap[T]) String() string {
	b := &strings.Builder{}
	b.WriteString("indexmap[")
	first := true
	for key, value := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(b, "%d:%v", key, value)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal reports whether a and b have the same slots, the same free list and the
// same values under the same keys. Two maps holding the same entries but with
// different free slots are not equal. Two nil maps are equal, a nil map is
// not equal to any other.
func Equal[T comparable](a, b *IndexMap[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.len != b.len || a.free != b.free || a.store.len() != b.store.len() {
		return false
	}
	for i := range a.store.slots {
		if a.store.slots[i] != b.store.slots[i] {
			return false
		}
	}
	return true
}
