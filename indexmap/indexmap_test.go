package indexmap

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"
)

// assertState checks the slot layout: a value for every occupied slot and the
// next free index for every vacant one.
func assertState[T comparable](m *IndexMap[T], values map[int]T, vacant map[int]int, head int) {
	gotValues := map[int]T{}
	gotVacant := map[int]int{}
	for i, s := range m.store.slots {
		if s.occupied {
			gotValues[i] = s.value
		} else {
			gotVacant[i] = s.nextFree()
		}
	}
	biff.AssertEqual(gotValues, values)
	biff.AssertEqual(gotVacant, vacant)
	biff.AssertEqual(m.free.head(), head)
}

func TestIndexMap(t *testing.T) {

	biff.Alternative("New map", func(a *biff.A) {

		m := New[string]()

		biff.AssertEqual(m.Len(), 0)
		biff.AssertTrue(m.IsEmpty())
		biff.AssertEqual(m.Capacity(), 0)
		biff.AssertNil(m.store.slots)

		a.Alternative("Remove from empty map", func(a *biff.A) {
			_, ok := m.Remove(0)
			biff.AssertFalse(ok)
			biff.AssertEqual(m.Len(), 0)
			biff.AssertTrue(m.IsEmpty())
		})

		a.Alternative("Negative keys are never live", func(a *biff.A) {
			m.Insert("a")
			biff.AssertFalse(m.ContainsKey(-1))
			_, ok := m.Get(-1)
			biff.AssertFalse(ok)
			_, ok = m.Remove(-1)
			biff.AssertFalse(ok)
		})

		a.Alternative("Process table", func(a *biff.A) {
			vim := m.Insert("vim")
			cargo := m.Insert("cargo")
			rls := m.Insert("rust-analyser")

			biff.AssertEqual(vim, 0)
			biff.AssertEqual(cargo, 1)
			biff.AssertEqual(rls, 2)
			biff.AssertEqual(m.Len(), 3)

			value, ok := m.Remove(cargo)
			biff.AssertTrue(ok)
			biff.AssertEqual(value, "cargo")

			_, ok = m.Get(1)
			biff.AssertFalse(ok)
			biff.AssertFalse(m.ContainsKey(6))

			biff.AssertEqual(m.Insert("x"), 1)

			type entry struct {
				key   int
				value string
			}
			entries := []entry{}
			for key, value := range m.All() {
				entries = append(entries, entry{key, value})
			}
			biff.AssertEqual(entries, []entry{{0, "vim"}, {1, "x"}, {2, "rust-analyser"}})
			biff.AssertEqual(m.String(), "indexmap[0:vim 1:x 2:rust-analyser]")
			biff.AssertEqual(m.MustGet(0), "vim")
		})

		a.Alternative("Insert then get", func(a *biff.A) {
			k := m.Insert("hello")
			value, ok := m.Get(k)
			biff.AssertTrue(ok)
			biff.AssertEqual(value, "hello")

			key, value, ok := m.GetKeyValue(k)
			biff.AssertTrue(ok)
			biff.AssertEqual(key, k)
			biff.AssertEqual(value, "hello")

			a.Alternative("Remove twice", func(a *biff.A) {
				_, ok := m.Remove(k)
				biff.AssertTrue(ok)
				_, ok = m.Get(k)
				biff.AssertFalse(ok)
				_, ok = m.Remove(k)
				biff.AssertFalse(ok)
				biff.AssertEqual(m.Len(), 0)
			})

			a.Alternative("Modify through GetMut", func(a *biff.A) {
				p, ok := m.GetMut(k)
				biff.AssertTrue(ok)
				*p = "bye"
				biff.AssertEqual(m.MustGet(k), "bye")

				*m.MustGetMut(k) = "again"
				biff.AssertEqual(m.MustGet(k), "again")
			})

			a.Alternative("RemoveEntry", func(a *biff.A) {
				key, value, ok := m.RemoveEntry(k)
				biff.AssertTrue(ok)
				biff.AssertEqual(key, k)
				biff.AssertEqual(value, "hello")
			})
		})

	})
}

func TestIndexMap_FreeList(t *testing.T) {

	m := New[rune]()

	m.Insert('a')
	b := m.Insert('b')
	c := m.Insert('c')
	m.Insert('d')
	e := m.Insert('e')

	assertState(m, map[int]rune{0: 'a', 1: 'b', 2: 'c', 3: 'd', 4: 'e'}, map[int]int{}, noIndex)

	m.Remove(b)
	assertState(m, map[int]rune{0: 'a', 2: 'c', 3: 'd', 4: 'e'}, map[int]int{1: noIndex}, 1)

	m.Remove(e)
	assertState(m, map[int]rune{0: 'a', 2: 'c', 3: 'd'}, map[int]int{1: noIndex, 4: 1}, 4)

	m.Remove(c)
	assertState(m, map[int]rune{0: 'a', 3: 'd'}, map[int]int{1: noIndex, 2: 4, 4: 1}, 2)

	m.ShrinkToFit()
	assertState(m, map[int]rune{0: 'a', 3: 'd'}, map[int]int{1: noIndex, 2: 1}, 2)
	biff.AssertEqual(m.Capacity(), 4)

	// LIFO: the most recently freed key comes back first
	biff.AssertEqual(m.Insert('x'), 2)
	biff.AssertEqual(m.Insert('y'), 1)
	biff.AssertEqual(m.Insert('z'), 4)
}

func TestIndexMap_ShrinkToFit(t *testing.T) {

	biff.Alternative("Shrink", func(a *biff.A) {

		m := New[rune]()
		ka := m.Insert('a')
		kb := m.Insert('b')
		kc := m.Insert('c')
		kd := m.Insert('d')
		ke := m.Insert('e')

		a.Alternative("Tail with head beyond last", func(a *biff.A) {
			m.Remove(ke)
			m.Remove(kb)
			m.Remove(kd)
			assertState(m, map[int]rune{0: 'a', 2: 'c'}, map[int]int{1: 4, 3: 1, 4: noIndex}, 3)

			m.ShrinkToFit()
			assertState(m, map[int]rune{0: 'a', 2: 'c'}, map[int]int{1: noIndex}, 1)

			m.Remove(kc)
			m.ShrinkToFit()
			assertState(m, map[int]rune{0: 'a'}, map[int]int{}, noIndex)
			biff.AssertEqual(m.Capacity(), 1)

			m.Remove(ka)
			assertState(m, map[int]rune{}, map[int]int{0: noIndex}, 0)

			m.ShrinkToFit()
			assertState(m, map[int]rune{}, map[int]int{}, noIndex)
			biff.AssertEqual(m.Capacity(), 0)
		})

		a.Alternative("Tail chained through the list", func(a *biff.A) {
			m.Remove(kb)
			m.Remove(kd)
			m.Remove(ke)
			assertState(m, map[int]rune{0: 'a', 2: 'c'}, map[int]int{1: noIndex, 3: 1, 4: 3}, 4)

			m.ShrinkToFit()
			assertState(m, map[int]rune{0: 'a', 2: 'c'}, map[int]int{1: noIndex}, 1)
		})

		a.Alternative("Nothing to drop", func(a *biff.A) {
			m.ShrinkToFit()
			biff.AssertEqual(m.Capacity(), 5)
			biff.AssertEqual(m.Len(), 5)
		})
	})
}

func TestIndexMap_Clear(t *testing.T) {

	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Insert(i * 10)
	}
	m.Remove(3)
	m.Remove(7)
	capacity := m.Capacity()

	m.Clear()

	biff.AssertEqual(m.Len(), 0)
	biff.AssertTrue(m.IsEmpty())
	for i := 0; i < 10; i++ {
		biff.AssertFalse(m.ContainsKey(i))
		_, ok := m.Get(i)
		biff.AssertFalse(ok)
	}
	biff.AssertEqual(m.Capacity(), capacity)

	// freed slots are reused, lowest first, before growing
	for i := 0; i < 10; i++ {
		biff.AssertEqual(m.Insert(i), i)
	}
	biff.AssertEqual(m.Capacity(), capacity)
	biff.AssertEqual(m.Insert(10), 10)
}

func TestIndexMap_Growth(t *testing.T) {

	m := New[int]()
	biff.AssertEqual(m.Capacity(), 0)

	m.Insert(0)
	biff.AssertEqual(m.Capacity(), minCapacity)

	for i := 1; i < 5; i++ {
		m.Insert(i)
	}
	biff.AssertEqual(m.Capacity(), 2*minCapacity)

	// keys never move when the slots are reallocated
	for i := 0; i < 5; i++ {
		biff.AssertEqual(m.MustGet(i), i)
	}
}

func TestIndexMap_WithCapacity(t *testing.T) {

	m := WithCapacity[int](0)
	biff.AssertEqual(m.Capacity(), 0)
	biff.AssertEqual(m.Insert(1), 0)
	biff.AssertTrue(m.ContainsKey(0))
	biff.AssertFalse(m.ContainsKey(1))

	m = WithCapacity[int](100)
	biff.AssertEqual(m.Capacity(), 100)
	biff.AssertEqual(m.Len(), 0)

	m.Reserve(0)
	biff.AssertEqual(m.Capacity(), 100)
	m.Reserve(200)
	biff.AssertEqual(m.Capacity(), 200)
}

func TestIndexMap_ZeroValue(t *testing.T) {

	var m IndexMap[string]

	_, ok := m.Remove(0)
	biff.AssertFalse(ok)

	biff.AssertEqual(m.Insert("a"), 0)
	biff.AssertEqual(m.Insert("b"), 1)
	m.Remove(0)
	biff.AssertEqual(m.Insert("c"), 0)
}

func TestIndexMap_MustGetPanics(t *testing.T) {

	m := New[string]()
	m.Insert("a")
	m.Remove(0)

	var recovered any
	func() {
		defer func() {
			recovered = recover()
		}()
		m.MustGet(0)
	}()

	err, ok := recovered.(error)
	biff.AssertTrue(ok)
	biff.AssertTrue(errors.Is(err, ErrKeyNotFound))
}

func TestIndexMap_Retain(t *testing.T) {

	m := New[int]()
	for i := 0; i < 8; i++ {
		m.Insert(i)
	}

	visited := []int{}
	m.Retain(func(key int, value *int) bool {
		visited = append(visited, key)
		*value *= 10
		return key%2 == 0
	})

	biff.AssertEqual(visited, []int{0, 1, 2, 3, 4, 5, 6, 7})
	biff.AssertEqual(m.Len(), 4)
	biff.AssertEqual(m.String(), "indexmap[0:0 2:20 4:40 6:60]")

	// the last removed key is reused first
	biff.AssertEqual(m.Insert(-1), 7)
	biff.AssertEqual(m.Insert(-1), 5)
}

func TestIndexMap_Clone(t *testing.T) {

	m := New[int]()
	m.Insert(2)
	m.Insert(4)
	m.Insert(6)
	m.Remove(1)

	c := m.Clone()

	biff.AssertTrue(Equal(m, c))
	biff.AssertEqual(c.MustGet(0), 2)
	biff.AssertEqual(c.MustGet(2), 6)
	biff.AssertEqual(c.Len(), 2)

	// both recycle the same key
	biff.AssertEqual(c.Insert(8), m.Insert(8))

	c.Insert(10)
	biff.AssertFalse(Equal(m, c))
	biff.AssertFalse(m.ContainsKey(3))

	deep := New[[]int]()
	deep.Insert([]int{1})
	copied := deep.CloneFunc(func(v []int) []int {
		return append([]int(nil), v...)
	})
	copied.MustGet(0)[0] = 100
	biff.AssertEqual(deep.MustGet(0), []int{1})
}

func TestEqual(t *testing.T) {

	a := New[string]()
	b := New[string]()
	biff.AssertTrue(Equal(a, b))

	a.Insert("x")
	b.Insert("x")
	biff.AssertTrue(Equal(a, b))

	a.Insert("y")
	a.Remove(1)
	biff.AssertFalse(Equal(a, b))

	b.Insert("z")
	b.Remove(1)
	biff.AssertTrue(Equal(a, b))
}

func TestEqual_Nil(t *testing.T) {

	var none *IndexMap[string]
	biff.AssertTrue(Equal(none, nil))
	biff.AssertFalse(Equal(none, New[string]()))
	biff.AssertFalse(Equal(New[string](), none))
}
