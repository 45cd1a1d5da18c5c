package indexmap

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/fulldump/biff"
)

// TestIndexMap_Model runs random operations against the map and a plain Go map
// and compares them after every step.
func TestIndexMap_Model(t *testing.T) {

	for seed := int64(1); seed <= 20; seed++ {

		rnd := rand.New(rand.NewSource(seed))
		m := New[int]()
		model := map[int]int{}
		removed := []int{}

		for step := 0; step < 2000; step++ {
			switch op := rnd.Intn(100); {
			case op < 55:
				value := rnd.Int()
				key := m.Insert(value)
				if _, live := model[key]; live {
					t.Fatalf("seed %d step %d: key %d returned while live", seed, step, key)
				}
				if n := len(removed); n > 0 {
					// LIFO recycling
					if key != removed[n-1] {
						t.Fatalf("seed %d step %d: expected recycled key %d, got %d", seed, step, removed[n-1], key)
					}
					removed = removed[:n-1]
				}
				model[key] = value
			case op < 90:
				key := rnd.Intn(m.store.len() + 2)
				value, ok := m.Remove(key)
				expected, live := model[key]
				if ok != live || value != expected {
					t.Fatalf("seed %d step %d: remove %d = (%d, %v), expected (%d, %v)", seed, step, key, value, ok, expected, live)
				}
				if live {
					delete(model, key)
					removed = append(removed, key)
				}
			case op < 93:
				m.Retain(func(key int, value *int) bool {
					keep := *value%3 != 0
					if !keep {
						delete(model, key)
						removed = append(removed, key)
					}
					return keep
				})
			case op < 96:
				m.ShrinkToFit()
				removed = filterBelow(removed, m.store.len())
			case op < 97:
				m.Clear()
				model = map[int]int{}
				removed = removed[:0]
				for i := m.store.len() - 1; i >= 0; i-- {
					removed = append(removed, i)
				}
			default:
				c := m.Clone()
				if !Equal(m, c) {
					t.Fatalf("seed %d step %d: clone differs", seed, step)
				}
			}

			checkModel(t, m, model)
		}
	}
}

func filterBelow(keys []int, limit int) []int {
	result := keys[:0]
	for _, k := range keys {
		if k < limit {
			result = append(result, k)
		}
	}
	return result
}

func checkModel(t *testing.T, m *IndexMap[int], model map[int]int) {
	t.Helper()

	if m.Len() != len(model) {
		t.Fatalf("len %d, expected %d", m.Len(), len(model))
	}

	live := 0
	for k := 0; k < m.store.len(); k++ {
		if m.ContainsKey(k) {
			live++
		}
	}
	if live != m.Len() {
		t.Fatalf("%d live keys, len says %d", live, m.Len())
	}

	expectedKeys := make([]int, 0, len(model))
	for k := range model {
		expectedKeys = append(expectedKeys, k)
	}
	sort.Ints(expectedKeys)

	keys := []int{}
	for k, v := range m.All() {
		if model[k] != v {
			t.Fatalf("key %d holds %d, expected %d", k, v, model[k])
		}
		keys = append(keys, k)
	}
	if len(keys) != len(expectedKeys) {
		t.Fatalf("iterated %v, expected %v", keys, expectedKeys)
	}
	for i := range keys {
		if keys[i] != expectedKeys[i] {
			t.Fatalf("iterated %v, expected %v", keys, expectedKeys)
		}
	}

	free := map[int]bool{}
	for _, i := range m.free.walk(&m.store) {
		if free[i] || m.ContainsKey(i) {
			t.Fatalf("free list broken at %d", i)
		}
		free[i] = true
	}
	if len(free)+m.Len() != m.store.len() {
		t.Fatalf("%d free + %d live != %d slots", len(free), m.Len(), m.store.len())
	}
}

func TestIndexMap_Uniqueness(t *testing.T) {
	m := New[int]()
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		k := m.Insert(i)
		biff.AssertFalse(seen[k])
		seen[k] = true
	}
	biff.AssertEqual(len(seen), 1000)
}
