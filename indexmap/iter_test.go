package indexmap

import (
	"testing"

	"github.com/fulldump/biff"
)

func collectKeys(m *IndexMap[string]) []int {
	keys := []int{}
	for k := range m.Keys() {
		keys = append(keys, k)
	}
	return keys
}

func TestIter(t *testing.T) {

	biff.Alternative("Map with a hole", func(a *biff.A) {

		m := New[string]()
		ka := m.Insert("a")
		kb := m.Insert("b")
		kc := m.Insert("c")
		m.Remove(kb)

		a.Alternative("All skips vacant slots", func(a *biff.A) {
			keys := []int{}
			values := []string{}
			for k, v := range m.All() {
				keys = append(keys, k)
				values = append(values, v)
			}
			biff.AssertEqual(keys, []int{ka, kc})
			biff.AssertEqual(values, []string{"a", "c"})
		})

		a.Alternative("Reused key is yielded in slot order", func(a *biff.A) {
			biff.AssertEqual(m.Insert("b"), kb)
			biff.AssertEqual(collectKeys(m), []int{0, 1, 2})
		})

		a.Alternative("Sequences are restartable", func(a *biff.A) {
			seq := m.Values()
			first := []string{}
			for v := range seq {
				first = append(first, v)
			}
			second := []string{}
			for v := range seq {
				second = append(second, v)
			}
			biff.AssertEqual(first, second)
		})

		a.Alternative("Early break", func(a *biff.A) {
			n := 0
			for range m.All() {
				n++
				break
			}
			biff.AssertEqual(n, 1)
		})

		a.Alternative("AllMut", func(a *biff.A) {
			for k, v := range m.AllMut() {
				*v += "!"
				_ = k
			}
			biff.AssertEqual(m.String(), "indexmap[0:a! 2:c!]")
		})

		a.Alternative("ValuesMut", func(a *biff.A) {
			for v := range m.ValuesMut() {
				*v = "z"
			}
			biff.AssertEqual(m.String(), "indexmap[0:z 2:z]")
		})

		a.Alternative("Drain", func(a *biff.A) {
			drained := map[int]string{}
			for k, v := range m.Drain() {
				drained[k] = v
			}
			biff.AssertEqual(drained, map[int]string{0: "a", 2: "c"})
			biff.AssertEqual(m.Len(), 0)
			biff.AssertEqual(collectKeys(m), []int{})
			biff.AssertEqual(m.Insert("new"), 0)
		})
	})
}

func TestIter_Empty(t *testing.T) {
	m := New[string]()
	biff.AssertEqual(collectKeys(m), []int{})
	biff.AssertEqual(m.String(), "indexmap[]")
}
