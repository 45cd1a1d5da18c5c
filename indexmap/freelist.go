package indexmap

// freeList is a LIFO stack of vacant slot indexes threaded through the slots
// themselves. Only the head lives outside of the storage.
//
// top is head+1 so that the zero freeList is empty.
type freeList[T any] struct {
	top int
}

func (f *freeList[T]) head() int {
	return f.top - 1
}

func (f *freeList[T]) setHead(i int) {
	f.top = i + 1
}

func (f *freeList[T]) empty() bool {
	return f.top == 0
}

// push links the vacant slot i in front of the current head.
func (f *freeList[T]) push(s *storage[T], i int) {
	s.link(i, f.head())
	f.setHead(i)
}

// pop unlinks the head and returns it. ok is false when there is no vacant
// slot left and the storage has to grow instead.
func (f *freeList[T]) pop(s *storage[T]) (i int, ok bool) {
	if f.empty() {
		return noIndex, false
	}
	i = f.head()
	f.setHead(s.nextFree(i))
	s.link(i, noIndex)
	return i, true
}

// rebuild chains every slot of s in ascending order, lowest index first. All
// slots must be vacant.
func (f *freeList[T]) rebuild(s *storage[T]) {
	n := s.len()
	if n == 0 {
		f.setHead(noIndex)
		return
	}
	for i := 0; i < n-1; i++ {
		s.link(i, i+1)
	}
	s.link(n-1, noIndex)
	f.setHead(0)
}

// drop unlinks every index >= limit, keeping the relative order of the rest.
func (f *freeList[T]) drop(s *storage[T], limit int) {
	prev := noIndex
	for i := f.head(); i != noIndex; {
		next := s.nextFree(i)
		switch {
		case i < limit:
			prev = i
		case prev == noIndex:
			f.setHead(next)
		default:
			s.link(prev, next)
		}
		i = next
	}
}

// walk returns the free indexes from head to tail.
func (f *freeList[T]) walk(s *storage[T]) []int {
	var result []int
	for i := f.head(); i != noIndex; i = s.nextFree(i) {
		result = append(result, i)
	}
	return result
}
