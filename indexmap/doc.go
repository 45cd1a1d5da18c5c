// Package indexmap provides a map whose keys are generated by the map itself.
//
// Insert takes only a value and returns the key it was stored under. Keys are
// small non-negative integers: the position of the value inside a contiguous
// slice of slots. Removing a value turns its slot into a link of an intrusive
// free list, and the next Insert reuses the most recently freed slot before
// the slice grows.
//
//	processes := indexmap.New[string]()
//
//	vim := processes.Insert("vim")             // 0
//	cargo := processes.Insert("cargo")         // 1
//	processes.Insert("rust-analyser")          // 2
//
//	processes.Remove(cargo)
//	processes.Insert("x")                      // 1 again
//
//	for pid, name := range processes.All() {
//		fmt.Println(pid, name)
//	}
//
//	fmt.Println(processes.MustGet(vim))
//
// Recycled keys carry no generation: a key kept after its value was removed
// may point to a different value later on.
//
// An IndexMap is not safe for concurrent use. Callers sharing one must guard
// it with their own lock.
package indexmap
