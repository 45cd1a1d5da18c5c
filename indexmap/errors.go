package indexmap

import "errors"

// ErrKeyNotFound is the value MustGet and MustGetMut panic with (wrapped)
// when the key is not live.
var ErrKeyNotFound = errors.New("indexmap: key not found")
