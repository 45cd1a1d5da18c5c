package collection

import (
	"encoding/json"
)

// Row is an immutable stored document. I is the key the collection's
// IndexMap assigned to it; it may be reused by another row once this one is
// removed.
type Row struct {
	I       int
	Payload json.RawMessage
	Decoded map[string]any
}
