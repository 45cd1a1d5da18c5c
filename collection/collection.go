package collection

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/fulldump/slotdb/indexmap"
)

// Collection stores documents under keys generated by an IndexMap. The map
// itself is not safe for concurrent use, every access goes through mutex.
type Collection struct {
	Name     string
	rows     *indexmap.IndexMap[*Row]
	mutex    *sync.RWMutex
	indexes  map[string]*CollectionIndex
	defaults map[string]any
	auto     int64
}

func NewCollection(name string, capacity int) *Collection {
	return &Collection{
		Name:    name,
		rows:    indexmap.WithCapacity[*Row](capacity),
		mutex:   &sync.RWMutex{},
		indexes: map[string]*CollectionIndex{},
	}
}

func (c *Collection) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.rows.Len()
}

func (c *Collection) Capacity() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.rows.Capacity()
}

func newRow(payload []byte) (*Row, error) {
	decoded := map[string]any{}
	err := jsonv2.Unmarshal(payload, &decoded)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	return &Row{
		Payload: payload,
		Decoded: decoded,
	}, nil
}

func (c *Collection) Insert(item map[string]any) (*Row, error) {
	auto := atomic.AddInt64(&c.auto, 1)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	for k, v := range c.defaults {
		if item[k] != nil {
			continue
		}
		var value any
		switch v {
		case "uuid()":
			value = uuid.NewString()
		case "unixnano()":
			value = time.Now().UnixNano()
		case "auto()":
			value = auto
		default:
			value = v
		}
		item[k] = value
	}

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("json encode payload: %w", err)
	}

	row, err := newRow(payload)
	if err != nil {
		return nil, err
	}

	row.I = c.rows.Insert(row)

	err = indexInsert(c.indexes, row)
	if err != nil {
		c.rows.Remove(row.I)
		return nil, err
	}

	return row, nil
}

func (c *Collection) Get(key int) (*Row, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.rows.Get(key)
}

// GetField reads path (gjson syntax) from the document stored under key.
func (c *Collection) GetField(key int, path string) (gjson.Result, error) {
	row, ok := c.Get(key)
	if !ok {
		return gjson.Result{}, fmt.Errorf("%w: %d", ErrDocumentNotFound, key)
	}
	return gjson.GetBytes(row.Payload, path), nil
}

func (c *Collection) Remove(key int) (*Row, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.removeByKey(key)
}

func (c *Collection) removeByKey(key int) (*Row, error) {
	row, ok := c.rows.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDocumentNotFound, key)
	}

	err := indexRemove(c.indexes, row)
	if err != nil {
		return nil, fmt.Errorf("could not free index: %w", err)
	}

	c.rows.Remove(key)

	return row, nil
}

// Patch sets every path of patch (sjson syntax) in the document stored under
// key. A nil value deletes the path.
func (c *Collection) Patch(key int, patch map[string]any) (*Row, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.patchByKey(key, patch)
}

// SetField is Patch for a single path.
func (c *Collection) SetField(key int, path string, value any) (*Row, error) {
	return c.Patch(key, map[string]any{path: value})
}

func (c *Collection) patchByKey(key int, patch map[string]any) (*Row, error) {
	slot, ok := c.rows.GetMut(key)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrDocumentNotFound, key)
	}
	old := *slot

	payload := []byte(old.Payload)
	for path, value := range patch {
		var err error
		if value == nil {
			payload, err = sjson.DeleteBytes(payload, path)
		} else {
			payload, err = sjson.SetBytes(payload, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot apply patch '%s': %w", path, err)
		}
	}

	row, err := newRow(payload)
	if err != nil {
		return nil, err
	}
	row.I = key

	err = indexRemove(c.indexes, old)
	if err != nil {
		return nil, fmt.Errorf("indexRemove: %w", err)
	}

	err = indexInsert(c.indexes, row)
	if err != nil {
		err = fmt.Errorf("indexInsert: %w", err)
		rollbackErr := indexInsert(c.indexes, old)
		if rollbackErr != nil {
			return nil, errors.Join(err, fmt.Errorf("restore document %d: %w", key, rollbackErr))
		}
		return nil, err
	}

	*slot = row

	return row, nil
}

// Traverse visits the documents in ascending key order until f returns false.
// f must not call back into the collection.
func (c *Collection) Traverse(f func(row *Row) bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	for _, row := range c.rows.All() {
		if !f(row) {
			return
		}
	}
}

// Clear removes every document. Keys start again from 0.
func (c *Collection) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.rows.Clear()
	for name, index := range c.indexes {
		c.indexes[name] = &CollectionIndex{
			Index:   newIndex(index.Options),
			Type:    index.Type,
			Options: index.Options,
		}
	}
}

// Compact releases the slots left free at the end of the collection.
func (c *Collection) Compact() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.rows.ShrinkToFit()
}

// SetDefaults sets the values Insert gives to missing fields. The string
// values "uuid()", "unixnano()" and "auto()" are generated per document.
func (c *Collection) SetDefaults(defaults map[string]any) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.defaults = defaults
}

func (c *Collection) GetDefaults() map[string]any {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.defaults == nil {
		return nil
	}
	result := make(map[string]any, len(c.defaults))
	for k, v := range c.defaults {
		result[k] = v
	}
	return result
}
