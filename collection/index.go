package collection

import (
	"errors"
	"fmt"

	"github.com/fulldump/slotdb/utils"
)

// Index keeps an ordering or lookup of the rows of a collection. It is
// guarded by the collection mutex.
type Index interface {
	AddRow(row *Row) error
	RemoveRow(row *Row) error
	Traverse(options []byte, f func(row *Row) bool) error
}

type CollectionIndex struct {
	Index
	Type    string
	Options any
}

type CreateIndexOptions struct {
	Type    string `json:"type"`
	Options any    `json:"options"`
}

func newIndexOptions(kind string) (any, error) {
	switch kind {
	case "map":
		return &IndexMapOptions{}, nil
	case "btree":
		return &IndexBTreeOptions{}, nil
	}
	return nil, fmt.Errorf("unexpected index type '%s', must be [map|btree]", kind)
}

func newIndex(options any) Index {
	switch options := options.(type) {
	case *IndexMapOptions:
		return NewIndexMap(options)
	case *IndexBTreeOptions:
		return NewIndexBTree(options)
	}
	return nil
}

func (c *Collection) CreateIndex(name string, options *CreateIndexOptions) error {
	if name == "" {
		return errors.New("index name is mandatory")
	}

	typed, err := newIndexOptions(options.Type)
	if err != nil {
		return err
	}
	if options.Options != nil {
		err = utils.Remarshal(options.Options, typed)
		if err != nil {
			return fmt.Errorf("index options: %w", err)
		}
	}

	switch typed := typed.(type) {
	case *IndexMapOptions:
		if typed.Field == "" {
			return errors.New("map index needs a field")
		}
	case *IndexBTreeOptions:
		if len(typed.Fields) == 0 {
			return errors.New("btree index needs at least one field")
		}
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.indexes[name]; exists {
		return fmt.Errorf("%w: '%s'", ErrIndexExists, name)
	}

	index := &CollectionIndex{
		Index:   newIndex(typed),
		Type:    options.Type,
		Options: typed,
	}

	for _, row := range c.rows.All() {
		err := index.AddRow(row)
		if err != nil {
			return fmt.Errorf("index row %d: %w", row.I, err)
		}
	}

	c.indexes[name] = index

	return nil
}

func (c *Collection) DropIndex(name string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.indexes[name]; !exists {
		return fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}

	delete(c.indexes, name)
	return nil
}

// Indexes returns a snapshot of the index definitions by name.
func (c *Collection) Indexes() map[string]*CollectionIndex {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	result := make(map[string]*CollectionIndex, len(c.indexes))
	for name, index := range c.indexes {
		result[name] = index
	}
	return result
}

func (c *Collection) GetIndex(name string) (*CollectionIndex, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, ok := c.indexes[name]
	return index, ok
}

// TraverseIndex visits the rows of index name as its options select them.
func (c *Collection) TraverseIndex(name string, options []byte, f func(row *Row) bool) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	index, ok := c.indexes[name]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrIndexNotFound, name)
	}

	return index.Traverse(options, f)
}

func indexInsert(indexes map[string]*CollectionIndex, row *Row) (err error) {

	// Roll back the indexes already updated if one of them fails
	done := []*CollectionIndex{}
	defer func() {
		if err == nil {
			return
		}
		for _, index := range done {
			index.RemoveRow(row)
		}
	}()

	for name, index := range indexes {
		err = index.AddRow(row)
		if err != nil {
			return fmt.Errorf("%w: index '%s': %s", ErrIndexConflict, name, err.Error())
		}
		done = append(done, index)
	}

	return nil
}

func indexRemove(indexes map[string]*CollectionIndex, row *Row) (err error) {
	for name, index := range indexes {
		err = index.RemoveRow(row)
		if err != nil {
			return fmt.Errorf("index remove '%s': %w", name, err)
		}
	}

	return nil
}
