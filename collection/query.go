package collection

import (
	"fmt"

	"github.com/SierraSoftworks/connor"
)

// Query selects documents with a connor filter. Skip documents are matched
// and discarded, Limit < 0 means no limit. Documents are visited in key order
// unless Index names an index to traverse with IndexOptions.
type Query struct {
	Filter       map[string]interface{} `json:"filter"`
	Skip         int64                  `json:"skip"`
	Limit        int64                  `json:"limit"`
	Index        string                 `json:"index"`
	IndexOptions []byte                 `json:"-"`
}

func (q *Query) match(row *Row) (bool, error) {
	if len(q.Filter) == 0 {
		return true, nil
	}
	return connor.Match(q.Filter, row.Decoded)
}

func (c *Collection) traverse(q *Query, f func(row *Row) bool) error {
	if q.Index == "" {
		for _, row := range c.rows.All() {
			if !f(row) {
				return nil
			}
		}
		return nil
	}

	index, ok := c.indexes[q.Index]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrIndexNotFound, q.Index)
	}

	return index.Traverse(q.IndexOptions, f)
}

func (c *Collection) traverseFilter(q *Query, f func(row *Row) bool) error {
	skip := q.Skip
	limit := q.Limit
	if limit == 0 {
		return nil
	}

	var matchErr error
	err := c.traverse(q, func(row *Row) bool {
		match, err := q.match(row)
		if err != nil {
			matchErr = fmt.Errorf("match: %w", err)
			return false
		}
		if !match {
			return true
		}
		if skip > 0 {
			skip--
			return true
		}
		if !f(row) {
			return false
		}
		limit--
		return limit != 0
	})
	if err != nil {
		return err
	}

	return matchErr
}

// TraverseFilter visits the documents selected by q.
// f must not call back into the collection.
func (c *Collection) TraverseFilter(q *Query, f func(row *Row) bool) error {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.traverseFilter(q, f)
}

func (c *Collection) selectKeys(q *Query) ([]int, error) {
	keys := []int{}
	err := c.traverseFilter(q, func(row *Row) bool {
		keys = append(keys, row.I)
		return true
	})
	return keys, err
}

// RemoveBy removes the documents selected by q and returns them.
func (c *Collection) RemoveBy(q *Query) ([]*Row, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys, err := c.selectKeys(q)
	if err != nil {
		return nil, err
	}

	removed := make([]*Row, 0, len(keys))
	for _, key := range keys {
		row, err := c.removeByKey(key)
		if err != nil {
			return removed, err
		}
		removed = append(removed, row)
	}

	return removed, nil
}

// PatchBy applies patch to the documents selected by q and returns them
// patched.
func (c *Collection) PatchBy(q *Query, patch map[string]any) ([]*Row, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	keys, err := c.selectKeys(q)
	if err != nil {
		return nil, err
	}

	patched := make([]*Row, 0, len(keys))
	for _, key := range keys {
		row, err := c.patchByKey(key, patch)
		if err != nil {
			return patched, err
		}
		patched = append(patched, row)
	}

	return patched, nil
}
