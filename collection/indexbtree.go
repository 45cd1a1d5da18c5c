package collection

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/btree"
)

type IndexBtree struct {
	Btree   *btree.BTreeG[*RowOrdered]
	Options *IndexBTreeOptions
}

type IndexBTreeOptions struct {
	Fields []string `json:"fields"`
	Sparse bool     `json:"sparse"`
	Unique bool     `json:"unique"`
}

type IndexBtreeTraverse struct {
	Reverse bool                   `json:"reverse"`
	From    map[string]interface{} `json:"from"`
	To      map[string]interface{} `json:"to"`
}

// RowOrdered is a btree item. Pivots used to traverse ranges have no Row.
type RowOrdered struct {
	*Row
	Values []interface{}
}

func (r *RowOrdered) key() int {
	if r.Row == nil {
		return -1
	}
	return r.Row.I
}

// typeRank orders values of different JSON types: null, bool, number,
// string, array, object.
func typeRank(v interface{}) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	case []interface{}:
		return 4
	case map[string]interface{}:
		return 5
	}
	return 6
}

// compareValue is a total order over decoded JSON values. Arrays and objects
// are compared by their encoding, object keys are encoded sorted.
func compareValue(a, b interface{}) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}

	switch a := a.(type) {
	case nil:
		return 0
	case bool:
		if a == b.(bool) {
			return 0
		}
		if !a {
			return -1
		}
		return 1
	case float64:
		return cmp.Compare(a, b.(float64))
	case string:
		return strings.Compare(a, b.(string))
	}

	encodedA, _ := json.Marshal(a)
	encodedB, _ := json.Marshal(b)
	return bytes.Compare(encodedA, encodedB)
}

func NewIndexBTree(options *IndexBTreeOptions) *IndexBtree {

	index := btree.NewG(32, func(a, b *RowOrdered) bool {

		for i, valA := range a.Values {
			c := compareValue(valA, b.Values[i])
			if c == 0 {
				continue
			}

			if strings.HasPrefix(options.Fields[i], "-") {
				return c > 0
			}
			return c < 0
		}

		if options.Unique {
			return false
		}

		// Equal values are kept apart by document key
		return a.key() < b.key()
	})

	return &IndexBtree{
		Btree:   index,
		Options: options,
	}
}

func (b *IndexBtree) values(r *Row) ([]interface{}, string) {
	values := make([]interface{}, 0, len(b.Options.Fields))
	for _, field := range b.Options.Fields {
		field = strings.TrimPrefix(field, "-")
		value, exists := r.Decoded[field]
		if !exists {
			return nil, field
		}
		values = append(values, value)
	}
	return values, ""
}

func (b *IndexBtree) AddRow(r *Row) error {
	values, missing := b.values(r)
	if missing != "" {
		if b.Options.Sparse {
			return nil
		}
		return fmt.Errorf("field '%s' not defined", missing)
	}

	item := &RowOrdered{
		Row:    r,
		Values: values,
	}

	if b.Options.Unique && b.Btree.Has(item) {
		errKey := ""
		for i, field := range b.Options.Fields {
			pair := fmt.Sprint(field, ":", values[i])
			if errKey != "" {
				errKey += "," + pair
			} else {
				errKey = pair
			}
		}
		return fmt.Errorf("key (%s) already exists", errKey)
	}

	b.Btree.ReplaceOrInsert(item)

	return nil
}

func (b *IndexBtree) RemoveRow(r *Row) error {
	values, missing := b.values(r)
	if missing != "" {
		return nil
	}

	item := &RowOrdered{
		Row:    r,
		Values: values,
	}

	if found, ok := b.Btree.Get(item); ok && found.Row == r {
		b.Btree.Delete(item)
	}

	return nil
}

func (b *IndexBtree) pivot(values map[string]interface{}) *RowOrdered {
	pivot := &RowOrdered{}
	for _, field := range b.Options.Fields {
		field = strings.TrimPrefix(field, "-")
		pivot.Values = append(pivot.Values, values[field])
	}
	return pivot
}

func (b *IndexBtree) Traverse(optionsData []byte, f func(*Row) bool) error {

	options := &IndexBtreeTraverse{}
	if len(optionsData) > 0 {
		err := json.Unmarshal(optionsData, options)
		if err != nil {
			return fmt.Errorf("traverse options: %w", err)
		}
	}

	iterator := func(r *RowOrdered) bool {
		return f(r.Row)
	}

	hasFrom := len(options.From) > 0
	hasTo := len(options.To) > 0

	pivotFrom := b.pivot(options.From)
	pivotTo := b.pivot(options.To)

	if !hasFrom && !hasTo {
		if options.Reverse {
			b.Btree.Descend(iterator)
		} else {
			b.Btree.Ascend(iterator)
		}
	} else if hasFrom && !hasTo {
		if options.Reverse {
			b.Btree.DescendGreaterThan(pivotFrom, iterator)
		} else {
			b.Btree.AscendGreaterOrEqual(pivotFrom, iterator)
		}
	} else if !hasFrom && hasTo {
		if options.Reverse {
			b.Btree.DescendLessOrEqual(pivotTo, iterator)
		} else {
			b.Btree.AscendLessThan(pivotTo, iterator)
		}
	} else {
		if options.Reverse {
			b.Btree.DescendRange(pivotTo, pivotFrom, iterator)
		} else {
			b.Btree.AscendRange(pivotFrom, pivotTo, iterator)
		}
	}

	return nil
}
