package collection

import (
	"encoding/json"
	"fmt"
)

// IndexMap is a unique index over a string field. Arrays of strings index
// every element.
type IndexMap struct {
	Entries map[string]*Row
	Options *IndexMapOptions
}

type IndexMapOptions struct {
	Field  string `json:"field"`
	Sparse bool   `json:"sparse"`
}

func NewIndexMap(options *IndexMapOptions) *IndexMap {
	return &IndexMap{
		Entries: map[string]*Row{},
		Options: options,
	}
}

func (i *IndexMap) values(row *Row) ([]string, bool, error) {
	field := i.Options.Field

	itemValue, itemExists := row.Decoded[field]
	if !itemExists {
		return nil, false, nil
	}

	switch value := itemValue.(type) {
	case string:
		return []string{value}, true, nil
	case []interface{}:
		result := make([]string, 0, len(value))
		for _, v := range value {
			s, ok := v.(string)
			if !ok {
				return nil, true, fmt.Errorf("field '%s' has a non string element", field)
			}
			result = append(result, s)
		}
		return result, true, nil
	}

	return nil, true, fmt.Errorf("field '%s' type not supported", field)
}

func (i *IndexMap) AddRow(row *Row) error {
	values, exists, err := i.values(row)
	if err != nil {
		return err
	}
	if !exists {
		if i.Options.Sparse {
			return nil
		}
		return fmt.Errorf("field '%s' is indexed and mandatory", i.Options.Field)
	}

	for _, value := range values {
		if _, exists := i.Entries[value]; exists {
			return fmt.Errorf("field '%s' with value '%s' already exists", i.Options.Field, value)
		}
	}
	for _, value := range values {
		i.Entries[value] = row
	}

	return nil
}

func (i *IndexMap) RemoveRow(row *Row) error {
	values, _, err := i.values(row)
	if err != nil {
		return err
	}

	for _, value := range values {
		if i.Entries[value] == row {
			delete(i.Entries, value)
		}
	}

	return nil
}

type IndexMapTraverse struct {
	Value string `json:"value"`
}

func (i *IndexMap) Traverse(optionsData []byte, f func(row *Row) bool) error {
	options := &IndexMapTraverse{}
	if len(optionsData) > 0 {
		err := json.Unmarshal(optionsData, options)
		if err != nil {
			return fmt.Errorf("traverse options: %w", err)
		}
	}

	row, ok := i.Entries[options.Value]
	if !ok {
		return nil
	}

	f(row)
	return nil
}
