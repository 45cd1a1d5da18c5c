package apicollectionv1

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/utils"
)

type listIndexesItem struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Options interface{} `json:"options"`
}

func newListIndexesItem(name string, index *collection.CollectionIndex) *listIndexesItem {
	return &listIndexesItem{
		Name:    name,
		Type:    index.Type,
		Options: index.Options,
	}
}

// MarshalJSON flattens the options next to name and type.
func (l *listIndexesItem) MarshalJSON() ([]byte, error) {

	result := map[string]interface{}{}
	utils.Remarshal(l.Options, &result)
	result["name"] = l.Name
	result["type"] = l.Type

	return json.Marshal(result)
}

func listIndexes(ctx context.Context) ([]*listIndexesItem, error) {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	result := []*listIndexesItem{}
	for name, index := range col.Indexes() {
		result = append(result, newListIndexesItem(name, index))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result, nil
}
