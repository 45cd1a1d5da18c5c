package apicollectionv1

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fulldump/slotdb/collection"
)

// createIndex takes name and type with the index options at the same level:
// {"name":"by-id","type":"map","field":"id"}.
func createIndex(ctx context.Context, w http.ResponseWriter, r *http.Request) (*listIndexesItem, error) {

	input := map[string]any{}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, err
	}

	name, _ := input["name"].(string)
	kind, _ := input["type"].(string)
	delete(input, "name")
	delete(input, "type")

	col, err := getOrCreateCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	err = col.CreateIndex(name, &collection.CreateIndexOptions{
		Type:    kind,
		Options: input,
	})
	if err != nil {
		return nil, err
	}

	index, _ := col.GetIndex(name)

	w.WriteHeader(http.StatusCreated)
	return newListIndexesItem(name, index), nil
}
