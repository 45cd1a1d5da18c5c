package apicollectionv1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/service"
)

type CollectionResponse struct {
	Name     string         `json:"name"`
	Total    int            `json:"total"`
	Indexes  int            `json:"indexes"`
	Defaults map[string]any `json:"defaults"`
}

func newCollectionResponse(col *collection.Collection) *CollectionResponse {
	return &CollectionResponse{
		Name:     col.Name,
		Total:    col.Len(),
		Indexes:  len(col.Indexes()),
		Defaults: col.GetDefaults(),
	}
}

// documentResponse is the wire form of a stored document and its key.
type documentResponse struct {
	Key      int             `json:"key"`
	Document json.RawMessage `json:"document"`
}

func newDocumentResponse(row *collection.Row) *documentResponse {
	return &documentResponse{
		Key:      row.I,
		Document: row.Payload,
	}
}

func writeRow(w http.ResponseWriter) func(row *collection.Row) bool {
	e := json.NewEncoder(w)
	return func(row *collection.Row) bool {
		err := e.Encode(newDocumentResponse(row))
		return err == nil
	}
}

func writeRows(w http.ResponseWriter, rows []*collection.Row) {
	f := writeRow(w)
	for _, row := range rows {
		if !f(row) {
			return
		}
	}
}

func getCurrentCollection(ctx context.Context) (*collection.Collection, error) {
	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	return s.GetCollection(collectionName)
}

// getOrCreateCurrentCollection creates the collection on first use.
func getOrCreateCurrentCollection(ctx context.Context) (*collection.Collection, error) {
	s := GetServicer(ctx)
	collectionName := box.GetUrlParameter(ctx, "collectionName")
	col, err := s.GetCollection(collectionName)
	if errors.Is(err, service.ErrorCollectionNotFound) {
		col, err = s.CreateCollection(collectionName)
		if errors.Is(err, service.ErrorCollectionAlreadyExists) {
			return s.GetCollection(collectionName)
		}
	}
	return col, err
}
