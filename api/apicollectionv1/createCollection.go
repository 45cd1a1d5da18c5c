package apicollectionv1

import (
	"context"
	"net/http"
)

type createCollectionRequest struct {
	Name     string         `json:"name"`
	Defaults map[string]any `json:"defaults"`
}

func createCollection(ctx context.Context, w http.ResponseWriter, input *createCollectionRequest) (*CollectionResponse, error) {

	s := GetServicer(ctx)

	col, err := s.CreateCollection(input.Name)
	if err != nil {
		return nil, err
	}

	if len(input.Defaults) > 0 {
		col.SetDefaults(input.Defaults)
	}

	w.WriteHeader(http.StatusCreated)
	return newCollectionResponse(col), nil
}
