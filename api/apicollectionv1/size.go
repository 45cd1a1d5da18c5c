package apicollectionv1

import (
	"context"

	"github.com/fulldump/slotdb/collection"
)

type sizeResponse struct {
	Total    int `json:"total"`
	Capacity int `json:"capacity"`
}

func newSizeResponse(col *collection.Collection) *sizeResponse {
	return &sizeResponse{
		Total:    col.Len(),
		Capacity: col.Capacity(),
	}
}

// size reports the live documents and the slots reserved for them.
func size(ctx context.Context) (*sizeResponse, error) {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	return newSizeResponse(col), nil
}

// compact releases the free slots at the end of the collection.
func compact(ctx context.Context) (*sizeResponse, error) {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	col.Compact()

	return newSizeResponse(col), nil
}

// clearCollection removes every document and keeps the indexes definitions.
func clearCollection(ctx context.Context) (*sizeResponse, error) {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	col.Clear()

	return newSizeResponse(col), nil
}
