package apicollectionv1

import (
	"context"
	"fmt"

	"github.com/fulldump/slotdb/collection"
)

type getIndexInput struct {
	Name string `json:"name"`
}

func getIndex(ctx context.Context, input *getIndexInput) (*listIndexesItem, error) {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	index, ok := col.GetIndex(input.Name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", collection.ErrIndexNotFound, input.Name)
	}

	return newListIndexesItem(input.Name, index), nil
}
