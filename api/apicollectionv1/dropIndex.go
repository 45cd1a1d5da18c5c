package apicollectionv1

import (
	"context"
	"net/http"
)

type dropIndexRequest struct {
	Name string `json:"name"`
}

func dropIndex(ctx context.Context, w http.ResponseWriter, input *dropIndexRequest) error {

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return err
	}

	err = col.DropIndex(input.Name)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
