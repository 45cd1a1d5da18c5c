package apicollectionv1

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/fulldump/box"
)

func readTraverseInput(ctx context.Context, r *http.Request, input any) error {
	requestBody, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(requestBody) == 0 {
		return nil
	}

	err = json.Unmarshal(requestBody, input)
	if err != nil {
		box.GetResponse(ctx).WriteHeader(http.StatusBadRequest)
		return err
	}
	return nil
}

func find(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	input := newTraverseInput()
	err := readTraverseInput(ctx, r, &input)
	if err != nil {
		return err
	}

	mode, err := input.mode()
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return err
	}

	return traverse(&input, mode, col, writeRow(w))
}
