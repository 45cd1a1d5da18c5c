package apicollectionv1

import (
	"context"
	"net/http"
)

func remove(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

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

	if mode == modeKey {
		row, err := col.Remove(*input.Key)
		if err != nil {
			return err
		}
		writeRow(w)(row)
		return nil
	}

	if mode == modeFullscan {
		input.Index = ""
	}
	q, err := input.query()
	if err != nil {
		return err
	}

	removed, err := col.RemoveBy(q)
	writeRows(w, removed)
	return err
}
