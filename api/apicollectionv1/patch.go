package apicollectionv1

import (
	"context"
	"fmt"
	"net/http"
)

type patchInput struct {
	traverseInput
	Patch map[string]any `json:"patch"`
}

// patch sets every path of the patch in the selected documents. A null value
// deletes the path.
func patch(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	input := patchInput{
		traverseInput: newTraverseInput(),
	}
	err := readTraverseInput(ctx, r, &input)
	if err != nil {
		return err
	}

	if len(input.Patch) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		return fmt.Errorf("patch is mandatory")
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
		row, err := col.Patch(*input.Key, input.Patch)
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

	patched, err := col.PatchBy(q, input.Patch)
	writeRows(w, patched)
	return err
}
