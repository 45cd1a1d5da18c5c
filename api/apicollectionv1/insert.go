package apicollectionv1

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// insert reads a stream of JSON documents and replies one line per stored
// document with the key it got.
func insert(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	col, err := getOrCreateCurrentCollection(ctx)
	if err != nil {
		return err
	}

	jsonReader := jsontext.NewDecoder(r.Body)
	jsonWriter := json.NewEncoder(w)

	for i := 0; true; i++ {
		value, err := jsonReader.ReadValue()
		if errors.Is(err, io.EOF) {
			if i == 0 {
				w.WriteHeader(http.StatusNoContent)
			}
			return nil
		}
		if err != nil {
			if i == 0 {
				w.WriteHeader(http.StatusBadRequest)
			}
			return err
		}

		item := map[string]any{}
		err = jsonv2.Unmarshal(value, &item)
		if err != nil {
			if i == 0 {
				w.WriteHeader(http.StatusBadRequest)
			}
			return err
		}

		row, err := col.Insert(item)
		if err != nil {
			return err
		}

		if i == 0 {
			w.WriteHeader(http.StatusCreated)
		}
		jsonWriter.Encode(newDocumentResponse(row))
	}

	return nil
}
