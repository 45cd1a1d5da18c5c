package apicollectionv1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fulldump/box"

	"github.com/fulldump/slotdb/collection"
)

type fieldResponse struct {
	Key   int         `json:"key"`
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

func getDocumentKey(ctx context.Context) (int, error) {
	documentKey := strings.TrimSpace(box.GetUrlParameter(ctx, "documentKey"))
	key, err := strconv.Atoi(documentKey)
	if err != nil {
		box.GetResponse(ctx).WriteHeader(http.StatusBadRequest)
		return 0, fmt.Errorf("document key '%s' is not an integer", documentKey)
	}
	return key, nil
}

// getDocument returns the document stored under the key, or one of its
// fields when the query string has a path.
func getDocument(ctx context.Context, r *http.Request) (interface{}, error) {

	key, err := getDocumentKey(ctx)
	if err != nil {
		return nil, err
	}

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		row, ok := col.Get(key)
		if !ok {
			return nil, fmt.Errorf("%w: %d", collection.ErrDocumentNotFound, key)
		}
		return newDocumentResponse(row), nil
	}

	result, err := col.GetField(key, path)
	if err != nil {
		return nil, err
	}
	if !result.Exists() {
		box.GetResponse(ctx).WriteHeader(http.StatusNotFound)
		return nil, fmt.Errorf("path '%s' not found in document %d", path, key)
	}

	return &fieldResponse{
		Key:   key,
		Path:  path,
		Value: result.Value(),
	}, nil
}

func deleteDocument(ctx context.Context) (*documentResponse, error) {

	key, err := getDocumentKey(ctx)
	if err != nil {
		return nil, err
	}

	col, err := getCurrentCollection(ctx)
	if err != nil {
		return nil, err
	}

	row, err := col.Remove(key)
	if err != nil {
		return nil, err
	}

	return newDocumentResponse(row), nil
}
