package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulldump/box"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/database"
)

type PrettyError struct {
	Message     string `json:"message"`
	Description string `json:"description"`
}

func (p PrettyError) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"error": struct {
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			p.Message,
			p.Description,
		},
	})
}

func (p PrettyError) MarshalTo(w io.Writer) error {
	return json.NewEncoder(w).Encode(p)
}

// InterceptorUnavailable rejects requests while the database is not
// operating.
func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status != database.StatusOperating {
				err := fmt.Errorf("temporary unavailable: %s", status)
				box.SetError(ctx, err)

				w := box.GetResponse(ctx)
				w.WriteHeader(http.StatusServiceUnavailable)
				PrettyError{
					Message:     err.Error(),
					Description: "Service unavailable",
				}.MarshalTo(w)
				return
			}
			next(ctx)
		}
	}
}

// errorStatus maps an error to its http status and description.
func errorStatus(ctx context.Context, err error) (int, string) {

	var syntaxError *json.SyntaxError
	var jsontextError *jsontext.SyntacticError

	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, "user is not authenticated"
	case errors.Is(err, box.ErrResourceNotFound):
		return http.StatusNotFound, fmt.Sprintf("resource '%s' not found", box.GetRequest(ctx).URL.String())
	case errors.Is(err, box.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, fmt.Sprintf("method '%s' not allowed", box.GetRequest(ctx).Method)
	case errors.As(err, &syntaxError), errors.As(err, &jsontextError):
		return http.StatusBadRequest, "Malformed JSON"
	case errors.Is(err, database.ErrCollectionNotFound),
		errors.Is(err, collection.ErrDocumentNotFound),
		errors.Is(err, collection.ErrIndexNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, database.ErrCollectionExists),
		errors.Is(err, collection.ErrIndexExists),
		errors.Is(err, collection.ErrIndexConflict):
		return http.StatusConflict, "Conflict"
	}

	return http.StatusInternalServerError, "Unexpected error"
}

func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}
		w := box.GetResponse(ctx)

		status, description := errorStatus(ctx, err)

		// Handlers may have written a more specific status already
		w.WriteHeader(status)
		PrettyError{
			Message:     err.Error(),
			Description: description,
		}.MarshalTo(w)
	}
}
