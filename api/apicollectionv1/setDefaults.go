package apicollectionv1

import (
	"context"
	"encoding/json"
	"net/http"
)

type setDefaultsInput map[string]any

// setDefaults merges the input into the collection defaults. A null value
// removes a default.
func setDefaults(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

	col, err := getOrCreateCurrentCollection(ctx)
	if err != nil {
		return err
	}

	defaults := setDefaultsInput{}
	for k, v := range col.GetDefaults() {
		defaults[k] = v
	}

	err = json.NewDecoder(r.Body).Decode(&defaults)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return err
	}

	for k, v := range defaults {
		if v == nil {
			delete(defaults, k)
		}
	}

	if len(defaults) == 0 {
		defaults = nil
	}

	col.SetDefaults(defaults)

	return json.NewEncoder(w).Encode(defaults)
}
