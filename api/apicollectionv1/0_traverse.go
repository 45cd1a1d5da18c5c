package apicollectionv1

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fulldump/slotdb/collection"
	"github.com/fulldump/slotdb/utils"
)

const (
	modeFullscan = "fullscan"
	modeKey      = "key"
	modeIndex    = "index"
)

var traverseModes = map[string]bool{
	modeFullscan: true,
	modeKey:      true,
	modeIndex:    true,
}

// traverseInput selects documents by key, by index or by a full scan. Mode
// is inferred from key and index when missing.
type traverseInput struct {
	Mode    string                 `json:"mode"`
	Filter  map[string]interface{} `json:"filter"`
	Skip    int64                  `json:"skip"`
	Limit   int64                  `json:"limit"`
	Key     *int                   `json:"key"`
	Index   string                 `json:"index"`
	Value   string                 `json:"value"`
	From    map[string]interface{} `json:"from"`
	To      map[string]interface{} `json:"to"`
	Reverse bool                   `json:"reverse"`
}

type indexTraverseOptions struct {
	Value   string                 `json:"value,omitempty"`
	From    map[string]interface{} `json:"from,omitempty"`
	To      map[string]interface{} `json:"to,omitempty"`
	Reverse bool                   `json:"reverse,omitempty"`
}

func newTraverseInput() traverseInput {
	return traverseInput{
		Limit: 1,
	}
}

func (t *traverseInput) mode() (string, error) {
	mode := t.Mode
	if mode == "" {
		switch {
		case t.Key != nil:
			mode = modeKey
		case t.Index != "":
			mode = modeIndex
		default:
			mode = modeFullscan
		}
	}

	if !traverseModes[mode] {
		return "", fmt.Errorf("bad mode '%s', must be [%s]", mode, strings.Join(utils.GetKeys(traverseModes), "|"))
	}
	if mode == modeKey && t.Key == nil {
		return "", fmt.Errorf("mode 'key' needs a key")
	}
	if mode == modeIndex && t.Index == "" {
		return "", fmt.Errorf("mode 'index' needs an index")
	}

	return mode, nil
}

func (t *traverseInput) query() (*collection.Query, error) {
	q := &collection.Query{
		Filter: t.Filter,
		Skip:   t.Skip,
		Limit:  t.Limit,
	}

	if t.Index != "" {
		options, err := json.Marshal(&indexTraverseOptions{
			Value:   t.Value,
			From:    t.From,
			To:      t.To,
			Reverse: t.Reverse,
		})
		if err != nil {
			return nil, fmt.Errorf("marshal traverse options: %w", err)
		}
		q.Index = t.Index
		q.IndexOptions = options
	}

	return q, nil
}

func traverse(t *traverseInput, mode string, col *collection.Collection, f func(row *collection.Row) bool) error {

	if mode == modeKey {
		row, ok := col.Get(*t.Key)
		if !ok {
			return fmt.Errorf("%w: %d", collection.ErrDocumentNotFound, *t.Key)
		}
		f(row)
		return nil
	}

	if mode == modeFullscan {
		t.Index = ""
	}

	q, err := t.query()
	if err != nil {
		return err
	}

	return col.TraverseFilter(q, f)
}
