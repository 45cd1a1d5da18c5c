package apicollectionv1

import (
	"encoding/json"
	"testing"

	"github.com/fulldump/biff"
)

func TestTraverseInput(t *testing.T) {

	parse := func(body string) traverseInput {
		input := newTraverseInput()
		json.Unmarshal([]byte(body), &input)
		return input
	}

	biff.Alternative("Traverse input", func(a *biff.A) {

		a.Alternative("Defaults to fullscan with limit 1", func(a *biff.A) {
			input := parse(`{}`)
			mode, err := input.mode()
			biff.AssertNil(err)
			biff.AssertEqual(mode, modeFullscan)
			biff.AssertEqual(input.Limit, int64(1))
		})

		a.Alternative("Key infers mode", func(a *biff.A) {
			input := parse(`{"key":0}`)
			mode, err := input.mode()
			biff.AssertNil(err)
			biff.AssertEqual(mode, modeKey)
			biff.AssertEqual(*input.Key, 0)
		})

		a.Alternative("Index infers mode", func(a *biff.A) {
			input := parse(`{"index":"by-id","value":"3"}`)
			mode, err := input.mode()
			biff.AssertNil(err)
			biff.AssertEqual(mode, modeIndex)

			q, err := input.query()
			biff.AssertNil(err)
			biff.AssertEqual(q.Index, "by-id")
			biff.AssertEqual(string(q.IndexOptions), `{"value":"3"}`)
		})

		a.Alternative("Btree options", func(a *biff.A) {
			input := parse(`{"index":"by-age","from":{"age":3},"reverse":true,"limit":-1}`)
			q, err := input.query()
			biff.AssertNil(err)
			biff.AssertEqual(q.Limit, int64(-1))
			biff.AssertEqual(string(q.IndexOptions), `{"from":{"age":3},"reverse":true}`)
		})

		a.Alternative("Key mode without key", func(a *biff.A) {
			input := parse(`{"mode":"key"}`)
			_, err := input.mode()
			biff.AssertEqual(err.Error(), "mode 'key' needs a key")
		})

		a.Alternative("Index mode without index", func(a *biff.A) {
			input := parse(`{"mode":"index"}`)
			_, err := input.mode()
			biff.AssertEqual(err.Error(), "mode 'index' needs an index")
		})

		a.Alternative("Bad mode", func(a *biff.A) {
			input := parse(`{"mode":"unique"}`)
			_, err := input.mode()
			biff.AssertEqual(err.Error(), "bad mode 'unique', must be [fullscan|index|key]")
		})
	})
}
