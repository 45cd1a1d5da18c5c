package service

import (
	"net/http"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

func TestSave(t *testing.T) {

	api := apitest.NewWithHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "req-1")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key":0,"document":{"name":"Pablo"}}` + "\n" + `{"key":3,"document":{"name":"Sara"}}` + "\n"))
	}))

	resp := api.Request("POST", "/v1/collections/people:insert").
		WithBodyString(`{"name":"Pablo"}{"name":"Sara"}`).
		Do()

	biff.AssertEqual(DocumentKeys(resp.BodyString()), []int{0, 3})

	example := FormatExample(resp, "Insert documents", "")
	biff.AssertTrue(strings.Contains(example, `curl -X POST "https://slotdb.example.com/v1/collections/people:insert"`))
	biff.AssertTrue(strings.Contains(example, `{"document":{"name":"Pablo"},"key":0}`+"\n"+`{"document":{"name":"Sara"},"key":3}`))
	biff.AssertTrue(strings.Contains(example, "Document keys in the response: 0, 3\n"))
	biff.AssertTrue(strings.Contains(example, "Request id: `req-1`"))

	dir := t.TempDir()
	t.Setenv("API_EXAMPLES_PATH", dir)
	Save(resp, "Insert documents", "")

	saved, err := os.ReadFile(path.Join(dir, "insert_documents.md"))
	biff.AssertNil(err)
	biff.AssertEqual(string(saved), example)
}

func TestDocumentKeys_NotDocuments(t *testing.T) {
	biff.AssertEqual(DocumentKeys(`{"name":"my-collection","total":0}`), []int{})
	biff.AssertEqual(DocumentKeys(`not json`), []int{})
	biff.AssertEqual(DocumentKeys(``), []int{})
}
