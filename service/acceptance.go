package service

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

// DecodeLines decodes a body made of one JSON value per line. A decoding
// error is appended as its message.
func DecodeLines(body string) []interface{} {
	result, err := decodeValues(body)
	if err != nil {
		return append(result, err.Error())
	}
	return result
}

func decodeValues(body string) ([]interface{}, error) {
	result := []interface{}{}
	d := json.NewDecoder(strings.NewReader(body))
	for {
		var item interface{}
		err := d.Decode(&item)
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return result, err
		}
		result = append(result, item)
	}
}

func documentIds(body string) []interface{} {
	ids := []interface{}{}
	for _, line := range DecodeLines(body) {
		document := line.(JSON)["document"].(JSON)
		ids = append(ids, document["id"])
	}
	return ids
}

func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create collection", func(a *biff.A) {
		resp := apiRequest("POST", "/collections").
			WithBodyJson(JSON{
				"name": "my-collection",
			}).Do()
		Save(resp, "Create collection", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedBody := JSON{
			"name":     "my-collection",
			"total":    0,
			"indexes":  0,
			"defaults": nil,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedBody)

		a.Alternative("Create collection twice", func(a *biff.A) {
			resp := apiRequest("POST", "/collections").
				WithBodyJson(JSON{
					"name": "my-collection",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
		})

		a.Alternative("Retrieve collection", func(a *biff.A) {
			resp := apiRequest("GET", "/collections/my-collection").Do()
			Save(resp, "Retrieve collection", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedBody)
		})

		a.Alternative("List collections", func(a *biff.A) {
			resp := apiRequest("GET", "/collections").Do()
			Save(resp, "List collections", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedBody})
		})

		a.Alternative("Drop collection", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:dropCollection").
				Do()
			Save(resp, "Drop collection", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
			biff.AssertEqual(resp.BodyString(), "")

			a.Alternative("Get dropped collection", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection").
					Do()
				Save(resp, "Get collection - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Insert one", func(a *biff.A) {
			myDocument := JSON{
				"id":      "my-id",
				"name":    "Fulanez",
				"address": "Elm Street 11",
			}
			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyJson(myDocument).Do()
			Save(resp, "Insert one", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})

			a.Alternative("Find with fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"mode":  "fullscan",
						"skip":  0,
						"limit": 1,
						"filter": JSON{
							"name": "Fulanez",
						},
					}).Do()
				Save(resp, "Find - fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})
			})

			a.Alternative("Find by key", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"key": 0}).Do()
				Save(resp, "Find - by key", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})
			})

			a.Alternative("Find by missing key", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"key": 7}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Get document", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection/documents/0").Do()
				Save(resp, "Get document", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})
			})

			a.Alternative("Get document field", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection/documents/0").
					WithQuery("path", "name").Do()
				Save(resp, "Get document field", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "path": "name", "value": "Fulanez"})
			})

			a.Alternative("Get document bad key", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection/documents/abc").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Delete document", func(a *biff.A) {
				resp := apiRequest("DELETE", "/collections/my-collection/documents/0").Do()
				Save(resp, "Delete document", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})

				resp = apiRequest("GET", "/collections/my-collection/documents/0").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Patch by key", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:patch").
					WithBodyJson(JSON{
						"key":   0,
						"patch": JSON{"name": "Menganez", "address": nil},
					}).Do()
				Save(resp, "Patch - by key", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": JSON{"id": "my-id", "name": "Menganez"}})
			})
		})

		a.Alternative("Insert many", func(a *biff.A) {

			myDocuments := []JSON{
				{"id": "1", "name": "Alfonso"},
				{"id": "2", "name": "Gerardo"},
				{"id": "3", "name": "Alfonso"},
			}

			body := ""
			for _, myDocument := range myDocuments {
				myDocument, _ := json.Marshal(myDocument)
				body += string(myDocument) + "\n"
			}
			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyString(body).Do()
			Save(resp, "Insert many", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(DecodeLines(resp.BodyString()), []JSON{
				{"key": 0, "document": myDocuments[0]},
				{"key": 1, "document": myDocuments[1]},
				{"key": 2, "document": myDocuments[2]},
			})

			a.Alternative("Remove by key and reuse it", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:remove").
					WithBodyJson(JSON{"key": 1}).Do()
				Save(resp, "Remove - by key", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 1, "document": myDocuments[1]})

				resp = apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(JSON{"id": "4", "name": "Ramiro"}).Do()
				Save(resp, "Insert - reuses a free key", ``)

				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 1, "document": JSON{"id": "4", "name": "Ramiro"}})

				resp = apiRequest("POST", "/collections/my-collection:size").Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 3, "capacity": 4})
			})

			a.Alternative("Size", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:size").Do()
				Save(resp, "Size", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 3, "capacity": 4})
			})

			a.Alternative("Compact", func(a *biff.A) {
				apiRequest("POST", "/collections/my-collection:remove").
					WithBodyJson(JSON{"key": 2}).Do()

				resp := apiRequest("POST", "/collections/my-collection:compact").Do()
				Save(resp, "Compact", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 2, "capacity": 2})
			})

			a.Alternative("Clear", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:clear").Do()
				Save(resp, "Clear", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 0, "capacity": 4})

				resp = apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(JSON{"id": "5"}).Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": JSON{"id": "5"}})
			})

			a.Alternative("Create index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:createIndex").
					WithBodyJson(JSON{"name": "my-index", "type": "map", "field": "id"}).Do()
				Save(resp, "Create index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Remove by index", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:remove").
						WithBodyJson(JSON{
							"index": "my-index",
							"value": "2",
						}).Do()
					Save(resp, "Remove - by index", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 1, "document": myDocuments[1]})
				})

				a.Alternative("Patch by index", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:patch").
						WithBodyJson(JSON{
							"index": "my-index",
							"value": "3",
							"patch": JSON{
								"name": "Pedro",
							},
						}).Do()
					Save(resp, "Patch - by index", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 2, "document": JSON{"id": "3", "name": "Pedro"}})

					resp = apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{"limit": 10}).Do()
					Save(resp, "Find - fullscan with limit 10", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"1", "2", "3"})
					biff.AssertEqualJson(DecodeLines(resp.BodyString())[2], JSON{"key": 2, "document": JSON{"id": "3", "name": "Pedro"}})
				})
			})

			a.Alternative("Remove by fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:remove").
					WithBodyJson(JSON{
						"limit": 10,
						"filter": JSON{
							"name": "Alfonso",
						},
					}).Do()
				Save(resp, "Remove - fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"1", "3"})

				resp = apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"limit": -1}).Do()
				biff.AssertEqualJson(DecodeLines(resp.BodyString()), []JSON{
					{"key": 1, "document": myDocuments[1]},
				})
			})

			a.Alternative("Patch by fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:patch").
					WithBodyJson(JSON{
						"limit": 10,
						"filter": JSON{
							"name": "Alfonso",
						},
						"patch": JSON{
							"country": "es",
						},
					}).Do()
				Save(resp, "Patch - by fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)

				resp = apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"limit": 10}).Do()

				biff.AssertEqualJson(DecodeLines(resp.BodyString()), []JSON{
					{"key": 0, "document": JSON{"id": "1", "name": "Alfonso", "country": "es"}},
					{"key": 1, "document": myDocuments[1]},
					{"key": 2, "document": JSON{"id": "3", "name": "Alfonso", "country": "es"}},
				})
			})

			a.Alternative("Find with skip", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"skip": 1, "limit": 10}).Do()

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"2", "3"})
			})

			a.Alternative("Find bad mode", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"mode": "magic"}).Do()
				Save(resp, "Find - bad mode", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				errorMessage := resp.BodyJson().(JSON)["error"].(JSON)["message"].(string)
				biff.AssertEqual(errorMessage, "bad mode 'magic', must be [fullscan|index|key]")
			})
		})

		a.Alternative("Create index - map", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:createIndex").
				WithBodyJson(JSON{"name": "my-index", "type": "map", "field": "id", "sparse": true}).Do()
			Save(resp, "Create index - map", ``)

			expectedBody := JSON{"type": "map", "name": "my-index", "field": "id", "sparse": true}
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), expectedBody)

			a.Alternative("Get index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:getIndex").
					WithBodyJson(JSON{
						"name": "my-index",
					}).Do()
				Save(resp, "Retrieve index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), expectedBody)
			})

			a.Alternative("List indexes", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:listIndexes").Do()
				Save(resp, "List indexes", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedBody})
			})

			a.Alternative("Drop index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:dropIndex").
					WithBodyJson(JSON{
						"name": "my-index",
					}).Do()
				Save(resp, "Drop index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

				resp = apiRequest("POST", "/collections/my-collection:getIndex").
					WithBodyJson(JSON{
						"name": "my-index",
					}).Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Insert twice", func(a *biff.A) {
				myDocument := JSON{
					"id":      "my-id",
					"name":    "Fulanez",
					"address": "Elm Street 11",
				}

				apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()
				resp := apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()
				Save(resp, "Insert - unique index conflict", ``)

				expectedBody := JSON{
					"error": JSON{
						"description": "Conflict",
						"message":     "index conflict: index 'my-index': field 'id' with value 'my-id' already exists",
					},
				}
				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
				biff.AssertEqualJson(resp.BodyJson(), expectedBody)

				resp = apiRequest("POST", "/collections/my-collection:size").Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{"total": 1, "capacity": 4})
			})

			a.Alternative("Find with unique index", func(a *biff.A) {

				myDocument := JSON{
					"id":      "my-id",
					"name":    "Fulanez",
					"address": "Elm Street 11",
				}
				apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()

				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"value": "my-id",
					}).Do()
				Save(resp, "Find - by unique index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": myDocument})
			})

			a.Alternative("Find - index not found", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "invented",
						"value": "my-id",
					}).Do()
				Save(resp, "Find - index not found", ``)

				expectedBody := JSON{
					"error": JSON{
						"description": "Not found",
						"message":     "index not found: 'invented'",
					},
				}

				biff.AssertEqualJson(resp.BodyJson(), expectedBody)
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

		})

		a.Alternative("Create index - btree compound", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:createIndex").
				WithBodyJson(JSON{"name": "my-index", "type": "btree", "fields": []string{"category", "-product"}}).Do()
			Save(resp, "Create index - btree compound", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"name": "my-index", "type": "btree", "fields": []string{"category", "-product"}, "sparse": false, "unique": false})

			documents := []JSON{
				{"id": "1", "category": "fruit", "product": "orange"},
				{"id": "2", "category": "drink", "product": "water"},
				{"id": "3", "category": "drink", "product": "milk"},
				{"id": "4", "category": "fruit", "product": "apple"},
			}

			for _, document := range documents {
				apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(document).Do()
			}

			a.Alternative("Find with BTree", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"skip":  0,
						"limit": 10,
					}).Do()
				Save(resp, "Find - by BTree", ``)

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"2", "3", "1", "4"})
			})

			a.Alternative("Find with BTree - reverse order", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index":   "my-index",
						"limit":   10,
						"reverse": true,
					}).Do()
				Save(resp, "Find - by BTree reverse order", ``)

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"4", "1", "3", "2"})
			})

			a.Alternative("Find with BTree with filter", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"limit": 10,
						"filter": JSON{
							"category": "fruit",
						},
					}).Do()
				Save(resp, "Find - by BTree with filter", ``)

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"1", "4"})
			})

			a.Alternative("Find with BTree from", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"limit": 10,
						"from":  JSON{"category": "fruit", "product": "zzz"},
					}).Do()
				Save(resp, "Find - by BTree from", ``)

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"1", "4"})
			})

			a.Alternative("Remove with BTree with filter", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:remove").
					WithBodyJson(JSON{
						"index": "my-index",
						"limit": 10,
						"filter": JSON{
							"category": "drink",
						},
					}).Do()
				Save(resp, "Remove - by BTree with filter", ``)

				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"2", "3"})

				resp = apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"limit": 10,
					}).Do()
				biff.AssertEqual(documentIds(resp.BodyString()), []interface{}{"1", "4"})
			})
		})

		a.Alternative("Set defaults", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:setDefaults").
				WithBodyJson(JSON{"status": "new", "n": "auto()"}).Do()
			Save(resp, "Set defaults", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{"status": "new", "n": "auto()"})

			resp = apiRequest("POST", "/collections/my-collection:insert").
				WithBodyJson(JSON{"id": "1"}).Do()
			biff.AssertEqualJson(resp.BodyJson(), JSON{"key": 0, "document": JSON{"id": "1", "n": 1, "status": "new"}})

			a.Alternative("Unset default", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:setDefaults").
					WithBodyJson(JSON{"status": nil}).Do()

				biff.AssertEqualJson(resp.BodyJson(), JSON{"n": "auto()"})
			})
		})

		a.Alternative("Find with collection not found", func(a *biff.A) {

			resp := apiRequest("POST", "/collections/your-collection:find").
				WithBodyJson(JSON{}).Do()

			Save(resp, "Find - collection not found", ``)

			errorMessage := resp.BodyJson().(JSON)["error"].(JSON)["message"].(string)
			biff.AssertEqual(errorMessage, "collection not found: 'your-collection'")
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

	})

	a.Alternative("Insert on not existing collection", func(a *biff.A) {

		myDocument := JSON{
			"id": "my-id",
		}
		resp := apiRequest("POST", "/collections/my-collection:insert").
			WithBodyJson(myDocument).Do()

		biff.AssertEqual(resp.BodyString(), "{\"key\":0,\"document\":{\"id\":\"my-id\"}}\n")
		biff.AssertEqual(resp.StatusCode, http.StatusCreated)

		a.Alternative("List collection", func(a *biff.A) {

			resp := apiRequest("POST", "/collections/my-collection:find").
				WithBodyJson(JSON{}).Do()

			biff.AssertEqual(resp.BodyString(), "{\"key\":0,\"document\":{\"id\":\"my-id\"}}\n")
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

	})

	a.Alternative("Insert malformed", func(a *biff.A) {
		resp := apiRequest("POST", "/collections/my-collection:insert").
			WithBodyString(`{"id": `).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
	})

	a.Alternative("Insert empty", func(a *biff.A) {
		resp := apiRequest("POST", "/collections/my-collection:insert").
			WithBodyString(``).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
	})

	a.Alternative("Unknown endpoint", func(a *biff.A) {
		resp := apiRequest("GET", "/invented").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotImplemented)
	})

}
