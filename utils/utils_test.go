package utils

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestGetKeys(t *testing.T) {

	biff.Alternative("GetKeys", func(a *biff.A) {

		a.Alternative("Sorted", func(a *biff.A) {
			keys := GetKeys(map[string]int{"c": 3, "a": 1, "b": 2})
			biff.AssertEqual(keys, []string{"a", "b", "c"})
		})

		a.Alternative("Empty", func(a *biff.A) {
			keys := GetKeys(map[string]bool{})
			biff.AssertEqual(keys, []string{})
		})
	})
}

func TestRemarshal(t *testing.T) {

	type User struct {
		Id   string `json:"id"`
		Name string `json:"name"`
	}

	biff.Alternative("Remarshal", func(a *biff.A) {

		a.Alternative("Struct to map", func(a *biff.A) {
			m := RemarshalMap(&User{Id: "1", Name: "Pablo"})
			biff.AssertEqual(m, map[string]any{"id": "1", "name": "Pablo"})
		})

		a.Alternative("Map to struct", func(a *biff.A) {
			u := &User{}
			err := Remarshal(map[string]any{"id": "2", "name": "Sara"}, u)
			biff.AssertNil(err)
			biff.AssertEqual(*u, User{Id: "2", Name: "Sara"})
		})

		a.Alternative("Not an object", func(a *biff.A) {
			m := RemarshalMap([]int{1, 2})
			biff.AssertTrue(m == nil)
		})
	})
}
