package utils

import (
	"encoding/json"
)

// Remarshal copies input into output through its JSON representation.
func Remarshal(input interface{}, output interface{}) (err error) {
	b, err := json.Marshal(input)
	if nil != err {
		return
	}
	return json.Unmarshal(b, output)
}

// RemarshalMap returns input as a generic JSON object. It returns nil when
// input does not encode to an object.
func RemarshalMap(input interface{}) map[string]any {
	output := map[string]any{}
	if err := Remarshal(input, &output); err != nil {
		return nil
	}
	return output
}
