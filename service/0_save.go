package service

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/fulldump/apitest"
)

const examplesHost = "slotdb.example.com"

// Save writes a markdown example of the request and its response into
// API_EXAMPLES_PATH. Nothing is written when the variable is not set.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	log.Println("Saving", p)

	err := os.WriteFile(p, []byte(FormatExample(response, title, description)), 0666)
	if err != nil {
		log.Println("ERROR: saving:", err)
	}
}

// FormatExample renders the request as curl, the http exchange and the
// document keys the response refers to.
func FormatExample(response *apitest.Response, title, description string) string {

	request := response.Request
	requestBody := formatBody(response.BodyRequestString())
	query := ""
	if request.URL.RawQuery != "" {
		query = "?" + request.URL.RawQuery
	}

	s := &strings.Builder{}

	fmt.Fprintf(s, "# %s\n", title)
	if description != "" {
		fmt.Fprintf(s, "%s\n", strings.TrimSpace(description))
	}

	s.WriteString("\nCurl example:\n\n```sh\ncurl ")
	if request.Method != http.MethodGet {
		fmt.Fprintf(s, "-X %s ", request.Method)
	}
	fmt.Fprintf(s, "\"https://%s%s%s\"", examplesHost, request.URL.Path, query)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(s, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(s, " \\\n-d '%s'", requestBody)
	}
	s.WriteString("\n```\n\n")

	s.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(s, "%s %s%s %s\n", request.Method, request.URL.Path, query, request.Proto)
	fmt.Fprintf(s, "Host: %s\n", examplesHost)
	for _, k := range sortedKeys(request.Header) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n\n", requestBody)

	fmt.Fprintf(s, "%s %s\n", response.Proto, response.Status)
	for _, k := range sortedKeys(response.Header) {
		if k == "Date" {
			s.WriteString("Date: Mon, 19 Oct 2026 10:00:00 GMT\n")
			continue
		}
		for _, v := range response.Header[k] {
			fmt.Fprintf(s, "%s: %s\n", k, v)
		}
	}
	fmt.Fprintf(s, "\n%s\n```\n", formatBody(response.BodyString()))

	keys := DocumentKeys(response.BodyString())
	if len(keys) > 0 {
		s.WriteString("\nDocument keys in the response: ")
		for i, key := range keys {
			if i > 0 {
				s.WriteString(", ")
			}
			fmt.Fprint(s, key)
		}
		s.WriteString("\n")
	}

	if requestId := response.Header.Get("X-Request-Id"); requestId != "" {
		fmt.Fprintf(s, "\nRequest id: `%s`\n", requestId)
	}

	return s.String()
}

// DocumentKeys returns the "key" of every JSON line of body, in order.
func DocumentKeys(body string) []int {
	keys := []int{}
	for _, line := range DecodeLines(body) {
		document, ok := line.(JSON)
		if !ok {
			continue
		}
		key, ok := document["key"].(float64)
		if !ok {
			continue
		}
		keys = append(keys, int(key))
	}
	return keys
}

// formatBody indents a single JSON value and keeps JSON lines one per line.
func formatBody(body string) string {
	lines, err := decodeValues(body)
	if err != nil {
		return body
	}
	if len(lines) == 0 {
		return ""
	}

	if len(lines) == 1 {
		indented, err := json.MarshalIndent(lines[0], "", "    ")
		if err != nil {
			return body
		}
		return string(indented)
	}

	result := make([]string, 0, len(lines))
	for _, line := range lines {
		compact, err := json.Marshal(line)
		if err != nil {
			return body
		}
		result = append(result, string(compact))
	}
	return strings.Join(result, "\n")
}

func sortedKeys(header http.Header) []string {
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
