package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fulldump/slotdb/bootstrap"
	"github.com/fulldump/slotdb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func CreateCollection(base string) string {

	name := "col-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json.Marshal(JSON{"name": name})

	req, _ := http.NewRequest("POST", base+"/v1/collections", bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	io.Copy(os.Stdout, resp.Body)

	return name
}

// CreateServer starts an in-process server when no base URL is configured.
func CreateServer(c *Config) (stop func()) {
	if c.Base != "" {
		return func() {}
	}

	conf := configuration.Default()
	conf.EnableCompression = false

	start, stop, err := bootstrap.Bootstrap(&conf)
	if err != nil {
		fmt.Println("ERROR: bootstrap:", err.Error())
		os.Exit(2)
	}
	c.Base = "http://" + conf.HttpAddr
	go start()

	return stop
}

type Size struct {
	Total    int `json:"total"`
	Capacity int `json:"capacity"`
}

func GetSize(base, collection string) Size {
	size := Size{}

	resp, err := http.Post(base+"/v1/collections/"+collection+":size", "application/json", nil)
	if err != nil {
		fmt.Println("ERROR: size:", err.Error())
		return size
	}
	defer resp.Body.Close()

	json.NewDecoder(resp.Body).Decode(&size)
	return size
}

// Preload inserts n documents through a single streamed insert.
func Preload(client *http.Client, base, collection string, n int64, workers int) {
	r, w := io.Pipe()

	encoder := json.NewEncoder(w)
	go func() {
		for i := int64(0); i < n; i++ {
			encoder.Encode(JSON{
				"id":     strconv.FormatInt(i, 10),
				"value":  0,
				"worker": i % int64(workers),
			})
		}
		w.Close()
	}()

	req, err := http.NewRequest("POST", base+"/v1/collections/"+collection+":insert", r)
	if err != nil {
		fmt.Println("ERROR: new request:", err.Error())
		os.Exit(3)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		os.Exit(4)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
