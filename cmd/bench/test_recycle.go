package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestRecycle removes half of the documents and inserts them again. Keys are
// reused, so the capacity must not grow.
func TestRecycle(c Config) {

	collectionName := CreateCollection(c.Base)

	client := &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConns:        1024,
			MaxIdleConnsPerHost: 1024,
		},
	}

	fmt.Println("Preload documents...")
	Preload(client, c.Base, collectionName, c.N, 2)
	before := GetSize(c.Base, collectionName)
	fmt.Println("total:", before.Total, "capacity:", before.Capacity)

	t0 := time.Now()

	removeURL := fmt.Sprintf("%s/v1/collections/%s:remove", c.Base, collectionName)
	resp, err := client.Post(removeURL, "application/json", strings.NewReader(`{"filter":{"worker":1},"limit":-1}`))
	if err != nil {
		fmt.Println("ERROR: do request:", err.Error())
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	Preload(client, c.Base, collectionName, c.N/2, 1)

	took := time.Since(t0)
	after := GetSize(c.Base, collectionName)
	fmt.Println("total:", after.Total, "capacity:", after.Capacity)
	fmt.Println("took:", took)

	if after.Capacity != before.Capacity {
		fmt.Println("ERROR: capacity changed from", before.Capacity, "to", after.Capacity)
	}
}
