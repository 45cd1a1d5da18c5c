package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"
)

func TestPatch(c Config) {

	collectionName := CreateCollection(c.Base)

	client := &http.Client{
		Transport: &http.Transport{
			MaxConnsPerHost:     1024,
			MaxIdleConns:        1024,
			MaxIdleConnsPerHost: 1024,
		},
	}

	fmt.Println("Preload documents...")
	Preload(client, c.Base, collectionName, c.N, c.Workers)

	patchURL := fmt.Sprintf("%s/v1/collections/%s:patch", c.Base, collectionName)

	t0 := time.Now()
	key := int64(-1)
	Parallel(c.Workers, func() {
		for {
			k := atomic.AddInt64(&key, 1)
			if k >= c.N {
				return
			}

			body := fmt.Sprintf(`{"key":%d,"patch":{"value":%d}}`, k, k)
			resp, err := client.Post(patchURL, "application/json", strings.NewReader(body))
			if err != nil {
				fmt.Println("ERROR: do request:", err.Error())
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
	})

	took := time.Since(t0)
	fmt.Println("patched:", c.N)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f rows/sec\n", float64(c.N)/took.Seconds())
}
