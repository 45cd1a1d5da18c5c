package main

import (
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | INSERT | PATCH | REMOVE | RECYCLE"`
	Base    string `usage:"base URL, an in-process server is started when empty"`
	N       int64  `usage:"number of documents"`
	Workers int    `usage:"number of workers"`
}

func main() {

	c := Config{
		Test:    "recycle",
		Base:    "",
		N:       1_000_000,
		Workers: 16,
	}
	goconfig.Read(&c)

	stop := CreateServer(&c)
	defer stop()

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestInsert(c)
		TestPatch(c)
		TestRemove(c)
		TestRecycle(c)
	case "INSERT":
		TestInsert(c)
	case "PATCH":
		TestPatch(c)
	case "REMOVE":
		TestRemove(c)
	case "RECYCLE":
		TestRecycle(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
