package main

import (
	"context"
	"log"

	"github.com/rdbgo/rdb/internal/rdbdemo"
)

func main() {
	if err := rdbdemo.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
