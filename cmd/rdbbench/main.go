package main

import (
	"context"
	"log"

	"github.com/rdbgo/rdb/internal/rdbbench"
)

func main() {
	if err := rdbbench.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
