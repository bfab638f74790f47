package main

import (
	"context"
	"log"

	"github.com/rdbgo/rdb/internal/rdbcli"
)

func main() {
	if err := rdbcli.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
}
