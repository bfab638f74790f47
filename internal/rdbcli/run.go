// Package rdbcli implements the rdb interactive shell, a small example
// program that drives the public API against a database file.
package rdbcli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rdbgo/rdb"
	"github.com/rdbgo/rdb/internal/rdbcli/config"
	"github.com/rdbgo/rdb/internal/rdbcli/repl"
	"github.com/rdbgo/rdb/internal/version"
)

// Run runs the rdb shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.CLIVersion())

	db, err := rdb.Open(conf.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	rp := repl.NewRepl(ctx, stop, conf.DatabasePath, db)
	defer rp.Shutdown()
	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()
	fmt.Printf("\nGoodbye!\n\n")
	return nil
}
