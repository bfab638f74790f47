package config

import (
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	"github.com/rdbgo/rdb/internal/version"
)

// Config represents the configuration for the rdb shell.
type Config struct {
	DatabasePath string `arg:"positional,required" help:"Path of the SQLite database file to open or create (use :memory: for a throwaway database)"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	return cfg
}
