package repl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/rdbgo/rdb"
	"github.com/rdbgo/rdb/internal/util/sysutil"
)

type Repl struct {
	databasePath string
	db           *rdb.DB
	ctx          context.Context
	stop         context.CancelFunc
	tx           *rdb.Tx
	historyPath  string
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	databasePath string,
	db *rdb.DB,
) Repl {
	return Repl{
		databasePath: databasePath,
		db:           db,
		ctx:          ctx,
		stop:         stop,
		historyPath:  filepath.Join(os.TempDir(), ".rdb_history"),
	}
}

func (r *Repl) Start() error {
	fmt.Println()
	fmt.Printf("Opened database %s\n", r.databasePath)
	fmt.Println(`Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Println()

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
			input := r.prompt()

			if input == "" {
				continue
			}

			if input == "exit" || input == ".exit" || input == ".quit" {
				r.Shutdown()
				return nil
			}

			if input == "clear" || input == ".clear" {
				sysutil.ClearTerminal()
				continue
			}

			if input == "help" || input == ".help" {
				cmdHelp()
				continue
			}

			if input == ".tables" {
				cmdQuery(r, `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
				continue
			}

			if input == ".schema" {
				cmdQuery(r, `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL`)
				continue
			}

			if name, ok := strings.CutPrefix(input, ".count "); ok {
				cmdQuery(r, fmt.Sprintf("SELECT COUNT(*) AS count FROM %q", strings.TrimSpace(name)))
				continue
			}

			if name, ok := strings.CutPrefix(input, ".columns "); ok {
				cmdQuery(r, fmt.Sprintf("PRAGMA table_info(%q)", strings.TrimSpace(name)))
				continue
			}

			if strings.HasPrefix(input, ".") {
				fmt.Println("Unknown command, type .help for usage hints")
				continue
			}

			cmdQuery(r, input)
		}
	}
}

// Shutdown stops the REPL. An open transaction is abandoned, which rolls it
// back.
func (r *Repl) Shutdown() {
	if r.tx != nil {
		_ = r.tx.Rollback()
		r.tx = nil
	}
	r.stop()
}

// prompt shows the prompt and reads the input from the user.
func (r *Repl) prompt() string {
	label := "rdb> "
	if r.tx != nil {
		label = "rdb(tx)> "
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	prompt, err := line.Prompt(label)
	if err != nil {
		if err == liner.ErrPromptAborted {
			fmt.Println("CTRL+C pressed, exiting...")
			return ".quit"
		}
		return ""
	}

	line.AppendHistory(prompt)
	if file, err := os.Create(r.historyPath); err == nil {
		_, _ = line.WriteHistory(file)
		file.Close()
	}

	return strings.TrimSpace(prompt)
}
