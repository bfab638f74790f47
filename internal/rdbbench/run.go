package rdbbench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rdbgo/rdb/internal/log"
	"github.com/rdbgo/rdb/internal/util/numutil"
	"github.com/rdbgo/rdb/internal/version"
)

// benchmarkResult stores the outcome of a benchmark.
type benchmarkResult struct {
	Name        string
	Duration    time.Duration
	TotalReads  uint64
	TotalWrites uint64
}

// Run executes benchmarks for the rdb wrapper and two database/sql SQLite
// drivers, and prints the results.
func Run(ctx context.Context) error {
	fmt.Println(version.BenchVersion())
	logger := log.NewLogger(os.Stdout)

	tmpDir, err := os.MkdirTemp("", "rdbbench_*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpDir)
	logger.Info("created benchmark directory", log.KV{"dir": tmpDir})

	rdbTarget, err := createRdbTarget(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening rdbgo/rdb db: %w", err)
	}
	defer rdbTarget.Close()

	mattnTarget, err := createMattnTarget(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening mattn/go-sqlite3 db: %w", err)
	}
	defer mattnTarget.Close()

	moderncTarget, err := createModerncTarget(tmpDir)
	if err != nil {
		return fmt.Errorf("error opening modernc.org/sqlite db: %w", err)
	}
	defer moderncTarget.Close()

	targets := []benchTarget{rdbTarget, mattnTarget, moderncTarget}
	conf := getDefaultConfig()

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Printf("\n--- Benchmarks for %s ---\n", target.Name())
		results, err := runBenchmarks(target, conf)
		if err != nil {
			return fmt.Errorf("error benchmarking %s: %w", target.Name(), err)
		}
		printResults(results)
		logger.Info("benchmarks finished", log.KV{"target": target.Name()})
	}

	return nil
}

func printResults(results []benchmarkResult) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Color.Header = text.Colors{text.FgCyan, text.Bold}
	tw.AppendHeader(table.Row{"Name", "Reads", "Writes", "Duration"})

	for _, r := range results {
		tw.AppendRow(table.Row{
			r.Name,
			numutil.IntWithCommas(int(r.TotalReads)),
			numutil.IntWithCommas(int(r.TotalWrites)),
			r.Duration,
		})
	}

	fmt.Println(tw.Render())
}

// runBenchmarks executes all benchmarks against the given target, and
// returns results.
//
// It recreates the schema before each benchmark.
func runBenchmarks(target benchTarget, conf benchmarksConfig) ([]benchmarkResult, error) {
	benchs := []func(benchTarget, benchmarksConfig) (benchmarkResult, error){
		runBenchmarkSimple,
		runBenchmarkLarge,
	}

	var results []benchmarkResult

	for _, bench := range benchs {
		if err := recreateSchema(target); err != nil {
			return nil, err
		}

		res, err := bench(target, conf)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}
