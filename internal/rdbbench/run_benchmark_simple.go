package rdbbench

import (
	"fmt"
	"time"

	"github.com/rdbgo/rdb/internal/rdbbench/benchbar"
)

type benchmarkSimpleConfig struct {
	insertXUsers int
}

// runBenchmarkSimple inserts X users one by one and then reads all of them
// back in a single query.
func runBenchmarkSimple(
	target benchTarget, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkSimpleConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	bar := benchbar.NewBar(
		fmt.Sprintf("Inserting %d users", conf.insertXUsers), conf.insertXUsers,
	)

	for idx := range conf.insertXUsers {
		err := target.InsertUser(
			time.Now().Unix(), fmt.Sprintf("user%d@example.com", idx), 1,
		)
		if err != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
		}
		totalWrites++
		bar.Inc()
	}
	bar.Finish()

	bar = benchbar.NewBar("Reading users", 1)
	count, err := target.ReadUsers()
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when reading: %w", err)
	}
	totalReads = uint64(count)
	bar.Finish()

	return benchmarkResult{
		Name:        "Simple",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
