package rdbbench

import (
	"fmt"
	"strings"
	"time"

	"github.com/rdbgo/rdb/internal/rdbbench/benchbar"
)

type benchmarkLargeConfig struct {
	insertXDocs  int
	insertYBytes int
}

// runBenchmarkLarge inserts X docs of Y bytes each one by one and then reads
// all of them back in a single query.
func runBenchmarkLarge(
	target benchTarget, fullConfig benchmarksConfig,
) (benchmarkResult, error) {
	conf := fullConfig.benchmarkLargeConfig
	start := time.Now()
	var totalReads, totalWrites uint64

	body := strings.Repeat("x", conf.insertYBytes)

	bar := benchbar.NewBar(
		fmt.Sprintf(
			"Inserting %d docs of %d bytes", conf.insertXDocs, conf.insertYBytes,
		),
		conf.insertXDocs,
	)

	for range conf.insertXDocs {
		if err := target.InsertDoc(time.Now().Unix(), body); err != nil {
			return benchmarkResult{}, fmt.Errorf("error when inserting: %w", err)
		}
		totalWrites++
		bar.Inc()
	}
	bar.Finish()

	bar = benchbar.NewBar("Reading docs", 1)
	count, err := target.ReadDocs()
	if err != nil {
		return benchmarkResult{}, fmt.Errorf("error when reading: %w", err)
	}
	totalReads = uint64(count)
	bar.Finish()

	return benchmarkResult{
		Name:        "Large",
		Duration:    time.Since(start),
		TotalReads:  totalReads,
		TotalWrites: totalWrites,
	}, nil
}
