package rdbbench

// benchmarksConfig holds all parameters for each benchmark.
type benchmarksConfig struct {
	benchmarkSimpleConfig
	benchmarkLargeConfig
}

func getDefaultConfig() benchmarksConfig {
	return benchmarksConfig{
		benchmarkSimpleConfig: benchmarkSimpleConfig{
			insertXUsers: 50_000,
		},

		benchmarkLargeConfig: benchmarkLargeConfig{
			insertXDocs:  5_000,
			insertYBytes: 10_000,
		},
	}
}
