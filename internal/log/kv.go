package log

import "sort"

// KV is a map of key-value pairs attached to a log entry.
type KV map[string]any

// kvToArgs flattens the given KV maps into the alternating key/value slice
// slog expects. Keys within each map are sorted for deterministic output,
// and when a key repeats across maps the first occurrence wins.
func kvToArgs(keyVals ...KV) []any {
	args := []any{}
	seen := map[string]bool{}

	for _, kv := range keyVals {
		keys := make([]string, 0, len(kv))
		for k := range kv {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			if seen[k] {
				continue
			}
			seen[k] = true
			args = append(args, k, kv[k])
		}
	}

	return args
}
