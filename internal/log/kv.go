package log

import "sort"

// KV represents key-value pairs attached to a log record.
type KV map[string]any

// Namespaces used across the project to differentiate log records.
const (
	NsEngine      = "engine"
	NsTransaction = "transaction"
	NsSeed        = "seed"
	NsRepl        = "repl"
)

// kvToArgs flattens the given KV maps into the alternating key-value
// slice slog expects. Keys are emitted in lexical order so records are
// deterministic; if a key repeats across maps, the first occurrence
// wins.
func kvToArgs(keyVals ...KV) []any {
	merged := KV{}
	for _, kv := range keyVals {
		for key, val := range kv {
			if _, ok := merged[key]; !ok {
				merged[key] = val
			}
		}
	}

	keys := make([]string, 0, len(merged))
	for key := range merged {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, merged[key])
	}
	return args
}

// kvToArgsNs is like kvToArgs but prepends the namespace as the first
// key-value pair.
func kvToArgsNs(namespace string, keyVals ...KV) []any {
	return append([]any{"ns", namespace}, kvToArgs(keyVals...)...)
}
