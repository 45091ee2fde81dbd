package fibonacci

import (
	"fmt"
	"sort"
)

// Algorithm pairs an engine function with its display name.
type Algorithm struct {
	Key  string
	Name string
	Fn   Func
}

var algorithms = map[string]Algorithm{
	"linear": {Key: "linear", Name: "Linear Accumulation (O(n))", Fn: Linear},
	"fast":   {Key: "fast", Name: "Fast Doubling (O(log n), recursive)", Fn: FastDoubling},
	"pair":   {Key: "pair", Name: "Fast Doubling (O(log n), paired)", Fn: FastDoublingPair},
}

// List returns the registered algorithm keys in sorted order.
func List() []string {
	keys := make([]string, 0, len(algorithms))
	for k := range algorithms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the algorithm registered under key.
func Get(key string) (Algorithm, error) {
	a, ok := algorithms[key]
	if !ok {
		return Algorithm{}, fmt.Errorf("unknown algorithm %q", key)
	}
	return a, nil
}

// All returns every registered algorithm, sorted by key.
func All() []Algorithm {
	keys := List()
	out := make([]Algorithm, 0, len(keys))
	for _, k := range keys {
		out = append(out, algorithms[k])
	}
	return out
}
