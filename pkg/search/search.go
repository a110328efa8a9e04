// Package search filters short reference lists by a typed query.
package search

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Filter keeps the items whose name fuzzily contains query, preserving order.
// Matching ignores case and diacritics. An empty query keeps everything.
func Filter[T any](items []T, query string, name func(T) string) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if fuzzy.MatchNormalizedFold(query, name(it)) {
			out = append(out, it)
		}
	}
	return out
}
