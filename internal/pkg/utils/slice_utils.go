package utils

// FirstN returns at most the first n items. The result shares storage with items.
func FirstN[T any](items []T, n int) []T {
	if n <= 0 {
		return items[:0]
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}

// CountInOrder counts occurrences of each key and returns the distinct keys in
// order of first appearance together with their counts.
func CountInOrder(keys []string) ([]string, map[string]int) {
	counts := make(map[string]int, len(keys))
	order := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	return order, counts
}
