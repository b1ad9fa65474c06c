package mapreduce

import "strings"

// Map generates a token frequency map for a single normalized document.
// Tokens are the space-separated words of content.
func Map(content string) map[string]int {
	counts := make(map[string]int)
	for _, word := range strings.Fields(content) {
		counts[word]++
	}
	return counts
}

// Reduce aggregates a slice of word frequency maps into a single map.
func Reduce(intermediate []map[string]int) map[string]int {
	finalResults := make(map[string]int)

	for _, counts := range intermediate {
		for word, count := range counts {
			finalResults[word] += count
		}
	}

	return finalResults
}

// FrequencyTable maps each word to its number of occurrences across one
// dataset. It is built from a complete snapshot and never updated.
type FrequencyTable struct {
	counts map[string]int
}

// BuildTable maps every document and reduces the results into a table.
func BuildTable(contents []string) FrequencyTable {
	intermediate := make([]map[string]int, 0, len(contents))
	for _, c := range contents {
		intermediate = append(intermediate, Map(c))
	}
	return FrequencyTable{counts: Reduce(intermediate)}
}

// Count returns the occurrences of word, zero when absent.
func (t FrequencyTable) Count(word string) int {
	return t.counts[word]
}

// Len returns the number of distinct words.
func (t FrequencyTable) Len() int {
	return len(t.counts)
}

// Counts returns a copy of the underlying counts.
func (t FrequencyTable) Counts() map[string]int {
	out := make(map[string]int, len(t.counts))
	for w, c := range t.counts {
		out[w] = c
	}
	return out
}
