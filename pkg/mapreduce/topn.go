package mapreduce

import (
	"fmt"
	"sort"
	"strings"
)

// isValidKeyword drops tokens the sanitizer can leave half-formed, such as an
// unmatched brace, so they do not crowd the summaries.
func isValidKeyword(word string) bool {
	if strings.Count(word, "{") != strings.Count(word, "}") {
		return false
	}
	return strings.Trim(word, "-%@|~`{}") != ""
}

type keywordCount struct {
	Word  string
	Count int
}

// TopKeywords returns the top N keywords from aggregated word counts as formatted strings.
// Each string is formatted as "word:count" (e.g., "stock:1153").
func TopKeywords(wordCounts map[string]int, n int) []string {
	ss := make([]keywordCount, 0, len(wordCounts))
	for k, v := range wordCounts {
		if isValidKeyword(k) {
			ss = append(ss, keywordCount{k, v})
		}
	}

	// Sort by count (descending), ties alphabetically so summaries are stable
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Count != ss[j].Count {
			return ss[i].Count > ss[j].Count
		}
		return ss[i].Word < ss[j].Word
	})

	limit := min(max(n, 0), len(ss))
	keywords := make([]string, limit)
	for i := 0; i < limit; i++ {
		keywords[i] = fmt.Sprintf("%s:%d", ss[i].Word, ss[i].Count)
	}
	return keywords
}
