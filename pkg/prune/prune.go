// Package prune removes low-frequency words from a normalized dataset and
// drops documents that become too short.
package prune

import (
	"strings"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/mapreduce"
)

// DefaultMinTokens is the shortest document kept after pruning.
const DefaultMinTokens = 8

// Table builds the frequency table of docs. It must be computed from the same
// dataset that is later pruned with it.
func Table(docs []models.Document) mapreduce.FrequencyTable {
	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}
	return mapreduce.BuildTable(contents)
}

// Threshold scales the base minimum count by the augmentation multiplier.
// Test data is never augmented and uses a multiplier of 1.
func Threshold(minCount, multiplier int) int {
	if multiplier < 1 {
		multiplier = 1
	}
	return minCount * multiplier
}

// Document keeps the tokens of content whose corpus count is at least minCount.
// A result with fewer than minTokens tokens is returned as the empty string.
func Document(content string, minCount int, table mapreduce.FrequencyTable, minTokens int) string {
	words := strings.Fields(content)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if table.Count(w) >= minCount {
			kept = append(kept, w)
		}
	}
	if len(kept) < minTokens {
		return ""
	}
	return strings.Join(kept, " ")
}

// Prune returns a new dataset with every document's content pruned against
// table. Documents left too short are blanked, not removed; call Cleanup next.
func Prune(docs []models.Document, minCount int, table mapreduce.FrequencyTable, minTokens int) []models.Document {
	out := models.CloneDocuments(docs)
	for i, d := range out {
		pruned := Document(d.Content, minCount, table, minTokens)
		if pruned != "" {
			out[i].Content = pruned
			continue
		}
		if d.Removal == models.RemovalNone {
			out[i] = d.Blank(models.RemovalTooShort)
		} else {
			out[i] = d.Blank(d.Removal)
		}
	}
	return out
}

// Cleanup drops every blanked document. The returned slice is indexed
// contiguously from zero in the original order.
func Cleanup(docs []models.Document) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if !d.Blanked() {
			out = append(out, d)
		}
	}
	return out
}
