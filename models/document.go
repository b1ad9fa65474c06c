// Package models defines the corpus records, pipeline configuration and error taxonomy.
package models

import (
	"fmt"
	"strings"
)

// Label is the ternary class of a document: -1, 0 or 1 before encoding.
type Label int

const (
	LabelNegative Label = -1
	LabelNeutral  Label = 0
	LabelPositive Label = 1
)

// DefaultClasses is the fixed label set, in stratification order.
var DefaultClasses = []Label{LabelNegative, LabelNeutral, LabelPositive}

// Valid reports whether l belongs to the raw label set.
func (l Label) Valid() bool {
	return l == LabelNegative || l == LabelNeutral || l == LabelPositive
}

// Encode remaps the raw label to a contiguous non-negative class id:
// -1 → 0, 0 → 1, 1 → 2.
func (l Label) Encode() (Label, error) {
	if !l.Valid() {
		return 0, fmt.Errorf("cannot encode label %d: not in {-1, 0, 1}", int(l))
	}
	return l + 1, nil
}

// RemovalReason records why a document was blanked for later cleanup.
type RemovalReason string

const (
	RemovalNone                RemovalReason = ""
	RemovalUnsupportedLanguage RemovalReason = "unsupported_language"
	RemovalEmptyNormalized     RemovalReason = "empty_after_normalization"
	RemovalTooShort            RemovalReason = "too_short_after_pruning"
)

// Document is one labeled news article.
type Document struct {
	Title   string
	Content string
	Source  string
	Label   Label

	// Language is the detected ISO 639-1 code, set by the language gate.
	Language string

	// Removal is set together with an empty Content when a stage marks the
	// document for the post-prune cleanup.
	Removal RemovalReason
}

// Blank returns a copy of d with its content cleared and the removal marker set.
func (d Document) Blank(reason RemovalReason) Document {
	d.Content = ""
	d.Removal = reason
	return d
}

// Blanked reports whether the document is waiting for cleanup.
func (d Document) Blanked() bool {
	return d.Content == ""
}

// TokenCount returns the number of space-separated tokens in the content.
func (d Document) TokenCount() int {
	return len(strings.Fields(d.Content))
}

// CloneDocuments returns a copy of docs so a stage can hand off a new sequence.
func CloneDocuments(docs []Document) []Document {
	out := make([]Document, len(docs))
	copy(out, docs)
	return out
}

// CountByLabel tallies documents per label.
func CountByLabel(docs []Document) map[Label]int {
	counts := make(map[Label]int)
	for _, d := range docs {
		counts[d.Label]++
	}
	return counts
}
