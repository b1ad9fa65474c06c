// Package excerpt builds the short raw text the normalizer cleans: the title
// followed by the first sentences of the body.
package excerpt

import (
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// SentenceSplitter detects sentence boundaries.
type SentenceSplitter interface {
	Split(text string) []string
}

// PunktSplitter splits with the pre-trained English Punkt model.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// NewPunktSplitter loads the English Punkt training data.
func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load sentence tokenizer: %w", err)
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

// Split returns the sentences of text without surrounding whitespace.
func (p *PunktSplitter) Split(text string) []string {
	found := p.tokenizer.Tokenize(text)
	out := make([]string, 0, len(found))
	for _, s := range found {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Extractor limits each document to its title and leading sentences.
type Extractor struct {
	splitter     SentenceSplitter
	maxSentences int
}

// NewExtractor returns an Extractor keeping at most maxSentences sentences.
func NewExtractor(splitter SentenceSplitter, maxSentences int) *Extractor {
	return &Extractor{splitter: splitter, maxSentences: maxSentences}
}

// Extract concatenates title and the first sentences of content with no separator.
func (e *Extractor) Extract(title, content string) string {
	return Extract(e.splitter, title, content, e.maxSentences)
}

// Extract is the stateless form of Extractor.Extract.
func Extract(splitter SentenceSplitter, title, content string, maxSentences int) string {
	found := splitter.Split(content)
	if maxSentences < 0 {
		maxSentences = 0
	}
	if maxSentences < len(found) {
		found = found[:maxSentences]
	}
	return title + strings.Join(found, "")
}
