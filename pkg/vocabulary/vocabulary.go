// Package vocabulary loads the set of word-forms known to an embedding file.
package vocabulary

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dtnitsch/corpus-prep/pkg/caching"
)

const (
	cacheKind     = "vocabulary"
	maxLineLength = 16 * 1024 * 1024 // embedding rows with many dimensions
)

// Vocabulary is an immutable word set shared read-only by all normalization calls.
type Vocabulary struct {
	words map[string]struct{}
}

// New builds a vocabulary from explicit words.
func New(words ...string) *Vocabulary {
	v := &Vocabulary{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			v.words[w] = struct{}{}
		}
	}
	return v
}

// Contains reports whether word is known.
func (v *Vocabulary) Contains(word string) bool {
	_, ok := v.words[word]
	return ok
}

// Len returns the number of words.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns the words in sorted order.
func (v *Vocabulary) Words() []string {
	out := make([]string, 0, len(v.words))
	for w := range v.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Parse reads an embedding file where each line is `word v1 v2 ... vN` and
// keeps only the first token of each non-blank line.
func Parse(r io.Reader) (*Vocabulary, error) {
	v := &Vocabulary{words: make(map[string]struct{})}
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), maxLineLength)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		word, _, _ := strings.Cut(line, " ")
		if tab := strings.IndexByte(word, '\t'); tab >= 0 {
			word = word[:tab]
		}
		v.words[word] = struct{}{}
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	return v, nil
}

// Load parses the embedding file at path. When cache is non-nil the extracted
// word list is stored there and reused while the file is unchanged.
func Load(path string, cache *caching.Cache, logger *slog.Logger) (*Vocabulary, error) {
	if cache != nil {
		if data, ok := cache.Get(cacheKind, path); ok {
			v := New(strings.Split(string(data), "\n")...)
			logger.Info("Vocabulary loaded from cache", "path", path, "words", v.Len(), "cache_dir", cache.Dir())
			return v, nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary file: %w", err)
	}
	defer f.Close()

	v, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Info("Vocabulary loaded", "path", path, "words", v.Len())

	if cache != nil {
		var buf bytes.Buffer
		for _, w := range v.Words() {
			buf.WriteString(w)
			buf.WriteByte('\n')
		}
		if err := cache.Set(cacheKind, path, buf.Bytes()); err != nil {
			logger.Warn("Failed to cache vocabulary", "path", path, "error", err)
		}
	}
	return v, nil
}
