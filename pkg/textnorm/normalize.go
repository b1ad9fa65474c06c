// Package textnorm cleans one raw document string through the fixed transform
// chain: sanitize, case-fold, stop-word removal, stemming, vocabulary restriction.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/dtnitsch/corpus-prep/pkg/stopwords"
	"github.com/kljensen/snowball/english"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Vocabulary is the set of word-forms known to the embedding source.
type Vocabulary interface {
	Contains(word string) bool
}

// htmlTag matches tag-like substrings. The match is non-greedy and does not
// cross newlines.
var htmlTag = regexp.MustCompile(`<.*?>`)

// symbols are replaced by a single space each.
const symbols = "\t?¿\n*.;,’\r:/&”“\"()$#!°'><_—[]+©=‘…\v\b\f€£•´^"

// fillers are dash tokens that survive sanitizing but carry no meaning.
var fillers = map[string]struct{}{
	"-":   {},
	"–":   {},
	"--":  {},
	"---": {},
}

// isPrintable matches the ASCII printable set: letters, digits, punctuation and
// the whitespace characters space, \t, \n, \r, \v, \f.
func isPrintable(r rune) bool {
	if r >= 0x20 && r <= 0x7e {
		return true
	}
	switch r {
	case '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Sanitize drops unprintable characters, strips tag-like substrings and
// replaces the fixed symbol set with spaces.
func Sanitize(s string) string {
	dropUnprintable := runes.Remove(runes.Predicate(func(r rune) bool {
		return !isPrintable(r)
	}))
	s, _, _ = transform.String(dropUnprintable, s)

	s = htmlTag.ReplaceAllString(s, "")

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(symbols, r) {
			return ' '
		}
		return r
	}, s)
}

// CaseFold lowercases the whole string.
func CaseFold(s string) string {
	return strings.ToLower(s)
}

// RemoveStopWords splits on single spaces and drops empty tokens and stop words.
func RemoveStopWords(s string, stop stopwords.Set) string {
	kept := make([]string, 0, strings.Count(s, " ")+1)
	for _, w := range strings.Split(s, " ") {
		if w == "" || stop.Contains(w) {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Stem applies the Snowball English (Porter2) stemmer to each token.
func Stem(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = english.Stem(w, false)
	}
	return strings.Join(words, " ")
}

// RestrictVocabulary keeps tokens present in vocab, dropping dash fillers and
// tokens equal to source or to source without its last character.
func RestrictVocabulary(s string, vocab Vocabulary, source string) string {
	trimmed := source
	if r := []rune(source); len(r) > 0 {
		trimmed = string(r[:len(r)-1])
	}

	kept := make([]string, 0, strings.Count(s, " ")+1)
	for _, w := range strings.Split(s, " ") {
		if w == "" || !vocab.Contains(w) {
			continue
		}
		if _, filler := fillers[w]; filler {
			continue
		}
		if w == source || w == trimmed {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

// Normalizer runs the transform chain against a shared, read-only vocabulary.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	vocab Vocabulary
}

// New returns a Normalizer restricted to vocab.
func New(vocab Vocabulary) *Normalizer {
	return &Normalizer{vocab: vocab}
}

// Normalize cleans raw for the given language. An empty result is valid.
// Languages without a stop-word list fail with models.ErrUnsupportedLanguage.
func (n *Normalizer) Normalize(raw, language, source string) (string, error) {
	stop, err := stopwords.ForLanguage(language)
	if err != nil {
		return "", err
	}

	s := Sanitize(raw)
	s = CaseFold(s)
	s = RemoveStopWords(s, stop)
	s = Stem(s)
	return RestrictVocabulary(s, n.vocab, source), nil
}
