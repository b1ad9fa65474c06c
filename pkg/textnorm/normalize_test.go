package textnorm

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/stopwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wordSet map[string]struct{}

func (w wordSet) Contains(word string) bool {
	_, ok := w[word]
	return ok
}

func newWordSet(words ...string) wordSet {
	ws := make(wordSet, len(words))
	for _, w := range words {
		ws[w] = struct{}{}
	}
	return ws
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "html tags stripped",
			input: "a<b>bold</b>c",
			want:  "aboldc",
		},
		{
			name:  "unprintable dropped",
			input: "Investors’ café",
			want:  "Investors caf",
		},
		{
			name:  "symbols become spaces",
			input: "3.5%!",
			want:  "3 5% ",
		},
		{
			name:  "tags do not span newlines",
			input: "x <a\nb> y",
			want:  "x  a b  y",
		},
		{
			name:  "whitespace controls replaced",
			input: "a\tb\r\nc",
			want:  "a b  c",
		},
		{
			name:  "invalid utf-8 dropped",
			input: "a\xffb",
			want:  "ab",
		},
		{
			name:  "hyphen kept",
			input: "well-known",
			want:  "well-known",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestRemoveStopWords(t *testing.T) {
	en, err := stopwords.ForLanguage("en")
	require.NoError(t, err)

	got := RemoveStopWords("the  market is up and stocks   rose", en)
	assert.Equal(t, "market stocks rose", got)
	assert.Equal(t, "", RemoveStopWords("", en))
	assert.Equal(t, "", RemoveStopWords("the a an", en))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "stock rose investor mood improv", Stem("stocks rose investors mood improved"))
	assert.Equal(t, "", Stem(""))
}

func TestRestrictVocabulary(t *testing.T) {
	vocab := newWordSet("stock", "cnn", "cn", "-", "--", "---", "rose")

	tests := []struct {
		name   string
		input  string
		source string
		want   string
	}{
		{"unknown tokens dropped", "stock 3 rose xyz", "", "stock rose"},
		{"dash fillers dropped", "stock - -- --- rose", "", "stock rose"},
		{"source dropped", "cnn stock", "cnn", "stock"},
		{"source minus last char dropped", "cn stock", "cnn", "stock"},
		{"everything dropped", "cnn cn", "cnn", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RestrictVocabulary(tt.input, vocab, tt.source))
		})
	}
}

func TestNormalize_Example(t *testing.T) {
	vocab := newWordSet("stock", "rose", "investor", "mood", "improv")
	n := New(vocab)

	got, err := n.Normalize("Stocks <b>rose</b> 3.5%! Investors’ mood improved.", "en", "reuters")
	require.NoError(t, err)
	assert.Equal(t, "stock rose investor mood improv", got)
}

func TestNormalize_UnsupportedLanguage(t *testing.T) {
	n := New(newWordSet("stock"))

	_, err := n.Normalize("Stocks rose", "fr", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrUnsupportedLanguage))
}

func TestNormalize_EmptyIsValid(t *testing.T) {
	n := New(newWordSet("stock"))

	got, err := n.Normalize("<p>The, and; of!</p>", "en", "")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestNormalize_IdempotentOnCleanInput(t *testing.T) {
	vocab := newWordSet("stock", "rose", "investor", "mood", "improv")
	n := New(vocab)

	clean := "stock rose investor mood improv"
	got, err := n.Normalize(clean, "en", "")
	require.NoError(t, err)
	assert.Equal(t, clean, got)
}

func TestNormalize_OutputInVocabulary(t *testing.T) {
	vocab := newWordSet("market", "fell", "bank", "rate", "cut")
	n := New(vocab)

	inputs := []string{
		"Markets fell after the bank's rate cut.",
		"<div>Rates</div> were CUT -- again; markets FELL!",
		"Nothing here matches",
	}
	for _, in := range inputs {
		got, err := n.Normalize(in, "en", "bank")
		require.NoError(t, err)
		for _, tok := range strings.Fields(got) {
			assert.True(t, vocab.Contains(tok), "token %q not in vocabulary", tok)
		}
		assert.False(t, strings.HasSuffix(got, " "))
	}
}
