package normalize

import (
	"errors"
	"strings"
	"testing"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/textnorm"
	"github.com/dtnitsch/corpus-prep/pkg/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type periodSplitter struct{}

func (periodSplitter) Split(text string) []string {
	var out []string
	for _, s := range strings.SplitAfter(text, ".") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type fixedDetector string

func (d fixedDetector) Detect(string) (string, bool) { return string(d), d != "" }

func TestRun(t *testing.T) {
	n := textnorm.New(vocabulary.New("stock", "rose", "investor", "mood", "improv", "bond"))

	tests := []struct {
		name     string
		req      Request
		detector fixedDetector
		want     Output
		wantErr  error
	}{
		{
			name: "explicit language",
			req: Request{
				Title:        "Markets ",
				Content:      "Stocks <b>rose</b>. Investors mood improved. Bonds were flat.",
				Source:       "reuters",
				Language:     "en",
				MaxSentences: 2,
			},
			want: Output{
				Language:   "en",
				Excerpt:    "Markets Stocks <b>rose</b>.Investors mood improved.",
				Normalized: "stock rose investor mood improv",
				Tokens:     5,
			},
		},
		{
			name:     "detected language",
			req:      Request{Content: "Bonds.", MaxSentences: 5},
			detector: "en",
			want:     Output{Language: "en", Detected: true, Excerpt: "Bonds.", Normalized: "bond", Tokens: 1},
		},
		{
			name:     "unsupported language",
			req:      Request{Content: "Der Markt.", MaxSentences: 5},
			detector: "de",
			wantErr:  models.ErrUnsupportedLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Run(tt.req, n, periodSplitter{}, tt.detector)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRun_NoDetector(t *testing.T) {
	_, err := Run(Request{Content: "x", MaxSentences: 5}, textnorm.New(vocabulary.New()), periodSplitter{}, nil)
	assert.Error(t, err)
}

func TestRun_RejectsMaxSentencesBelowOne(t *testing.T) {
	norm := textnorm.New(vocabulary.New("bond"))
	for _, n := range []int{0, -1} {
		_, err := Run(Request{Content: "Bonds.", Language: "en", MaxSentences: n}, norm, periodSplitter{}, nil)
		assert.Error(t, err, "max sentences %d", n)
	}
}
