package excerpt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// periodSplitter splits after every period.
type periodSplitter struct{}

func (periodSplitter) Split(text string) []string {
	var out []string
	for _, part := range strings.SplitAfter(text, ".") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	content := "One. Two. Three. Four. Five. Six."

	tests := []struct {
		name string
		max  int
		want string
	}{
		{"first three", 3, "TitleOne.Two.Three."},
		{"first five", 5, "TitleOne.Two.Three.Four.Five."},
		{"more than available", 10, "TitleOne.Two.Three.Four.Five.Six."},
		{"zero", 0, "Title"},
		{"negative", -1, "Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(periodSplitter{}, "Title", content, tt.max))
		})
	}
}

func TestExtractor_EmptyContent(t *testing.T) {
	e := NewExtractor(periodSplitter{}, 5)
	assert.Equal(t, "Headline", e.Extract("Headline", ""))
}

func TestPunktSplitter(t *testing.T) {
	p, err := NewPunktSplitter()
	require.NoError(t, err)

	got := p.Split("Stocks rose on Monday. Investors were pleased. Bonds fell.")
	assert.Equal(t, []string{"Stocks rose on Monday.", "Investors were pleased.", "Bonds fell."}, got)
}
