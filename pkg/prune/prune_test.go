package prune

import (
	"strings"
	"testing"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(content string) models.Document {
	return models.Document{Title: "t", Content: content, Source: "s", Label: models.LabelNeutral}
}

func TestThreshold(t *testing.T) {
	assert.Equal(t, 5, Threshold(5, 1))
	assert.Equal(t, 15, Threshold(5, 3))
	assert.Equal(t, 5, Threshold(5, 0))
}

func TestPrune_RemovesRareWordsEverywhere(t *testing.T) {
	// "stock" appears 3 times corpus-wide, below min_count 5, even though doc 0
	// uses it twice.
	common := "rate rate rate rate rate bank bank bank bank bank fed fed fed fed fed"
	docs := []models.Document{
		doc("stock stock rate bank fed rate bank fed rate bank"),
		doc("stock rate bank fed rate bank fed rate bank fed"),
		doc(common),
	}
	table := Table(docs)
	require.Equal(t, 3, table.Count("stock"))

	out := Prune(docs, 5, table, 8)
	for _, d := range out {
		assert.NotContains(t, strings.Fields(d.Content), "stock")
	}
	assert.Equal(t, "rate bank fed rate bank fed rate bank", out[0].Content)
	assert.Equal(t, "rate bank fed rate bank fed rate bank fed", out[1].Content)
}

func TestPrune_ShortDocumentsBlanked(t *testing.T) {
	docs := []models.Document{
		doc("a a a a a a a a"),
		doc("a a a a a a a"),
		doc("a b c d e f g h"),
	}
	table := Table(docs)

	out := Prune(docs, 1, table, 8)
	assert.Equal(t, "a a a a a a a a", out[0].Content)
	assert.Equal(t, models.RemovalNone, out[0].Removal)
	assert.Equal(t, "", out[1].Content)
	assert.Equal(t, models.RemovalTooShort, out[1].Removal)
	assert.Equal(t, "a b c d e f g h", out[2].Content)

	// Pruning returns a new sequence.
	assert.Equal(t, "a a a a a a a", docs[1].Content)
}

func TestPrune_KeepsEarlierRemovalReason(t *testing.T) {
	docs := []models.Document{doc("x").Blank(models.RemovalUnsupportedLanguage)}
	out := Prune(docs, 1, Table(docs), 8)
	assert.Equal(t, models.RemovalUnsupportedLanguage, out[0].Removal)
}

func TestPrune_Monotonic(t *testing.T) {
	docs := []models.Document{
		doc("stock stock bond rate rate rate fed fed fed fed bank"),
		doc("stock bond bond rate fed fed bank bank bank bank bank"),
		doc("bond rate fed bank bank euro euro yen yen yen yen"),
	}
	table := Table(docs)

	for k := 1; k < 8; k++ {
		loose := Prune(docs, k, table, 0)
		strict := Prune(docs, k+1, table, 0)
		for i := range docs {
			assert.LessOrEqual(t, strict[i].TokenCount(), loose[i].TokenCount(), "k=%d doc=%d", k, i)
		}
	}
}

func TestCleanup(t *testing.T) {
	docs := []models.Document{
		doc("keep one"),
		doc("").Blank(models.RemovalTooShort),
		doc("x").Blank(models.RemovalUnsupportedLanguage),
		doc("keep two"),
	}

	out := Cleanup(docs)
	require.Len(t, out, 2)
	assert.Equal(t, "keep one", out[0].Content)
	assert.Equal(t, "keep two", out[1].Content)
	assert.Len(t, docs, 4)
}
