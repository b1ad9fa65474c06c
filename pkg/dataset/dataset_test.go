package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `,title,content,source,classes,date
0,Stocks rise,"Stocks rose, again.",reuters,1.0,2019-01-01
1,No label,Body,cnn,,2019-01-02
2,Bonds fall,Bonds fell.,bbc,-1.0,2019-01-03
3,Flat,Nothing happened.,ap,0,2019-01-04
4,Odd,Label outside set.,ap,2,2019-01-05
`
	res, err := Read(strings.NewReader(input), ReadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.MissingLabel)
	require.Len(t, res.Docs, 4)
	assert.Equal(t, models.Document{Title: "Stocks rise", Content: "Stocks rose, again.", Source: "reuters", Label: models.LabelPositive}, res.Docs[0])
	assert.Equal(t, models.LabelNegative, res.Docs[1].Label)
	assert.Equal(t, models.LabelNeutral, res.Docs[2].Label)
	assert.Equal(t, models.Label(2), res.Docs[3].Label, "out-of-set labels are left for the splitter to exclude")
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("title,content,classes\na,b,1\n"), ReadOptions{})
	var malformed *models.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 0, malformed.Row)
	assert.Equal(t, ColumnSource, malformed.Field)
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""), ReadOptions{})
	assert.True(t, errors.Is(err, models.ErrMalformedRecord))
}

func TestRead_MalformedRow(t *testing.T) {
	input := "title,content,source,classes\nok,body,src,1\n,body,src,0\nshort,row\nbad,body,src,abc\n"

	_, err := Read(strings.NewReader(input), ReadOptions{})
	var malformed *models.MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 2, malformed.Row)
	assert.Equal(t, ColumnTitle, malformed.Field)
	assert.True(t, errors.Is(err, models.ErrMalformedRecord))

	res, err := Read(strings.NewReader(input), ReadOptions{SkipMalformed: true})
	require.NoError(t, err)
	assert.Len(t, res.Docs, 1)
	assert.Equal(t, 2, res.Malformed)
	// "short,row" has no label cell at all, so it counts as unlabeled.
	assert.Equal(t, 1, res.MissingLabel)
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw      string
		want     models.Label
		hasLabel bool
		wantErr  bool
	}{
		{"1", 1, true, false},
		{"-1.0", -1, true, false},
		{" 0.0 ", 0, true, false},
		{"", 0, false, false},
		{"NaN", 0, false, false},
		{"0.5", 0, false, true},
		{"pos", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok, err := parseLabel(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.hasLabel, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode_RoundTripsThroughRead(t *testing.T) {
	docs := []models.Document{
		{Title: "A, quoted \"title\"", Content: "stock rose", Source: "reuters", Label: 2},
		{Title: "B", Content: "bond fell", Source: "cnn", Label: 0},
	}

	data, err := Encode(docs)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), ",title,content,source,classes\n0,"))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, data, 0644))

	res, err := ReadFile(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, docs, res.Docs)
}
