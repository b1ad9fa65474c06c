// Package split partitions a labeled dataset into train and test subsets
// preserving per-class proportions.
package split

import (
	"fmt"
	"math/rand/v2"

	"github.com/dtnitsch/corpus-prep/models"
)

// NewRand returns the generator used for shuffling. The same seed always
// produces the same split.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// TrainCount is the number of rows of a class that go to train: the count
// times the fraction, truncated.
func TrainCount(count int, fraction float64) int {
	return int(float64(count) * fraction)
}

// Stratified shuffles docs, takes the first TrainCount rows of each class into
// train and the rest into test, then shuffles both outputs independently.
// Rows whose label is not in classes appear in neither output.
func Stratified(docs []models.Document, fraction float64, classes []models.Label, rng *rand.Rand) (train, test []models.Document, err error) {
	if !(fraction > 0 && fraction < 1) {
		return nil, nil, fmt.Errorf("%w: got %v", models.ErrInvalidFraction, fraction)
	}
	seen := make(map[models.Label]struct{}, len(classes))
	for _, c := range classes {
		if _, dup := seen[c]; dup {
			return nil, nil, fmt.Errorf("class %d listed more than once", int(c))
		}
		seen[c] = struct{}{}
	}

	shuffled := models.CloneDocuments(docs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	train = make([]models.Document, 0, len(docs))
	test = make([]models.Document, 0, len(docs))
	for _, c := range classes {
		var group []models.Document
		for _, d := range shuffled {
			if d.Label == c {
				group = append(group, d)
			}
		}
		wall := TrainCount(len(group), fraction)
		train = append(train, group[:wall]...)
		test = append(test, group[wall:]...)
	}

	rng.Shuffle(len(train), func(i, j int) {
		train[i], train[j] = train[j], train[i]
	})
	rng.Shuffle(len(test), func(i, j int) {
		test[i], test[j] = test[j], test[i]
	})
	return train, test, nil
}
