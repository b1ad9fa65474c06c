package pipeline

import (
	"fmt"

	"github.com/dtnitsch/corpus-prep/models"
)

// Augmenter enlarges the train split. The returned multiplier scales the train
// pruning threshold and is otherwise opaque.
type Augmenter interface {
	Augment(train []models.Document) ([]models.Document, int, error)
}

// Replicator repeats every document Copies times in place.
type Replicator struct {
	Copies int
}

func (r Replicator) Augment(train []models.Document) ([]models.Document, int, error) {
	if r.Copies < 1 {
		return nil, 0, fmt.Errorf("replicator copies must be at least 1, got %d", r.Copies)
	}
	out := make([]models.Document, 0, len(train)*r.Copies)
	for _, d := range train {
		for i := 0; i < r.Copies; i++ {
			out = append(out, d)
		}
	}
	return out, r.Copies, nil
}
