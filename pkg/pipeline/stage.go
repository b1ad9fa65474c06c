package pipeline

import (
	"fmt"

	"github.com/dtnitsch/corpus-prep/models"
)

// Stage is a state a dataset passes through.
type Stage string

const (
	StageRaw           Stage = "RAW"
	StageSplit         Stage = "SPLIT"
	StageAugmented     Stage = "AUGMENTED"
	StageLanguageGated Stage = "LANGUAGE-GATED"
	StageNormalized    Stage = "NORMALIZED"
	StagePruned        Stage = "PRUNED"
	StageLabelEncoded  Stage = "LABEL-ENCODED"
	StageExported      Stage = "EXPORTED"
)

// SplitName identifies the train or test dataset.
type SplitName string

const (
	SplitTrain SplitName = "train"
	SplitTest  SplitName = "test"
)

// Transition is one entered stage with the dataset size at that point.
type Transition struct {
	Split     SplitName
	Stage     Stage
	Documents int
}

// Tracker enforces the stage order of a single dataset. Only the train split
// passes through StageAugmented.
type Tracker struct {
	split   SplitName
	order   []Stage
	pos     int
	history []Transition
}

// NewTracker starts a dataset at StageRaw.
func NewTracker(split SplitName, augmented bool) *Tracker {
	order := []Stage{StageRaw, StageSplit}
	if augmented {
		order = append(order, StageAugmented)
	}
	order = append(order, StageLanguageGated, StageNormalized, StagePruned, StageLabelEncoded, StageExported)
	return &Tracker{split: split, order: order}
}

// Current returns the stage the dataset is in.
func (t *Tracker) Current() Stage {
	return t.order[t.pos]
}

// Advance moves to the next stage. Skipping or repeating a stage fails with
// models.ErrStageOrder.
func (t *Tracker) Advance(to Stage, documents int) error {
	if t.pos+1 >= len(t.order) || t.order[t.pos+1] != to {
		return fmt.Errorf("%w: %s cannot move from %s to %s", models.ErrStageOrder, t.split, t.Current(), to)
	}
	t.pos++
	t.history = append(t.history, Transition{Split: t.split, Stage: to, Documents: documents})
	return nil
}

// History returns the transitions made so far, oldest first.
func (t *Tracker) History() []Transition {
	return append([]Transition(nil), t.history...)
}
