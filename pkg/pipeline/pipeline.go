// Package pipeline sequences a labeled corpus through split, augmentation,
// language gating, normalization, pruning, label encoding and export.
//
// Every stage takes a dataset and hands back a new one. Train and test move
// through the same stages independently and each builds its own frequency
// table.
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/langdetect"
	"github.com/dtnitsch/corpus-prep/pkg/prune"
	"github.com/dtnitsch/corpus-prep/pkg/split"
	"github.com/dtnitsch/corpus-prep/pkg/stopwords"
)

// Normalizer cleans one excerpt for a language.
type Normalizer interface {
	Normalize(raw, language, source string) (string, error)
}

// Excerpter picks the part of a document that gets normalized.
type Excerpter interface {
	Extract(title, content string) string
}

// Exporter persists the final datasets. It is called once, after both splits
// are label-encoded.
type Exporter interface {
	Export(train, test []models.Document) error
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(train, test []models.Document) error

func (f ExporterFunc) Export(train, test []models.Document) error {
	return f(train, test)
}

// Rejection is a document blanked by a stage. Index is the document's
// position in its split at the time of rejection.
type Rejection struct {
	Split    SplitName
	Index    int
	Reason   models.RemovalReason
	Language string
}

// Options wires the collaborators of a Pipeline. Augmenter defaults to a
// Replicator with Config.AugmentCopies and Logger to a discarding logger.
type Options struct {
	Config     models.PipelineConfig
	Normalizer Normalizer
	Excerpter  Excerpter
	Detector   langdetect.Detector
	Augmenter  Augmenter
	Rand       *rand.Rand
	Logger     *slog.Logger
}

type Pipeline struct {
	cfg        models.PipelineConfig
	normalizer Normalizer
	excerpter  Excerpter
	detector   langdetect.Detector
	gate       langdetect.Gate
	augmenter  Augmenter
	rng        *rand.Rand
	logger     *slog.Logger
}

// New validates the configuration and collaborators.
func New(opts Options) (*Pipeline, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	for _, code := range opts.Config.SupportedLanguages {
		if _, err := stopwords.ForLanguage(code); err != nil {
			return nil, fmt.Errorf("invalid pipeline config: %w", err)
		}
	}
	switch {
	case opts.Normalizer == nil:
		return nil, errors.New("pipeline requires a normalizer")
	case opts.Excerpter == nil:
		return nil, errors.New("pipeline requires an excerpter")
	case opts.Detector == nil:
		return nil, errors.New("pipeline requires a language detector")
	case opts.Rand == nil:
		return nil, errors.New("pipeline requires a random source")
	}

	p := &Pipeline{
		cfg:        opts.Config,
		normalizer: opts.Normalizer,
		excerpter:  opts.Excerpter,
		detector:   opts.Detector,
		gate:       langdetect.NewGate(opts.Config.SupportedLanguages),
		augmenter:  opts.Augmenter,
		rng:        opts.Rand,
		logger:     opts.Logger,
	}
	if p.augmenter == nil {
		p.augmenter = Replicator{Copies: opts.Config.AugmentCopies}
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return p, nil
}

// Result is everything a run produced.
type Result struct {
	Train       []models.Document
	Test        []models.Document
	Multiplier  int
	Transitions []Transition
	Rejections  []Rejection
}

// Run processes docs end to end and hands the result to exp. Per-document
// language and emptiness problems are recorded as rejections. Any returned
// error means exp was not called, or it failed.
func (p *Pipeline) Run(docs []models.Document, exp Exporter) (*Result, error) {
	trainTracker := NewTracker(SplitTrain, true)
	testTracker := NewTracker(SplitTest, false)

	train, test, err := split.Stratified(docs, p.cfg.TrainFraction, p.cfg.Classes, p.rng)
	if err != nil {
		return nil, fmt.Errorf("failed to split dataset: %w", err)
	}
	if err := p.advance(trainTracker, StageSplit, len(train)); err != nil {
		return nil, err
	}
	if err := p.advance(testTracker, StageSplit, len(test)); err != nil {
		return nil, err
	}

	train, multiplier, err := p.augmenter.Augment(train)
	if err != nil {
		return nil, fmt.Errorf("failed to augment train split: %w", err)
	}
	if err := p.advance(trainTracker, StageAugmented, len(train)); err != nil {
		return nil, err
	}

	res := &Result{Multiplier: multiplier}

	train, rejected, err := p.process(trainTracker, train, multiplier)
	if err != nil {
		return nil, err
	}
	res.Rejections = append(res.Rejections, rejected...)

	test, rejected, err = p.process(testTracker, test, 1)
	if err != nil {
		return nil, err
	}
	res.Rejections = append(res.Rejections, rejected...)

	if err := exp.Export(train, test); err != nil {
		return nil, fmt.Errorf("failed to export datasets: %w", err)
	}
	if err := p.advance(trainTracker, StageExported, len(train)); err != nil {
		return nil, err
	}
	if err := p.advance(testTracker, StageExported, len(test)); err != nil {
		return nil, err
	}

	res.Train = train
	res.Test = test
	res.Transitions = append(trainTracker.History(), testTracker.History()...)
	return res, nil
}

// process takes one split from language gating to label encoding.
func (p *Pipeline) process(t *Tracker, docs []models.Document, multiplier int) ([]models.Document, []Rejection, error) {
	var rejections []Rejection

	docs, rejected := p.languageGate(t.split, docs)
	rejections = append(rejections, rejected...)
	if err := p.advance(t, StageLanguageGated, len(docs)); err != nil {
		return nil, nil, err
	}

	docs, rejected, err := p.normalize(t.split, docs)
	if err != nil {
		return nil, nil, err
	}
	rejections = append(rejections, rejected...)
	if err := p.advance(t, StageNormalized, len(docs)); err != nil {
		return nil, nil, err
	}

	threshold := prune.Threshold(p.cfg.MinCount, multiplier)
	pruned := prune.Prune(docs, threshold, prune.Table(docs), p.cfg.MinTokens)
	for i := range pruned {
		if !docs[i].Blanked() && pruned[i].Blanked() {
			rejections = append(rejections, Rejection{Split: t.split, Index: i, Reason: models.RemovalTooShort})
		}
	}
	docs = prune.Cleanup(pruned)
	p.logger.Info("Pruned split", "split", t.split, "threshold", threshold, "kept", len(docs), "dropped", len(pruned)-len(docs))
	if err := p.advance(t, StagePruned, len(docs)); err != nil {
		return nil, nil, err
	}

	docs, err = encodeLabels(docs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode %s labels: %w", t.split, err)
	}
	if err := p.advance(t, StageLabelEncoded, len(docs)); err != nil {
		return nil, nil, err
	}
	return docs, rejections, nil
}

// languageGate blanks every document whose detected language is not supported.
// Blanked documents stay in place until the post-prune cleanup.
func (p *Pipeline) languageGate(name SplitName, docs []models.Document) ([]models.Document, []Rejection) {
	out := models.CloneDocuments(docs)
	var rejections []Rejection
	for i, d := range out {
		code, ok := p.detector.Detect(d.Content)
		if ok && p.gate.Allows(code) {
			out[i].Language = code
			continue
		}
		out[i] = d.Blank(models.RemovalUnsupportedLanguage)
		out[i].Language = code
		p.logger.Warn("Unsupported language", "split", name, "index", i, "language", displayCode(code))
		rejections = append(rejections, Rejection{Split: name, Index: i, Reason: models.RemovalUnsupportedLanguage, Language: code})
	}
	return out, rejections
}

// normalize replaces each surviving document's content with its normalized
// excerpt.
func (p *Pipeline) normalize(name SplitName, docs []models.Document) ([]models.Document, []Rejection, error) {
	out := models.CloneDocuments(docs)
	var rejections []Rejection
	for i, d := range out {
		if d.Blanked() {
			continue
		}
		text := p.excerpter.Extract(d.Title, d.Content)
		normalized, err := p.normalizer.Normalize(text, d.Language, d.Source)
		if errors.Is(err, models.ErrUnsupportedLanguage) {
			out[i] = d.Blank(models.RemovalUnsupportedLanguage)
			p.logger.Warn("Unsupported language", "split", name, "index", i, "language", displayCode(d.Language))
			rejections = append(rejections, Rejection{Split: name, Index: i, Reason: models.RemovalUnsupportedLanguage, Language: d.Language})
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to normalize %s document %d: %w", name, i, err)
		}
		if normalized == "" {
			out[i] = d.Blank(models.RemovalEmptyNormalized)
			rejections = append(rejections, Rejection{Split: name, Index: i, Reason: models.RemovalEmptyNormalized, Language: d.Language})
			continue
		}
		out[i].Content = normalized
	}
	return out, rejections, nil
}

func encodeLabels(docs []models.Document) ([]models.Document, error) {
	out := models.CloneDocuments(docs)
	for i, d := range out {
		encoded, err := d.Label.Encode()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out[i].Label = encoded
	}
	return out, nil
}

func (p *Pipeline) advance(t *Tracker, to Stage, documents int) error {
	if err := t.Advance(to, documents); err != nil {
		return err
	}
	p.logger.Info("Stage complete", "split", t.split, "stage", to, "documents", documents)
	return nil
}

func displayCode(code string) string {
	if code == "" {
		return "undetected"
	}
	return code
}
