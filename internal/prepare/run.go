package prepare

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/caching"
	"github.com/dtnitsch/corpus-prep/pkg/dataset"
	"github.com/dtnitsch/corpus-prep/pkg/db"
	"github.com/dtnitsch/corpus-prep/pkg/excerpt"
	"github.com/dtnitsch/corpus-prep/pkg/langdetect"
	"github.com/dtnitsch/corpus-prep/pkg/manifest"
	"github.com/dtnitsch/corpus-prep/pkg/pipeline"
	"github.com/dtnitsch/corpus-prep/pkg/split"
	"github.com/dtnitsch/corpus-prep/pkg/storage"
	"github.com/dtnitsch/corpus-prep/pkg/textnorm"
	"github.com/dtnitsch/corpus-prep/pkg/vocabulary"
)

// Job is one fully resolved prepare invocation.
type Job struct {
	Input         string
	Vocabulary    string
	TrainOut      string
	TestOut       string
	VocabCacheDir string
	CacheTTL      time.Duration
	Ledger        bool
	DBPath        string
	Config        models.PipelineConfig
}

// Collaborators are the pluggable parts Execute does not build itself.
type Collaborators struct {
	Detector  langdetect.Detector
	Splitter  excerpt.SentenceSplitter
	Augmenter pipeline.Augmenter // nil means a Replicator
}

// Execute runs a prepare job. Nothing is written to TrainOut or TestOut unless
// the whole pipeline succeeds.
func Execute(job Job, collab Collaborators, logger *slog.Logger) (*manifest.RunSummary, error) {
	cfg := job.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
		logger.Info("Derived random seed", "seed", cfg.Seed)
	}

	var ledger *db.DB
	var runID int64
	if job.Ledger {
		var err error
		ledger, err = db.Open(job.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open run ledger: %w", err)
		}
		defer ledger.Close()

		runID, err = ledger.CreateRun(job.Input, cfg.Seed, cfg.TrainFraction, cfg.MinCount)
		if err != nil {
			return nil, fmt.Errorf("failed to record run: %w", err)
		}
		logger.Info("Run recorded", "run_id", runID, "db", ledger.Path())
	}

	summary, res, err := execute(job, cfg, collab, runID, logger)
	if ledger == nil {
		return summary, err
	}

	if err != nil {
		if ferr := ledger.FinishRun(runID, db.RunOutcome{Status: db.StatusFailed, Err: err}); ferr != nil {
			logger.Error("failed to record run failure", "run_id", runID, "error", ferr)
		}
		return nil, err
	}
	if err := recordRun(ledger, runID, job, summary, res); err != nil {
		return nil, err
	}
	return summary, nil
}

func execute(job Job, cfg models.PipelineConfig, collab Collaborators, runID int64, logger *slog.Logger) (*manifest.RunSummary, *pipeline.Result, error) {
	read, err := dataset.ReadFile(job.Input, dataset.ReadOptions{SkipMalformed: cfg.SkipMalformed, Logger: logger})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	logger.Info("Dataset loaded", "path", job.Input, "documents", len(read.Docs),
		"missing_label", read.MissingLabel, "malformed", read.Malformed)

	var cache *caching.Cache
	if job.VocabCacheDir != "" {
		cache, err = caching.NewCache(job.VocabCacheDir, job.CacheTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize vocabulary cache: %w", err)
		}
	}
	vocab, err := vocabulary.Load(job.Vocabulary, cache, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}

	p, err := pipeline.New(pipeline.Options{
		Config:     cfg,
		Normalizer: textnorm.New(vocab),
		Excerpter:  excerpt.NewExtractor(collab.Splitter, cfg.MaxSentences),
		Detector:   collab.Detector,
		Augmenter:  collab.Augmenter,
		Rand:       split.NewRand(cfg.Seed),
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, err
	}

	s := &storage.Storage{}
	res, err := p.Run(read.Docs, pipeline.ExporterFunc(func(train, test []models.Document) error {
		trainData, err := dataset.Encode(train)
		if err != nil {
			return fmt.Errorf("failed to encode train split: %w", err)
		}
		testData, err := dataset.Encode(test)
		if err != nil {
			return fmt.Errorf("failed to encode test split: %w", err)
		}
		return s.SaveAll([]storage.File{
			{Path: job.TrainOut, Content: trainData},
			{Path: job.TestOut, Content: testData},
		})
	}))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Datasets exported", "train", job.TrainOut, "train_documents", len(res.Train),
		"test", job.TestOut, "test_documents", len(res.Test), "rejections", len(res.Rejections))

	summary := manifest.GenerateSummary(manifest.RunInput{
		RunID:        runID,
		Path:         job.Input,
		Seed:         cfg.Seed,
		Docs:         read.Docs,
		MissingLabel: read.MissingLabel,
		Malformed:    read.Malformed,
		TrainFile:    job.TrainOut,
		TestFile:     job.TestOut,
	}, res, s)
	return &summary, res, nil
}

func recordRun(ledger *db.DB, runID int64, job Job, summary *manifest.RunSummary, res *pipeline.Result) error {
	transitions := make([]db.StageTransition, len(res.Transitions))
	for i, t := range res.Transitions {
		transitions[i] = db.StageTransition{Split: string(t.Split), Stage: string(t.Stage), Documents: t.Documents}
	}
	if err := ledger.RecordStages(runID, transitions); err != nil {
		return err
	}

	rejections := make([]db.Rejection, len(res.Rejections))
	for i, r := range res.Rejections {
		rejections[i] = db.Rejection{Split: string(r.Split), Index: r.Index, Reason: string(r.Reason), Language: r.Language}
	}
	if err := ledger.RecordRejections(runID, rejections); err != nil {
		return err
	}

	return ledger.FinishRun(runID, db.RunOutcome{
		Status:     db.StatusSucceeded,
		InputCount: summary.InputDocuments,
		TrainCount: len(res.Train),
		TestCount:  len(res.Test),
		TrainPath:  job.TrainOut,
		TestPath:   job.TestOut,
	})
}
