package prepare

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/excerpt"
	"github.com/dtnitsch/corpus-prep/pkg/langdetect"
	"github.com/urfave/cli/v2"
)

func PrepareAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := ResolveConfig(c)
	if err != nil {
		return err
	}

	job := Job{
		Input:         c.String("input"),
		Vocabulary:    c.String("vocab"),
		TrainOut:      c.String("train-out"),
		TestOut:       c.String("test-out"),
		VocabCacheDir: c.String("vocab-cache-dir"),
		CacheTTL:      c.Duration("cache-ttl"),
		Ledger:        c.Bool("ledger"),
		DBPath:        c.String("db"),
		Config:        cfg,
	}

	detector, err := langdetect.NewLingua(cfg.CandidateLanguages)
	if err != nil {
		return fmt.Errorf("failed to build language detector: %w", err)
	}
	splitter, err := excerpt.NewPunktSplitter()
	if err != nil {
		return err
	}

	summary, err := Execute(job, Collaborators{Detector: detector, Splitter: splitter}, logger)
	if err != nil {
		return err
	}

	data, err := summary.YAML()
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

// ResolveConfig loads --config when given and applies every flag the user set
// on top of it.
func ResolveConfig(c *cli.Context) (models.PipelineConfig, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.IsSet("train-fraction") {
		cfg.TrainFraction = c.Float64("train-fraction")
	}
	if c.IsSet("classes") {
		classes, err := parseClasses(c.IntSlice("classes"))
		if err != nil {
			return cfg, err
		}
		cfg.Classes = classes
	}
	if c.IsSet("languages") {
		cfg.SupportedLanguages = splitCodes(c.String("languages"))
	}
	if c.IsSet("candidate-languages") {
		cfg.CandidateLanguages = splitCodes(c.String("candidate-languages"))
	}
	if c.IsSet("min-count") {
		cfg.MinCount = c.Int("min-count")
	}
	if c.IsSet("min-tokens") {
		cfg.MinTokens = c.Int("min-tokens")
	}
	if c.IsSet("max-sentences") {
		cfg.MaxSentences = c.Int("max-sentences")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Uint64("seed")
	}
	if c.IsSet("augment-copies") {
		cfg.AugmentCopies = c.Int("augment-copies")
	}
	if c.IsSet("skip-malformed") {
		cfg.SkipMalformed = c.Bool("skip-malformed")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseClasses(raw []int) ([]models.Label, error) {
	classes := make([]models.Label, len(raw))
	for i, v := range raw {
		l := models.Label(v)
		if !l.Valid() {
			return nil, fmt.Errorf("class %d is not in {-1, 0, 1}", v)
		}
		classes[i] = l
	}
	return classes, nil
}

func splitCodes(s string) []string {
	var codes []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
