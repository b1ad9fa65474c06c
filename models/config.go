package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PipelineConfig holds the corpus preparation policy. Values come from an
// optional YAML file and are overridden by CLI flags.
type PipelineConfig struct {
	TrainFraction      float64  `yaml:"train_fraction"`
	Classes            []Label  `yaml:"classes"`
	SupportedLanguages []string `yaml:"supported_languages"`
	CandidateLanguages []string `yaml:"candidate_languages,omitempty"` // detector restriction, empty = all
	MinCount           int      `yaml:"min_count"`
	MinTokens          int      `yaml:"min_tokens"`
	MaxSentences       int      `yaml:"max_sentences"`
	Seed               uint64   `yaml:"seed"`
	AugmentCopies      int      `yaml:"augment_copies"`
	SkipMalformed      bool     `yaml:"skip_malformed"`
}

// DefaultConfig returns the policy used when no config file is given.
func DefaultConfig() PipelineConfig {
	return PipelineConfig{
		TrainFraction:      0.8,
		Classes:            append([]Label(nil), DefaultClasses...),
		SupportedLanguages: []string{"en"},
		MinCount:           5,
		MinTokens:          8,
		MaxSentences:       5,
		AugmentCopies:      1,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (PipelineConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects table-level policy errors before any work starts.
func (c PipelineConfig) Validate() error {
	if !(c.TrainFraction > 0 && c.TrainFraction < 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidFraction, c.TrainFraction)
	}
	if len(c.Classes) == 0 {
		return fmt.Errorf("classes must not be empty")
	}
	seen := make(map[Label]struct{}, len(c.Classes))
	for _, l := range c.Classes {
		if !l.Valid() {
			return fmt.Errorf("class %d is not in {-1, 0, 1}", int(l))
		}
		if _, dup := seen[l]; dup {
			return fmt.Errorf("class %d listed more than once", int(l))
		}
		seen[l] = struct{}{}
	}
	if len(c.SupportedLanguages) == 0 {
		return fmt.Errorf("supported_languages must not be empty")
	}
	if c.MinCount < 1 {
		return fmt.Errorf("min_count must be positive, got %d", c.MinCount)
	}
	if c.MinTokens < 0 {
		return fmt.Errorf("min_tokens must not be negative, got %d", c.MinTokens)
	}
	if c.MaxSentences < 1 {
		return fmt.Errorf("max_sentences must be at least 1, got %d", c.MaxSentences)
	}
	if c.AugmentCopies < 1 {
		return fmt.Errorf("augment_copies must be at least 1, got %d", c.AugmentCopies)
	}
	return nil
}
