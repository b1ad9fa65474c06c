package manifest

import (
	"fmt"
	"time"

	"github.com/dtnitsch/corpus-prep/models"
	"github.com/dtnitsch/corpus-prep/pkg/mapreduce"
	"github.com/dtnitsch/corpus-prep/pkg/pipeline"
	"github.com/dtnitsch/corpus-prep/pkg/storage"
	"gopkg.in/yaml.v3"
)

// TopKeywordCount is how many keywords each split lists.
const TopKeywordCount = 25

// RunInput describes what went into a run.
type RunInput struct {
	RunID        int64
	Path         string
	Seed         uint64
	Docs         []models.Document // labeled documents before splitting
	MissingLabel int
	Malformed    int
	TrainFile    string
	TestFile     string
}

// GenerateSummary builds the summary of a finished run. Output file sizes are
// read through s when the files exist.
func GenerateSummary(in RunInput, res *pipeline.Result, s *storage.Storage) RunSummary {
	summary := RunSummary{
		GeneratedAt:      time.Now().Format(time.RFC3339),
		RunID:            in.RunID,
		Input:            in.Path,
		Seed:             in.Seed,
		InputDocuments:   len(in.Docs),
		MissingLabel:     in.MissingLabel,
		Malformed:        in.Malformed,
		InputClassCounts: classCounts(in.Docs),
		Multiplier:       res.Multiplier,
	}

	splits := []struct {
		name pipeline.SplitName
		docs []models.Document
		file string
	}{
		{pipeline.SplitTrain, res.Train, in.TrainFile},
		{pipeline.SplitTest, res.Test, in.TestFile},
	}
	for _, sp := range splits {
		ss := SplitSummary{
			Name:        string(sp.name),
			File:        sp.file,
			Documents:   len(sp.docs),
			ClassCounts: classCounts(sp.docs),
		}

		for _, t := range res.Transitions {
			if t.Split == sp.name {
				ss.Stages = append(ss.Stages, StageCount{Stage: string(t.Stage), Documents: t.Documents})
			}
		}
		for _, r := range res.Rejections {
			if r.Split != sp.name {
				continue
			}
			if ss.Rejected == nil {
				ss.Rejected = make(map[string]int)
			}
			ss.Rejected[string(r.Reason)]++
		}

		contents := make([]string, len(sp.docs))
		for i, d := range sp.docs {
			contents[i] = d.Content
		}
		ss.TopKeywords = mapreduce.TopKeywords(mapreduce.BuildTable(contents).Counts(), TopKeywordCount)

		if sp.file != "" && s != nil {
			if stats, err := s.GetFileStats(sp.file); err == nil {
				ss.SizeBytes = stats.SizeBytes
			}
		}
		summary.Splits = append(summary.Splits, ss)
	}
	return summary
}

// YAML renders the summary.
func (m RunSummary) YAML() ([]byte, error) {
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("error marshalling summary: %w", err)
	}
	return data, nil
}

func classCounts(docs []models.Document) map[int]int {
	counts := make(map[int]int)
	for label, n := range models.CountByLabel(docs) {
		counts[int(label)] = n
	}
	return counts
}
