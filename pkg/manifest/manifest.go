package manifest

// RunSummary is the YAML overview printed after a prepare run. It gives the
// class balance, what each stage dropped, and the dominant vocabulary of each
// split without opening the output files.
type RunSummary struct {
	GeneratedAt      string         `yaml:"generated_at"`
	RunID            int64          `yaml:"run_id,omitempty"`
	Input            string         `yaml:"input"`
	Seed             uint64         `yaml:"seed"`
	InputDocuments   int            `yaml:"input_documents"`
	MissingLabel     int            `yaml:"missing_label"`
	Malformed        int            `yaml:"malformed,omitempty"`
	InputClassCounts map[int]int    `yaml:"input_class_counts"`
	Multiplier       int            `yaml:"augmentation_multiplier"`
	Splits           []SplitSummary `yaml:"splits"`
}

// SplitSummary describes one exported split.
type SplitSummary struct {
	Name        string         `yaml:"name"`
	File        string         `yaml:"file,omitempty"`
	SizeBytes   int64          `yaml:"size_bytes,omitempty"`
	Documents   int            `yaml:"documents"`
	ClassCounts map[int]int    `yaml:"class_counts"` // encoded labels
	Stages      []StageCount   `yaml:"stages"`
	Rejected    map[string]int `yaml:"rejected,omitempty"`
	TopKeywords []string       `yaml:"top_keywords,omitempty"`
}

// StageCount is the dataset size on entering a stage.
type StageCount struct {
	Stage     string `yaml:"stage"`
	Documents int    `yaml:"documents"`
}
