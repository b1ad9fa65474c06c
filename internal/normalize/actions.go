package normalize

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dtnitsch/corpus-prep/pkg/excerpt"
	"github.com/dtnitsch/corpus-prep/pkg/langdetect"
	"github.com/dtnitsch/corpus-prep/pkg/textnorm"
	"github.com/dtnitsch/corpus-prep/pkg/vocabulary"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

// Output is what the normalize command prints.
type Output struct {
	Language   string `yaml:"language"`
	Detected   bool   `yaml:"detected"`
	Excerpt    string `yaml:"excerpt"`
	Normalized string `yaml:"normalized"`
	Tokens     int    `yaml:"tokens"`
}

// Request is one text to run through the excerpt and normalizer.
type Request struct {
	Title        string
	Content      string
	Source       string
	Language     string // empty means detect
	MaxSentences int
}

func NormalizeAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	content := c.String("text")
	if content == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no text provided via --text or stdin")
	}

	vocab, err := vocabulary.Load(c.String("vocab"), nil, logger)
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	splitter, err := excerpt.NewPunktSplitter()
	if err != nil {
		return err
	}

	var detector langdetect.Detector
	if c.String("language") == "" {
		lingua, err := langdetect.NewLingua(nil)
		if err != nil {
			return fmt.Errorf("failed to build language detector: %w", err)
		}
		detector = lingua
	}

	out, err := Run(Request{
		Title:        c.String("title"),
		Content:      content,
		Source:       c.String("source"),
		Language:     strings.ToLower(c.String("language")),
		MaxSentences: c.Int("max-sentences"),
	}, textnorm.New(vocab), splitter, detector)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

// Run excerpts and normalizes a single document. detector is only consulted
// when req.Language is empty.
func Run(req Request, n *textnorm.Normalizer, splitter excerpt.SentenceSplitter, detector langdetect.Detector) (Output, error) {
	out := Output{Language: req.Language}
	if req.MaxSentences < 1 {
		return out, fmt.Errorf("max sentences must be at least 1, got %d", req.MaxSentences)
	}
	if out.Language == "" {
		if detector == nil {
			return out, fmt.Errorf("no language given and no detector available")
		}
		out.Language, out.Detected = detector.Detect(req.Content)
	}

	out.Excerpt = excerpt.Extract(splitter, req.Title, req.Content, req.MaxSentences)
	normalized, err := n.Normalize(out.Excerpt, out.Language, req.Source)
	if err != nil {
		return out, err
	}
	out.Normalized = normalized
	out.Tokens = len(strings.Fields(normalized))
	return out, nil
}
