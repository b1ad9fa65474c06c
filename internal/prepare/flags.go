package prepare

import (
	"time"

	"github.com/urfave/cli/v2"
)

// Flags are the options of the prepare command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "labeled corpus CSV (title, content, source, classes)", Required: true},
		&cli.StringFlag{Name: "vocab", Usage: "embedding file; the first token of each line is a vocabulary word", Required: true},
		&cli.StringFlag{Name: "train-out", Value: "train.csv", Usage: "train split output path"},
		&cli.StringFlag{Name: "test-out", Value: "test.csv", Usage: "test split output path"},
		&cli.StringFlag{Name: "config", Usage: "YAML pipeline config; flags override its values"},
		&cli.Float64Flag{Name: "train-fraction", Value: 0.8, Usage: "share of each class that goes to train, strictly between 0 and 1"},
		&cli.IntSliceFlag{Name: "classes", Usage: "labels to stratify over, e.g. --classes=-1,0,1"},
		&cli.StringFlag{Name: "languages", Value: "en", Usage: "comma-separated ISO 639-1 codes that pass the language gate"},
		&cli.StringFlag{Name: "candidate-languages", Usage: "restrict language detection to these codes (default all)"},
		&cli.IntFlag{Name: "min-count", Value: 5, Usage: "minimum corpus count for a word to survive pruning"},
		&cli.IntFlag{Name: "min-tokens", Value: 8, Usage: "documents shorter than this after pruning are dropped"},
		&cli.IntFlag{Name: "max-sentences", Value: 5, Usage: "sentences of the body kept in the excerpt"},
		&cli.Uint64Flag{Name: "seed", Usage: "shuffle seed; 0 derives one from the clock"},
		&cli.IntFlag{Name: "augment-copies", Value: 1, Usage: "copies of each train document"},
		&cli.BoolFlag{Name: "skip-malformed", Usage: "drop rows missing title, content or source instead of failing"},
		&cli.StringFlag{Name: "vocab-cache-dir", Usage: "cache the parsed vocabulary in this directory"},
		&cli.DurationFlag{Name: "cache-ttl", Value: 24 * time.Hour, Usage: "vocabulary cache lifetime (0 = never expires)"},
		&cli.BoolFlag{Name: "ledger", Usage: "record the run in the SQLite ledger"},
		&cli.StringFlag{Name: "db", Usage: "ledger path (default next to the binary)"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
	}
}
