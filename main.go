package main

import (
	"fmt"
	"log"
	"os"

	dbactions "github.com/dtnitsch/corpus-prep/internal/db"
	"github.com/dtnitsch/corpus-prep/internal/normalize"
	"github.com/dtnitsch/corpus-prep/internal/prepare"
	"github.com/dtnitsch/corpus-prep/pkg/help"
	"github.com/urfave/cli/v2"
)

func dbFlag() cli.Flag {
	return &cli.StringFlag{Name: "db", Usage: "ledger path (default next to the binary)"}
}

func main() {
	app := &cli.App{
		Name:  "corpus-prep",
		Usage: "Split, normalize and prune a labeled news corpus for classifier training",
		Commands: []*cli.Command{
			{
				Name:   "prepare",
				Usage:  "Run the full pipeline and write the train and test CSVs",
				Flags:  prepare.Flags(),
				Action: prepare.PrepareAction,
			},
			{
				Name:  "normalize",
				Usage: "Excerpt and normalize a single text (--text or stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "vocab", Usage: "embedding file; the first token of each line is a vocabulary word", Required: true},
					&cli.StringFlag{Name: "text", Usage: "document body (default stdin)"},
					&cli.StringFlag{Name: "title", Usage: "document title, prefixed to the excerpt"},
					&cli.StringFlag{Name: "source", Usage: "source name removed from the output"},
					&cli.StringFlag{Name: "language", Usage: "ISO 639-1 code (default detect)"},
					&cli.IntFlag{Name: "max-sentences", Value: 5, Usage: "sentences of the body kept in the excerpt"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
				},
				Action: normalize.NormalizeAction,
			},
			{
				Name:  "runs",
				Usage: "Inspect the run ledger",
				Subcommands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List recorded runs, most recent first",
						Flags: []cli.Flag{
							dbFlag(),
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum runs to show (0 = all)"},
						},
						Action: dbactions.RunsAction,
					},
					{
						Name:      "show",
						Usage:     "Show stages and rejections for a run",
						ArgsUsage: "[run-id]",
						Flags: []cli.Flag{
							dbFlag(),
							&cli.IntFlag{Name: "rejections", Value: 20, Usage: "rejected documents to list (-1 = all)"},
						},
						Action: dbactions.RunAction,
					},
				},
			},
			{
				Name:  "coldstart",
				Usage: "Print a quick-start guide",
				Action: func(c *cli.Context) error {
					fmt.Print(help.ColdstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
