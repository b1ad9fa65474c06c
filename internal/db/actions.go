package db

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	dbpkg "github.com/dtnitsch/corpus-prep/pkg/db"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	PrintRuns(os.Stdout, runs)
	return nil
}

// PrintRuns writes the run table.
func PrintRuns(w io.Writer, runs []dbpkg.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return
	}

	fmt.Fprintf(w, "%-6s %-20s %-10s %-8s %-8s %-8s %-22s %-30s\n",
		"ID", "Created", "Status", "Input", "Train", "Test", "Seed", "Input Path")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for _, r := range runs {
		fmt.Fprintf(w, "%-6d %-20s %-10s %-8d %-8d %-8d %-22d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Status,
			r.InputCount,
			r.TrainCount,
			r.TestCount,
			r.Seed,
			r.InputPath,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
	fmt.Fprintf(w, "\nTip: Use 'corpus-prep runs show <id>' to see details\n")
}

// RunAction shows details for a specific run
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}
	return PrintRun(os.Stdout, database, runID, c.Int("rejections"))
}

// PrintRun writes the details of one run, listing at most maxRejections
// rejected documents (0 = none, negative = all).
func PrintRun(w io.Writer, database *dbpkg.DB, runID int64, maxRejections int) error {
	run, err := database.GetRun(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}
	stages, err := database.GetStages(runID)
	if err != nil {
		return fmt.Errorf("failed to get run stages: %w", err)
	}
	counts, err := database.RejectionCounts(runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Run %d\n", run.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Status:      %s\n", run.Status)
	fmt.Fprintf(w, "Input:       %s (%d documents)\n", run.InputPath, run.InputCount)
	fmt.Fprintf(w, "Seed:        %d\n", run.Seed)
	fmt.Fprintf(w, "Fraction:    %g\n", run.TrainFraction)
	fmt.Fprintf(w, "Min count:   %d\n", run.MinCount)
	if run.TrainPath != "" {
		fmt.Fprintf(w, "Train:       %s (%d documents)\n", run.TrainPath, run.TrainCount)
		fmt.Fprintf(w, "Test:        %s (%d documents)\n", run.TestPath, run.TestCount)
	}
	if run.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:       %s\n", run.ErrorMessage)
	}

	if len(stages) > 0 {
		fmt.Fprintf(w, "\nStages (%d):\n", len(stages))
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, s := range stages {
			fmt.Fprintf(w, "  %-6s %-16s %d\n", s.Split, s.Stage, s.Documents)
		}
	}

	if len(counts) > 0 {
		reasons := make([]string, 0, len(counts))
		for r := range counts {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		fmt.Fprintf(w, "\nRejections:\n")
		fmt.Fprintln(w, strings.Repeat("-", 60))
		for _, r := range reasons {
			fmt.Fprintf(w, "  %-28s %d\n", r, counts[r])
		}
	}

	if maxRejections != 0 && len(counts) > 0 {
		rejections, err := database.GetRejections(runID)
		if err != nil {
			return err
		}
		if maxRejections > 0 && len(rejections) > maxRejections {
			rejections = rejections[:maxRejections]
		}
		fmt.Fprintln(w)
		for _, r := range rejections {
			lang := r.Language
			if lang == "" {
				lang = "-"
			}
			fmt.Fprintf(w, "  [%s] %s #%d (%s)\n", r.Reason, r.Split, r.Index, lang)
		}
	}
	return nil
}
