// Package dataset reads and writes the tabular corpus files.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dtnitsch/corpus-prep/models"
)

// Column names shared by input and output files.
const (
	ColumnTitle   = "title"
	ColumnContent = "content"
	ColumnSource  = "source"
	ColumnLabel   = "classes"
)

var outputHeader = []string{"", ColumnTitle, ColumnContent, ColumnSource, ColumnLabel}

// ReadOptions controls how incomplete rows are treated.
type ReadOptions struct {
	// SkipMalformed drops rows missing a required field instead of failing.
	SkipMalformed bool
	Logger        *slog.Logger
}

// ReadResult is the ingested dataset plus what was left out.
type ReadResult struct {
	Docs         []models.Document
	MissingLabel int
	Malformed    int
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string, opts ReadOptions) (ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	res, err := Read(f, opts)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Read parses a CSV with title, content, source and classes columns. Other
// columns, including a leading index column, are ignored. Rows with no label
// are dropped before any other processing.
func Read(r io.Reader, opts ReadOptions) (ReadResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ReadResult{}, fmt.Errorf("%w: empty file, no header", models.ErrMalformedRecord)
	}
	if err != nil {
		return ReadResult{}, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	required := []string{ColumnTitle, ColumnContent, ColumnSource, ColumnLabel}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return ReadResult{}, &models.MalformedRecordError{Row: 0, Field: name}
		}
	}

	var res ReadResult
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		field := func(name string) (string, bool) {
			i := cols[name]
			if i >= len(record) {
				return "", false
			}
			return record[i], true
		}

		rawLabel, _ := field(ColumnLabel)
		label, hasLabel, labelErr := parseLabel(rawLabel)
		if labelErr == nil && !hasLabel {
			res.MissingLabel++
			continue
		}

		doc := models.Document{Label: label}
		var malformed *models.MalformedRecordError
		if labelErr != nil {
			malformed = &models.MalformedRecordError{Row: row, Field: ColumnLabel, Reason: "invalid"}
		}
		for _, name := range []string{ColumnTitle, ColumnContent, ColumnSource} {
			if malformed != nil {
				break
			}
			v, ok := field(name)
			if !ok || strings.TrimSpace(v) == "" {
				malformed = &models.MalformedRecordError{Row: row, Field: name}
				break
			}
			switch name {
			case ColumnTitle:
				doc.Title = v
			case ColumnContent:
				doc.Content = v
			case ColumnSource:
				doc.Source = v
			}
		}
		if malformed != nil {
			if !opts.SkipMalformed {
				return res, malformed
			}
			logger.Warn("Skipping malformed record", "row", row, "field", malformed.Field, "error", malformed)
			res.Malformed++
			continue
		}

		res.Docs = append(res.Docs, doc)
	}
	return res, nil
}

// parseLabel accepts integral numbers such as "1" or "-1.0". Empty and NaN
// values mean the row has no label; anything else is an error.
func parseLabel(raw string) (models.Label, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "nan") {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, err
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false, fmt.Errorf("label %q is not an integer", raw)
	}
	return models.Label(int(f)), true, nil
}

// Encode renders docs as CSV with a leading index column numbered from zero.
func Encode(docs []models.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(outputHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, d := range docs {
		record := []string{
			strconv.Itoa(i),
			d.Title,
			d.Content,
			d.Source,
			strconv.Itoa(int(d.Label)),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
