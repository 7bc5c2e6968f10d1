// Package export writes the whole journal out as Markdown or CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/models"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// Formats lists the supported formats in menu order
var Formats = []Format{FormatMarkdown, FormatCSV}

// ParseFormat accepts a format name or a common file extension
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("unknown export format %q (want markdown or csv)", s)
}

// DefaultFileName is the file written when no path is given
func (f Format) DefaultFileName() string {
	if f == FormatCSV {
		return constants.CSVExportFile
	}
	return constants.MarkdownExportFile
}

// Source provides the entries to export
type Source interface {
	AllEntries(ctx context.Context) ([]models.Entry, error)
}

// Render writes entries to w in format f
func Render(w io.Writer, f Format, entries []models.Entry) error {
	switch f {
	case FormatMarkdown:
		return writeMarkdown(w, entries)
	case FormatCSV:
		return writeCSV(w, entries)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// ToFile loads every entry from src and atomically replaces path with the
// rendered export. It returns the number of entries written.
func ToFile(ctx context.Context, src Source, f Format, path string) (int, error) {
	entries, err := src.AllEntries(ctx)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := Render(&buf, f, entries); err != nil {
		return 0, err
	}
	if err := atomic.WriteFile(path, &buf); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return len(entries), nil
}

func writeMarkdown(w io.Writer, entries []models.Entry) error {
	for _, e := range entries {
		sections := []struct {
			heading string
			body    string
		}{
			{models.FieldDescription.Label(), e.Description},
			{models.FieldImprovements.Label(), e.Improvements},
			{models.FieldSetbacks.Label(), e.Setbacks},
			{models.FieldMistakes.Label(), e.Mistakes},
		}

		if _, err := fmt.Fprintf(w, "# %s\n\nDate: %s\n\n", e.Title, e.Date); err != nil {
			return err
		}
		for _, s := range sections {
			if _, err := fmt.Fprintf(w, "## %s\n%s\n\n", s.heading, s.body); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "---\n\n"); err != nil {
			return err
		}
	}
	return nil
}

func writeCSV(w io.Writer, entries []models.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Title", "Description", "Improvements", "Setbacks", "Mistakes"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Date, e.Title, e.Description, e.Improvements, e.Setbacks, e.Mistakes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
