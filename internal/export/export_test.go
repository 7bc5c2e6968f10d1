package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/termjournal/internal/models"
)

type staticSource struct {
	entries []models.Entry
	err     error
}

func (s staticSource) AllEntries(context.Context) ([]models.Entry, error) {
	return s.entries, s.err
}

var sample = []models.Entry{
	{ID: 1, Date: "2024-03-01", EntryFields: models.EntryFields{
		Title: "Start", Description: "Began the journal", Improvements: "woke early", Setbacks: "rain", Mistakes: "no coffee",
	}},
	{ID: 2, Date: "2024-03-02", EntryFields: models.EntryFields{
		Title: "Commas, \"quotes\"", Description: "line one\nline two",
	}},
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"markdown": FormatMarkdown, "MD": FormatMarkdown, ".csv": FormatCSV, "csv": FormatCSV}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat should reject pdf")
	}
	if FormatCSV.DefaultFileName() != "journal_export.csv" || FormatMarkdown.DefaultFileName() != "journal_export.md" {
		t.Error("unexpected default file names")
	}
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatMarkdown, sample[:1]); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := "# Start\n\nDate: 2024-03-01\n\n" +
		"## Description\nBegan the journal\n\n" +
		"## Improvements\nwoke early\n\n" +
		"## Setbacks\nrain\n\n" +
		"## Mistakes\nno coffee\n\n" +
		"---\n\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("markdown mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCSVRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, FormatCSV, sample); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	want := [][]string{
		{"Date", "Title", "Description", "Improvements", "Setbacks", "Mistakes"},
		{"2024-03-01", "Start", "Began the journal", "woke early", "rain", "no coffee"},
		{"2024-03-02", "Commas, \"quotes\"", "line one\nline two", "", "", ""},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.md")
	if err := os.WriteFile(path, []byte("stale"), 0600); err != nil {
		t.Fatal(err)
	}

	n, err := ToFile(context.Background(), staticSource{entries: sample}, FormatMarkdown, path)
	if err != nil {
		t.Fatalf("ToFile failed: %v", err)
	}
	if n != 2 {
		t.Errorf("wrote %d entries, want 2", n)
	}
	data, _ := os.ReadFile(path)
	if !bytes.HasPrefix(data, []byte("# Start")) {
		t.Errorf("file not replaced: %q", data[:20])
	}
}

func TestToFileSourceError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	_, err := ToFile(context.Background(), staticSource{err: errors.New("boom")}, FormatCSV, path)
	if err == nil {
		t.Fatal("expected source error")
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be written when loading fails")
	}
}
