package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/errors"
	"github.com/julianstephens/termjournal/internal/models"
)

// EncodeDraft serializes draft content to the stored JSON blob
func EncodeDraft(content models.EntryFields) (string, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("encoding draft: %w", err)
	}
	return string(data), nil
}

// DecodeDraft parses a stored blob. Missing keys decode as empty strings.
func DecodeDraft(date, blob string) (models.EntryFields, error) {
	var content models.EntryFields
	if err := json.Unmarshal([]byte(blob), &content); err != nil {
		return models.EntryFields{}, &errors.DeserializationError{Date: date, Err: err}
	}
	return content, nil
}

// ValidateDate checks that date is a real calendar day in YYYY-MM-DD form
func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return errors.NewValidation("date", fmt.Sprintf("%q is not a valid YYYY-MM-DD date", date))
	}
	return nil
}

// ValidateEntry checks the fields and date of an entry about to be inserted
func ValidateEntry(fields models.EntryFields, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	if !fields.HasTitle() {
		return errors.NewValidation(string(models.FieldTitle), "title must not be empty")
	}
	return nil
}

// HasMistake reports whether the mistakes text should be recorded. Records
// are keyed by the text exactly as typed; whitespace-only text is ignored.
func HasMistake(text string) bool {
	return strings.TrimSpace(text) != ""
}

// MonthBounds returns the first day of the month and the first day of the next
// one, both in YYYY-MM-DD form, for half-open range queries.
func MonthBounds(year int, month time.Month) (string, string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start.Format(constants.DateFormat), start.AddDate(0, 1, 0).Format(constants.DateFormat)
}

// LikePattern escapes LIKE wildcards in query and wraps it for substring matching.
// Queries built with it must declare ESCAPE '\'.
func LikePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(query) + "%"
}
