package models

import (
	"strings"
	"time"
)

// Field names one of the five editable parts of an entry
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldImprovements Field = "improvements"
	FieldSetbacks     Field = "setbacks"
	FieldMistakes     Field = "mistakes"
)

// Fields lists the editable fields in form order
var Fields = []Field{FieldTitle, FieldDescription, FieldImprovements, FieldSetbacks, FieldMistakes}

// Label returns the human readable field name
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldDescription:
		return "Description"
	case FieldImprovements:
		return "Improvements"
	case FieldSetbacks:
		return "Setbacks"
	case FieldMistakes:
		return "Mistakes"
	default:
		return string(f)
	}
}

// EntryFields holds the user-editable content of an entry. It doubles as the
// content of a draft.
type EntryFields struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Improvements string `json:"improvements"`
	Setbacks     string `json:"setbacks"`
	Mistakes     string `json:"mistakes"`
}

// Get returns the value of a single field
func (f EntryFields) Get(field Field) string {
	switch field {
	case FieldTitle:
		return f.Title
	case FieldDescription:
		return f.Description
	case FieldImprovements:
		return f.Improvements
	case FieldSetbacks:
		return f.Setbacks
	case FieldMistakes:
		return f.Mistakes
	}
	return ""
}

// Set updates a single field. Unknown fields are ignored and reported as false.
func (f *EntryFields) Set(field Field, value string) bool {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldDescription:
		f.Description = value
	case FieldImprovements:
		f.Improvements = value
	case FieldSetbacks:
		f.Setbacks = value
	case FieldMistakes:
		f.Mistakes = value
	default:
		return false
	}
	return true
}

// HasTitle reports whether the title contains anything other than whitespace
func (f EntryFields) HasTitle() bool {
	return strings.TrimSpace(f.Title) != ""
}

// IsZero reports whether every field is empty
func (f EntryFields) IsZero() bool {
	return f == EntryFields{}
}

// Entry is a committed journal record
type Entry struct {
	ID   int64  `json:"id"`
	Date string `json:"date"` // YYYY-MM-DD format
	EntryFields
}

// Draft is the in-progress content of an entry for a date. There is at most
// one draft per date.
type Draft struct {
	Date      string      `json:"date"`
	Content   EntryFields `json:"content"`
	UpdatedAt time.Time   `json:"updated_at"`
	// Unreadable marks a listed draft whose stored content could not be
	// decoded. Content is empty in that case.
	Unreadable bool `json:"unreadable,omitempty"`
}
