// Package validation checks a journal for data problems the stores do not
// prevent on their own.
package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/models"
)

// IssueType represents the kind of problem found
type IssueType string

const (
	IssueInvalidDate    IssueType = "invalid_date"
	IssueBlankTitle     IssueType = "blank_title"
	IssueDuplicateEntry IssueType = "duplicate_entry"
	// IssueUnreachableDraft is a draft for a past day without entries. The
	// calendar disables such days, so the draft can only be reached from the CLI.
	IssueUnreachableDraft IssueType = "unreachable_draft"
	IssueInvalidDraftDate IssueType = "invalid_draft_date"
	IssueUnreadableDraft  IssueType = "unreadable_draft"
)

// Issue is a single detected problem
type Issue struct {
	Type        IssueType
	Description string
	Date        string
	EntryIDs    []int64
}

// Result contains all detected issues
type Result struct {
	Issues []Issue
}

// HasIssues returns true if anything was found
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}

// FormatReport returns a human-readable report of all issues
func (r *Result) FormatReport() string {
	if !r.HasIssues() {
		return "No issues detected."
	}
	var b strings.Builder
	b.WriteString("Issues detected:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Description)
	}
	return b.String()
}

// Validator checks journal contents
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateJournal inspects committed entries and stored drafts
func (v *Validator) ValidateJournal(entries []models.Entry, drafts []models.Draft, today time.Time) Result {
	result := Result{Issues: []Issue{}}
	todayKey := today.Format(constants.DateFormat)

	type dupKey struct {
		date   string
		fields models.EntryFields
	}
	dups := make(map[dupKey][]int64)
	hasEntries := make(map[string]bool)

	for _, e := range entries {
		hasEntries[e.Date] = true

		if !isValidDate(e.Date) {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidDate,
				Description: fmt.Sprintf("Entry %d has invalid date %q", e.ID, e.Date),
				Date:        e.Date,
				EntryIDs:    []int64{e.ID},
			})
		}
		if !e.HasTitle() {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueBlankTitle,
				Description: fmt.Sprintf("Entry %d on %s has no title", e.ID, e.Date),
				Date:        e.Date,
				EntryIDs:    []int64{e.ID},
			})
		}
		k := dupKey{date: e.Date, fields: e.EntryFields}
		dups[k] = append(dups[k], e.ID)
	}

	for k, ids := range dups {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		result.Issues = append(result.Issues, Issue{
			Type:        IssueDuplicateEntry,
			Description: fmt.Sprintf("Entries %v on %s are identical (%q)", ids, k.date, k.fields.Title),
			Date:        k.date,
			EntryIDs:    ids,
		})
	}

	for _, d := range drafts {
		if !isValidDate(d.Date) {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueInvalidDraftDate,
				Description: fmt.Sprintf("Draft has invalid date %q", d.Date),
				Date:        d.Date,
			})
			continue
		}
		if d.Unreadable {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueUnreadableDraft,
				Description: fmt.Sprintf("Draft for %s cannot be decoded (use 'draft discard %s')", d.Date, d.Date),
				Date:        d.Date,
			})
		}
		if d.Date < todayKey && !hasEntries[d.Date] {
			result.Issues = append(result.Issues, Issue{
				Type:        IssueUnreachableDraft,
				Description: fmt.Sprintf("Draft for %s cannot be opened from the calendar (use 'draft show %s')", d.Date, d.Date),
				Date:        d.Date,
			})
		}
	}

	sort.SliceStable(result.Issues, func(i, j int) bool {
		if result.Issues[i].Date != result.Issues[j].Date {
			return result.Issues[i].Date < result.Issues[j].Date
		}
		return result.Issues[i].Type < result.Issues[j].Type
	})
	return result
}

func isValidDate(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
