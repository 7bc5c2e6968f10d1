package handlers

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/export"
	"github.com/julianstephens/termjournal/internal/logger"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

type ExportDoneMsg struct {
	Path  string
	Count int
	Err   error
}

// StartExportForm shows a fresh export form
func StartExportForm(m *state.Model) tea.Cmd {
	m.ExportForm = &state.ExportFormModel{Format: string(export.FormatMarkdown)}
	m.Form = NewExportForm(m.ExportForm)
	m.FormKind = state.FormExport
	m.FormError = ""
	return m.Form.Init()
}

// HandleExportFormState drives the export form. Leaving the form leaves the screen.
func HandleExportFormState(m *state.Model, msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.ClearForm()
		m.Pop()
		return nil
	}

	form, cmd := m.Form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.Form = f
	}
	cmds = append(cmds, cmd)

	switch m.Form.State {
	case huh.StateCompleted:
		format, err := export.ParseFormat(m.ExportForm.Format)
		if err != nil {
			m.FormError = err.Error()
			m.Form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		path := strings.TrimSpace(m.ExportForm.Path)
		if path == "" {
			path = format.DefaultFileName()
		}
		m.ExportStatus = fmt.Sprintf("Exporting to %s...", path)
		cmds = append(cmds, runExport(m, format, path), StartExportForm(m))
	case huh.StateAborted:
		m.ClearForm()
		m.Pop()
	}
	return tea.Batch(cmds...)
}

func runExport(m *state.Model, format export.Format, path string) tea.Cmd {
	store := m.Store
	return func() tea.Msg {
		ctx, cancel := state.StorageContext()
		defer cancel()
		n, err := export.ToFile(ctx, store, format, path)
		return ExportDoneMsg{Path: path, Count: n, Err: err}
	}
}

func HandleExportDone(m *state.Model, msg ExportDoneMsg) {
	if msg.Err != nil {
		logger.Error("Export failed", "path", msg.Path, "error", msg.Err)
		m.ExportStatus = fmt.Sprintf("Export failed: %v", msg.Err)
		m.SetNotice(constants.SeverityError, m.ExportStatus)
		return
	}
	m.ExportStatus = fmt.Sprintf("Exported %d entries to %s", msg.Count, msg.Path)
	m.SetNotice(constants.SeverityInfo, m.ExportStatus)
}
