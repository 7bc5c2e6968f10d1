package editor

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
)

// SaveMsg asks the root model to commit the entry
type SaveMsg struct{}

// CancelMsg asks the root model to discard the edit and leave the editor
type CancelMsg struct{}

// Session is the editor session the form writes through
type Session interface {
	SetField(field models.Field, value string) error
	Status() string
}

type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Save   key.Binding
	Cancel key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

const areaHeight = 3

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Model is the entry form. The title is a single line input and the other
// fields are text areas; every change is pushed into the session.
type Model struct {
	date    string
	session Session
	title   textinput.Model
	areas   []textarea.Model
	focus   int
	err     string
	saving  bool
	keys    KeyMap
	width   int
	height  int
}

func New(date string, fields models.EntryFields, session Session, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = journal.Placeholder(models.FieldTitle)
	ti.CharLimit = 200
	ti.SetValue(fields.Title)

	areas := make([]textarea.Model, 0, len(models.Fields)-1)
	for _, f := range models.Fields[1:] {
		ta := textarea.New()
		ta.Placeholder = journal.Placeholder(f)
		ta.ShowLineNumbers = false
		ta.SetHeight(areaHeight)
		ta.SetValue(fields.Get(f))
		ta.Blur()
		areas = append(areas, ta)
	}

	m := Model{
		date:    date,
		session: session,
		title:   ti,
		areas:   areas,
		keys:    DefaultKeyMap(),
	}
	m.SetSize(width, height)
	m.title.Focus()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Date() string {
	return m.date
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// Focused returns the field that receives key presses
func (m Model) Focused() models.Field {
	return models.Fields[m.focus]
}

// Value returns the text currently in the form for field
func (m Model) Value(field models.Field) string {
	for i, f := range models.Fields {
		if f != field {
			continue
		}
		if i == 0 {
			return m.title.Value()
		}
		return m.areas[i-1].Value()
	}
	return ""
}

// SetError shows msg above the status line until the next edit. A failed
// save reports through here, so input is accepted again.
func (m *Model) SetError(msg string) {
	m.err = msg
	m.saving = false
}

// Saving reports whether a save was requested and has not failed yet
func (m Model) Saving() bool {
	return m.saving
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Keys typed while the commit runs would be lost when it succeeds
		if m.saving {
			return m, nil
		}
		switch {
		case key.Matches(keyMsg, m.keys.Save):
			m.saving = true
			return m, func() tea.Msg { return SaveMsg{} }
		case key.Matches(keyMsg, m.keys.Cancel):
			return m, func() tea.Msg { return CancelMsg{} }
		case key.Matches(keyMsg, m.keys.Next):
			return m, m.setFocus((m.focus + 1) % len(models.Fields))
		case key.Matches(keyMsg, m.keys.Prev):
			return m, m.setFocus((m.focus + len(models.Fields) - 1) % len(models.Fields))
		}
	}

	field := m.Focused()
	before := m.Value(field)

	var cmd tea.Cmd
	if m.focus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.areas[m.focus-1], cmd = m.areas[m.focus-1].Update(msg)
	}

	if after := m.Value(field); after != before && m.session != nil {
		m.err = ""
		if err := m.session.SetField(field, after); err != nil {
			m.err = err.Error()
		}
	}
	return m, cmd
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.title.Blur()
	for j := range m.areas {
		m.areas[j].Blur()
	}
	m.focus = i
	if i == 0 {
		return m.title.Focus()
	}
	return m.areas[i-1].Focus()
}

func (m Model) View() string {
	sections := []string{titleStyle.Render(fmt.Sprintf("Entry for %s", m.date))}

	for i, f := range models.Fields {
		label := labelStyle
		if i == m.focus {
			label = focusedLabelStyle
		}
		var input string
		if i == 0 {
			input = m.title.View()
		} else {
			input = m.areas[i-1].View()
		}
		sections = append(sections, label.Render(f.Label()), input)
	}

	if m.err != "" {
		sections = append(sections, errorStyle.Render(m.err))
	}
	if m.session != nil {
		if status := m.session.Status(); status != "" {
			sections = append(sections, statusStyle.Render(status))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width <= 0 {
		return
	}
	m.title.Width = width - 4
	for i := range m.areas {
		m.areas[i].SetWidth(width - 2)
	}
}
