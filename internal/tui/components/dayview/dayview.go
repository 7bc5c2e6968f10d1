package dayview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	entryTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			MarginTop(1).
			MarginBottom(1)
)

// Model is the read-only list of entries committed on one day
type Model struct {
	date     string
	entries  []models.Entry
	width    int
	height   int
	viewport viewport.Model
}

func New(date string, width, height int) Model {
	m := Model{
		date:     date,
		width:    width,
		height:   height,
		viewport: viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

func (m *Model) SetEntries(entries []models.Entry) {
	m.entries = entries
	m.updateViewportContent()
	m.viewport.GotoTop()
}

func (m Model) Date() string {
	return m.date
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	sections := []string{titleStyle.Render(fmt.Sprintf("Entries for %s", m.date))}

	if len(m.entries) == 0 {
		sections = append(sections, emptyStyle.Render("No entries found."))
	}
	for i, e := range m.entries {
		if i > 0 {
			sections = append(sections, separatorStyle.Render("───"))
		}
		sections = append(sections, renderEntry(e, m.width))
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderEntry(e models.Entry, width int) string {
	body := lipgloss.NewStyle()
	if width > 0 {
		body = body.Width(width)
	}
	lines := []string{entryTitleStyle.Render(e.Title)}
	for _, f := range models.Fields[1:] {
		value := e.Get(f)
		if value == "" {
			continue
		}
		lines = append(lines, labelStyle.Render(f.Label()+":"), body.Render(value))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
