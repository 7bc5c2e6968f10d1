package search

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/journal"
	"github.com/julianstephens/termjournal/internal/models"
)

// QueryChangedMsg is sent whenever the search text changes
type QueryChangedMsg struct {
	Query string
}

// OpenDateMsg opens the day view of the selected result
type OpenDateMsg struct {
	Date string
}

const snippetLength = 60

type Item struct {
	Entry models.Entry
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s", i.Entry.Date, i.Entry.Title)
}

func (i Item) Description() string {
	return journal.Truncate(strings.ReplaceAll(i.Entry.Description, "\n", " "), snippetLength)
}

func (i Item) FilterValue() string { return i.Entry.Title }

type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "prev result"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next result"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open day"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			MarginTop(1)
)

type Model struct {
	input textinput.Model
	list  list.Model
	query string
	keys  KeyMap
}

func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "Search term..."
	ti.Focus()

	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	m := Model{input: ti, list: l, keys: DefaultKeyMap()}
	m.SetSize(width, height)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Query() string {
	return m.query
}

// SetResults shows entries found for query. Results for a stale query are dropped.
func (m *Model) SetResults(query string, entries []models.Entry) {
	if query != m.query {
		return
	}
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
	m.list.Select(0)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Up), key.Matches(keyMsg, m.keys.Down):
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		case key.Matches(keyMsg, m.keys.Open):
			if item, ok := m.list.SelectedItem().(Item); ok {
				date := item.Entry.Date
				return m, func() tea.Msg { return OpenDateMsg{Date: date} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := strings.TrimSpace(m.input.Value()); q != m.query {
		m.query = q
		if q == "" {
			m.list.SetItems(nil)
			return m, cmd
		}
		return m, tea.Batch(cmd, func() tea.Msg { return QueryChangedMsg{Query: q} })
	}
	return m, cmd
}

func (m Model) View() string {
	sections := []string{
		titleStyle.Render("Search Entries"),
		m.input.View(),
	}
	if m.query != "" {
		sections = append(sections, countStyle.Render(fmt.Sprintf("%d result(s)", len(m.list.Items()))))
		sections = append(sections, m.list.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) SetSize(width, height int) {
	m.input.Width = width - 4
	listHeight := height - 5
	if listHeight < 0 {
		listHeight = 0
	}
	m.list.SetSize(width, listHeight)
}
