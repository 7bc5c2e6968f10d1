package monthview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/calendar"
)

// MonthChangedMsg is sent when the cursor leaves the displayed month
type MonthChangedMsg struct {
	Month calendar.Month
}

// CursorMovedMsg is sent when the highlighted day changes within the month
type CursorMovedMsg struct {
	Date string
}

// SelectDateMsg is sent when an enabled day is chosen
type SelectDateMsg struct {
	Cell calendar.Cell
}

// DisabledMsg is sent when a disabled day is chosen
type DisabledMsg struct {
	Date string
}

type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Select    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "next month"),
		),
		Select: key.NewBinding(
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

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(5).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(5).
			Align(lipgloss.Center)

	todayStyle = cellStyle.
			Foreground(lipgloss.Color("205")).
			Bold(true)

	futureStyle = cellStyle.
			Foreground(lipgloss.Color("252"))

	withEntryStyle = cellStyle.
			Foreground(lipgloss.Color("42")).
			Bold(true)

	disabledStyle = cellStyle.
			Foreground(lipgloss.Color("238"))

	cursorBackground = lipgloss.Color("236")

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginTop(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	month   calendar.Month
	cursor  int
	grid    calendar.Grid
	loaded  bool
	preview string
	keys    KeyMap
	width   int
	height  int
}

// New starts on day of month with no grid loaded yet
func New(month calendar.Month, day, width, height int) Model {
	if day < 1 {
		day = 1
	}
	if day > month.Days() {
		day = month.Days()
	}
	return Model{
		month:  month,
		cursor: day,
		keys:   DefaultKeyMap(),
		width:  width,
		height: height,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Month is the month the cursor is in
func (m Model) Month() calendar.Month {
	return m.month
}

// CursorDate is the highlighted date as YYYY-MM-DD
func (m Model) CursorDate() string {
	return m.month.Date(m.cursor)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetGrid installs a loaded grid. Grids for other months are ignored.
func (m *Model) SetGrid(g calendar.Grid) {
	if g.Month != m.month {
		return
	}
	m.grid = g
	m.loaded = true
}

// SetPreview sets the summary shown under the grid
func (m *Model) SetPreview(text string) {
	m.preview = text
}

// Selected returns the cell under the cursor once the grid is loaded
func (m Model) Selected() (calendar.Cell, bool) {
	if !m.loaded {
		return calendar.Cell{}, false
	}
	return m.grid.Find(m.cursor)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		return m.move(-1)
	case key.Matches(keyMsg, m.keys.Right):
		return m.move(1)
	case key.Matches(keyMsg, m.keys.Up):
		return m.move(-7)
	case key.Matches(keyMsg, m.keys.Down):
		return m.move(7)
	case key.Matches(keyMsg, m.keys.PrevMonth):
		return m.jump(m.month.Prev())
	case key.Matches(keyMsg, m.keys.NextMonth):
		return m.jump(m.month.Next())
	case key.Matches(keyMsg, m.keys.Select):
		cell, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if cell.Kind.Disabled() {
			return m, func() tea.Msg { return DisabledMsg{Date: cell.Date} }
		}
		return m, func() tea.Msg { return SelectDateMsg{Cell: cell} }
	}
	return m, nil
}

func (m Model) move(delta int) (Model, tea.Cmd) {
	day := m.cursor + delta
	switch {
	case day < 1:
		prev := m.month.Prev()
		m.cursor = prev.Days() + day
		return m.changeMonth(prev)
	case day > m.month.Days():
		m.cursor = day - m.month.Days()
		return m.changeMonth(m.month.Next())
	}
	m.cursor = day
	m.preview = ""
	date := m.CursorDate()
	return m, func() tea.Msg { return CursorMovedMsg{Date: date} }
}

func (m Model) jump(to calendar.Month) (Model, tea.Cmd) {
	if m.cursor > to.Days() {
		m.cursor = to.Days()
	}
	return m.changeMonth(to)
}

func (m Model) changeMonth(to calendar.Month) (Model, tea.Cmd) {
	m.month = to
	m.loaded = false
	m.preview = ""
	return m, func() tea.Msg { return MonthChangedMsg{Month: to} }
}

func (m Model) View() string {
	sections := []string{titleStyle.Render(m.month.Title())}

	headers := make([]string, len(calendar.WeekdayHeaders))
	for i, h := range calendar.WeekdayHeaders {
		headers[i] = headerStyle.Render(h)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, headers...))

	if !m.loaded {
		sections = append(sections, mutedStyle.Render("Loading..."))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	for _, week := range m.grid.Weeks {
		cells := make([]string, len(week))
		for i, c := range week {
			cells[i] = m.renderCell(c)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	sections = append(sections, m.renderPreview())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCell(c calendar.Cell) string {
	if c.Blank() {
		return cellStyle.Render("")
	}
	label := fmt.Sprintf("%d", c.Day)
	if c.Count > 0 {
		label += "•"
	}

	var style lipgloss.Style
	switch c.Kind {
	case calendar.CellToday:
		style = todayStyle
	case calendar.CellFuture:
		style = futureStyle
	case calendar.CellPastWithEntry:
		style = withEntryStyle
	default:
		style = disabledStyle
	}
	if c.Day == m.cursor {
		style = style.Background(cursorBackground).Underline(true)
	}
	return style.Render(label)
}

func (m Model) renderPreview() string {
	cell, ok := m.Selected()
	if !ok {
		return ""
	}
	var body string
	switch {
	case m.preview != "":
		body = m.preview
	case cell.Count > 0:
		body = mutedStyle.Render("Loading preview...")
	case cell.Kind.Disabled():
		body = mutedStyle.Render("No entries on this day")
	default:
		body = mutedStyle.Render("Press enter to write an entry")
	}
	width := 5*7 - 2
	if m.width > 0 && m.width-4 < width {
		width = m.width - 4
	}
	return previewStyle.Width(width).Render(cell.Date + "\n" + strings.TrimRight(body, "\n"))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
