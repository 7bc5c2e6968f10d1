package welcome

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/constants"
)

// NavigateMsg asks the root model to push a screen
type NavigateMsg struct {
	Screen constants.Screen
}

// OpenTodayMsg opens the editor for today's date
type OpenTodayMsg struct{}

// QuitMsg asks the application to exit
type QuitMsg struct{}

type action struct {
	key   string
	label string
	msg   tea.Msg
}

type group struct {
	title   string
	actions []action
}

var groups = []group{
	{
		title: "Quick Actions",
		actions: []action{
			{"t", "Create today's entry", OpenTodayMsg{}},
			{"n", "Create entry for any date", NavigateMsg{Screen: constants.ScreenCalendar}},
			{"c", "Browse entries by date", NavigateMsg{Screen: constants.ScreenCalendar}},
		},
	},
	{
		title: "Journal Management",
		actions: []action{
			{"e", "Edit past entries", NavigateMsg{Screen: constants.ScreenCalendar}},
			{"s", "Search entries", NavigateMsg{Screen: constants.ScreenSearch}},
			{"m", "View mistake patterns", NavigateMsg{Screen: constants.ScreenMistakes}},
		},
	},
	{
		title: "Data Operations",
		actions: []action{
			{"b", "Create backup", NavigateMsg{Screen: constants.ScreenBackup}},
			{"x", "Export journal", NavigateMsg{Screen: constants.ScreenExport}},
			{"p", "Settings", NavigateMsg{Screen: constants.ScreenSettings}},
			{"q", "Quit", QuitMsg{}},
		},
	},
}

var (
	logoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	versionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginBottom(1)

	groupTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Width(4)
)

type Model struct {
	width  int
	height int
}

func New(width, height int) Model {
	return Model{width: width, height: height}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if keyMsg.Type == tea.KeyEsc {
		return m, func() tea.Msg { return QuitMsg{} }
	}
	for _, g := range groups {
		for _, a := range g.actions {
			if keyMsg.String() == a.key {
				out := a.msg
				return m, func() tea.Msg { return out }
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	sections := []string{
		logoStyle.Render("termjournal"),
		versionStyle.Render(fmt.Sprintf("Terminal Journal %s", constants.Version)),
	}
	for _, g := range groups {
		lines := []string{groupTitleStyle.Render(g.title)}
		for _, a := range g.actions {
			lines = append(lines, "  "+keyStyle.Render(a.key)+a.label)
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, lines...))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
