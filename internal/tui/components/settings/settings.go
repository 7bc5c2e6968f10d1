package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/models"
)

type EditSettingsMsg struct{}

type Model struct {
	settings models.Settings
	backend  string
	width    int
	height   int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func New(settings models.Settings, backend string, width, height int) Model {
	return Model{
		settings: settings,
		backend:  backend,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

func (m Model) Settings() models.Settings {
	return m.settings
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func (m Model) View() string {
	backupDir := m.settings.BackupDir
	if backupDir == "" {
		backupDir = "(next to the database)"
	}

	editor := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Editor"),
		row("Autosave interval:", fmt.Sprintf("%d min", m.settings.AutosaveIntervalMin)),
		row("Mistake alert after:", fmt.Sprintf("%d repeats", m.settings.MistakeAlertThreshold)),
	)
	general := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("General"),
		row("Start screen:", m.settings.DefaultView),
		row("Backup directory:", backupDir),
		row("Storage backend:", m.backend),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		sectionStyle.Render(editor),
		sectionStyle.Render(general),
		helpStyle.Render("Press e to edit. Autosave changes apply to entries opened afterwards."),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
