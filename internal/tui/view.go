package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/constants"
	"github.com/julianstephens/termjournal/internal/tui/state"
)

var screenTitles = map[constants.Screen]string{
	constants.ScreenWelcome:    "Home",
	constants.ScreenCalendar:   "Calendar",
	constants.ScreenDayEntries: "Entries",
	constants.ScreenEditor:     "Editor",
	constants.ScreenSearch:     "Search",
	constants.ScreenMistakes:   "Mistakes",
	constants.ScreenExport:     "Export",
	constants.ScreenBackup:     "Backup",
	constants.ScreenSettings:   "Settings",
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var content string
	if m.Form != nil && m.FormKind == state.FormConfirm {
		content = m.viewConfirm()
	} else {
		content = docStyle.Render(m.viewScreen())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewNotice(),
		m.Help.View(m),
	)
}

// viewTabs shows the screen stack as a breadcrumb
func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(m.Stack))
	for i, s := range m.Stack {
		title := screenTitles[s]
		if i == len(m.Stack)-1 {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewScreen() string {
	switch m.Screen {
	case constants.ScreenWelcome:
		return m.WelcomeModel.View()
	case constants.ScreenCalendar:
		return m.MonthModel.View()
	case constants.ScreenDayEntries:
		return m.DayModel.View()
	case constants.ScreenEditor:
		if m.Session == nil {
			return mutedStyle.Render("Opening entry...")
		}
		return m.EditorModel.View()
	case constants.ScreenSearch:
		return m.SearchModel.View()
	case constants.ScreenMistakes:
		return m.MistakesModel.View()
	case constants.ScreenExport:
		return m.viewExport()
	case constants.ScreenBackup:
		return m.BackupsModel.View()
	case constants.ScreenSettings:
		if m.Form != nil && m.FormKind == state.FormSettings {
			return m.viewFormWithError("Edit Settings")
		}
		return m.SettingsModel.View()
	}
	return ""
}

func (m Model) viewExport() string {
	sections := []string{titleStyle.Render("Export Journal")}
	if m.Form != nil && m.FormKind == state.FormExport {
		sections = append(sections, m.Form.View())
	}
	if m.FormError != "" {
		sections = append(sections, dangerStyle.Render(m.FormError))
	}
	if m.ExportStatus != "" {
		sections = append(sections, mutedStyle.Render(m.ExportStatus))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewFormWithError(title string) string {
	sections := []string{titleStyle.Render(title), m.Form.View()}
	if m.FormError != "" {
		sections = append(sections, dangerStyle.Render(m.FormError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewConfirm() string {
	return lipgloss.Place(m.Width, m.ContentHeight(),
		lipgloss.Center, lipgloss.Center,
		m.Form.View(),
	)
}

func (m Model) viewNotice() string {
	if m.Notice.Message == "" {
		return ""
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(severityStyle(m.Notice.Severity).Render(m.Notice.Message))
}
