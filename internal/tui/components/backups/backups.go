package backups

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/backup"
)

type CreateBackupMsg struct{}

type RestoreBackupMsg struct {
	Path string
}

type Item struct {
	Info backup.BackupInfo
}

func (i Item) Title() string {
	return i.Info.Timestamp.Local().Format("2006-01-02 15:04:05")
}

func (i Item) Description() string {
	return fmt.Sprintf("%s (%.1f KB)", i.Info.Path, float64(i.Info.Size)/1024)
}

func (i Item) FilterValue() string { return i.Info.Path }

type KeyMap struct {
	Create  key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create backup"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore selected"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	list        list.Model
	keys        KeyMap
	unsupported string
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Create, keys.Restore}
	}

	m := Model{list: l, keys: keys}
	m.SetSize(width, height)
	return m
}

// SetUnsupported disables the screen and shows reason instead of the list
func (m *Model) SetUnsupported(reason string) {
	m.unsupported = reason
}

func (m *Model) SetBackups(infos []backup.BackupInfo) {
	items := make([]list.Item, len(infos))
	for i, b := range infos {
		items[i] = Item{Info: b}
	}
	m.list.SetItems(items)
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.unsupported != "" {
		return m, nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Create):
			return m, func() tea.Msg { return CreateBackupMsg{} }
		case key.Matches(keyMsg, m.keys.Restore):
			if item, ok := m.list.SelectedItem().(Item); ok {
				path := item.Info.Path
				return m, func() tea.Msg { return RestoreBackupMsg{Path: path} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := titleStyle.Render("Backup Journal")
	if m.unsupported != "" {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyStyle.Render(m.unsupported))
	}
	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyStyle.Render("No backups yet. Press c to create one."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.list.View())
}

func (m *Model) SetSize(width, height int) {
	h := height - 2
	if h < 0 {
		h = 0
	}
	m.list.SetSize(width, h)
}
