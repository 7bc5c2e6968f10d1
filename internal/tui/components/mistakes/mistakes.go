package mistakes

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/termjournal/internal/models"
)

const countWidth = 8

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model lists recurring mistakes, most frequent first
type Model struct {
	table   table.Model
	records []models.MistakeRecord
	width   int
	height  int
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := Model{table: t}
	m.SetSize(width, height)
	return m
}

func columns(width int) []table.Column {
	text := width - countWidth - 6
	if text < 20 {
		text = 20
	}
	return []table.Column{
		{Title: "Count", Width: countWidth},
		{Title: "Mistake", Width: text},
	}
}

func (m *Model) SetMistakes(records []models.MistakeRecord) {
	m.records = records
	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = table.Row{strconv.Itoa(r.Count), r.Mistake}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := titleStyle.Render("Mistake Patterns")
	if len(m.records) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, title, emptyStyle.Render("No mistakes recorded yet."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, m.table.View())
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	if height > 4 {
		m.table.SetHeight(height - 2)
	}
}
