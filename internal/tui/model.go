package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/crmclean/internal/contact"
)

// phoneWidth fits a ten digit phone and the "phone" header.
const phoneWidth = 10

// previewKeys holds key bindings for the record preview.
type previewKeys struct {
	table.KeyMap
	Quit key.Binding
}

// ShortHelp returns the bindings shown in the help bar.
func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.LineUp, k.LineDown, k.PageDown, k.Quit}
}

// FullHelp returns the bindings grouped for expanded help.
func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LineUp, k.LineDown, k.GotoTop, k.GotoBottom},
		{k.PageUp, k.PageDown, k.Quit},
	}
}

func newPreviewKeys() previewKeys {
	return previewKeys{
		KeyMap: table.DefaultKeyMap(),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Model is the Bubble Tea model for browsing cleaned records.
type Model struct {
	title   string
	records []contact.Record
	table   table.Model
	help    help.Model
	keys    previewKeys
	done    bool
}

// NewModel creates a preview Model listing records in a table.
func NewModel(title string, records []contact.Record) Model {
	nameW, emailW := len("name"), len("email")
	rows := make([]table.Row, len(records))
	for i, r := range records {
		nameW = max(nameW, lipgloss.Width(r.Name))
		emailW = max(emailW, lipgloss.Width(r.Email))
		rows[i] = table.Row{r.Name, r.Email, r.Phone}
	}

	keys := newPreviewKeys()
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "name", Width: nameW},
			{Title: "email", Width: emailW},
			{Title: "phone", Width: phoneWidth},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
		table.WithKeyMap(keys.KeyMap),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "230"}).
		Background(lipgloss.AdaptiveColor{Light: "153", Dark: "57"})
	t.SetStyles(styles)

	return Model{
		title:   title,
		records: records,
		table:   t,
		help:    help.New(),
		keys:    keys,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		// Leave room for the title, the header border and the help bar.
		if h := msg.Height - 5; h > 0 {
			m.table.SetHeight(min(h, len(m.records)+1))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the record under the cursor, or false for an empty table.
func (m Model) Selected() (contact.Record, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return contact.Record{}, false
	}
	return m.records[i], true
}

// View renders the title, the record table and the help bar.
func (m Model) View() string {
	if m.done {
		return ""
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.title)
	count := fmt.Sprintf("%d records", len(m.records))
	if len(m.records) == 1 {
		count = "1 record"
	}
	return header + "  " + count + "\n\n" + m.table.View() + "\n" + m.help.View(m.keys) + "\n"
}
