package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nootencorp/worklog/internal/cli"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
	"github.com/nootencorp/worklog/internal/tui/ui"
)

// entryMode represents the current mode of the entries view
type entryMode int

const (
	entryModeNormal entryMode = iota
	entryModeSearch
)

// EntriesModel is the model for the entries view: a table of every entry,
// optionally narrowed by a term search.
type EntriesModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	table   table.Model
	entries []entry.Entry
	term    string // active search term, empty when showing all entries
	loading bool
	err     error

	// Search mode state
	mode        entryMode
	searchInput textinput.Model
	searchErr   error
}

// NewEntriesModel creates a new entries view model
func NewEntriesModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) EntriesModel {
	searchInput := textinput.New()
	searchInput.Placeholder = "Employee name or notes..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	t := table.New(
		table.WithColumns(entryColumns(0)),
		table.WithFocused(true),
		table.WithHeight(10),
		table.WithStyles(styles.Table),
	)

	return EntriesModel{
		services:    services,
		styles:      styles,
		keys:        keys,
		table:       t,
		searchInput: searchInput,
		loading:     true,
	}
}

// entriesLoadedMsg is sent when entries are loaded
type entriesLoadedMsg struct {
	entries []entry.Entry
	term    string
	err     error
}

// Init implements tea.Model
func (m EntriesModel) Init() tea.Cmd {
	return m.loadEntries()
}

// Update implements tea.Model
func (m EntriesModel) Update(msg tea.Msg) (EntriesModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode == entryModeSearch {
			return m.handleSearchMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Refresh):
			return m, m.reload()
		case key.Matches(msg, m.keys.Search):
			m.mode = entryModeSearch
			m.searchInput.SetValue(m.term)
			m.searchInput.Focus()
			m.searchErr = nil
			return m, textinput.Blink
		case key.Matches(msg, m.keys.Back):
			if m.term != "" {
				return m, m.loadEntries()
			}
			return m, nil
		}

		// Navigation is handled by the table
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case entriesLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.entries = msg.entries
			m.term = msg.term
			m.table.SetRows(entryRows(m.entries))
			if m.table.Cursor() >= len(m.entries) {
				m.table.SetCursor(max(0, len(m.entries)-1))
			}
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.table.SetStyles(m.styles.Table)
		return m, nil
	}

	return m, nil
}

// handleSearchMode handles key events while the search input is open
func (m EntriesModel) handleSearchMode(msg tea.KeyMsg) (EntriesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select): // Enter
		term := strings.TrimSpace(m.searchInput.Value())
		if err := entry.ValidateTerm(term); err != nil {
			m.searchErr = err
			return m, nil
		}
		m.mode = entryModeNormal
		m.searchInput.Blur()
		m.searchErr = nil
		return m, m.searchEntries(term)
	case key.Matches(msg, m.keys.Back): // Escape
		m.mode = entryModeNormal
		m.searchInput.Blur()
		m.searchErr = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m EntriesModel) View() string {
	var b strings.Builder

	if m.term != "" {
		b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("Entries containing %q", m.term)))
	} else {
		b.WriteString(m.styles.ViewTitle.Render("All Entries"))
	}
	b.WriteString("\n")

	if m.mode == entryModeSearch {
		b.WriteString(m.styles.Input.Render(m.searchInput.View()))
		b.WriteString("\n")
		if m.searchErr != nil {
			b.WriteString(m.styles.Error.Render(m.searchErr.Error()))
			b.WriteString("\n")
		}
	}

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.entries) == 0 {
		if m.term != "" {
			b.WriteString(m.styles.StatLabel.Render("No entries found"))
		} else {
			b.WriteString(m.styles.StatLabel.Render("No entries yet"))
		}
		return b.String()
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.styles.StatLabel.Render(fmt.Sprintf("%d %s", len(m.entries), cli.Pluralize("entry", len(m.entries)))))

	return b.String()
}

// SetSize sets the view dimensions
func (m *EntriesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(entryColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(max(3, height-4))
}

// Entries returns the entries currently listed
func (m EntriesModel) Entries() []entry.Entry {
	return m.entries
}

// Term returns the active search term, empty when listing all entries
func (m EntriesModel) Term() string {
	return m.term
}

// IsInputMode returns true when the view is capturing keyboard input
func (m EntriesModel) IsInputMode() bool {
	return m.mode == entryModeSearch
}

// reload repeats the current listing
func (m EntriesModel) reload() tea.Cmd {
	if m.term != "" {
		return m.searchEntries(m.term)
	}
	return m.loadEntries()
}

// loadEntries creates a command to load every entry
func (m EntriesModel) loadEntries() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.services.Entry.List()
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

// searchEntries creates a command to load entries matching term
func (m EntriesModel) searchEntries(term string) tea.Cmd {
	return func() tea.Msg {
		c, err := m.services.Search.ByTerm(term)
		if err != nil {
			return entriesLoadedMsg{err: err}
		}
		entries, err := storage.Collect(c)
		return entriesLoadedMsg{entries: entries, term: term, err: err}
	}
}
