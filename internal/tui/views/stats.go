package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nootencorp/worklog/internal/cli"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/tui/ui"
)

// StatsModel is the model for the stats view
type StatsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	result  *service.StatsResult
	loading bool
	err     error
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) StatsModel {
	return StatsModel{
		services: services,
		styles:   styles,
		keys:     keys,
		loading:  true,
	}
}

// statsLoadedMsg is sent when stats are loaded
type statsLoadedMsg struct {
	result *service.StatsResult
	err    error
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadStats()
		}

	case statsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.result = msg.result

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	return m, nil
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Statistics"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString("Loading...")
		return b.String()
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.result == nil || m.result.Statistics.EntryCount == 0 {
		b.WriteString("No data")
		return b.String()
	}

	stats := m.result.Statistics
	b.WriteString(m.renderStatLine("Total time:", cli.FormatDuration(stats.TotalMinutes)))
	b.WriteString(m.renderStatLine("Total entries:", fmt.Sprintf("%d %s", stats.EntryCount, cli.Pluralize("entry", stats.EntryCount))))
	b.WriteString(m.renderStatLine("Days with work:", fmt.Sprintf("%d %s", stats.DaysWithEntries, cli.Pluralize("day", stats.DaysWithEntries))))
	b.WriteString(m.renderStatLine("Average per day:", cli.FormatDuration(int(stats.AverageMinutesPerDay))))

	if len(m.result.Employees) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.ViewTitle.Render("By Employee"))
		b.WriteString("\n")
		for _, es := range m.result.Employees {
			line := fmt.Sprintf("  %-20s %10s  (%d %s)",
				es.Employee,
				cli.FormatDuration(es.TotalMinutes),
				es.EntryCount,
				cli.Pluralize("entry", es.EntryCount))
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadStats creates a command to load stats
func (m StatsModel) loadStats() tea.Cmd {
	return func() tea.Msg {
		result, err := m.services.Stats.Summary()
		return statsLoadedMsg{result: result, err: err}
	}
}

func (m StatsModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}
