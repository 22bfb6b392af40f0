package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nootencorp/worklog/internal/config"
	"github.com/nootencorp/worklog/internal/entry"
	"github.com/nootencorp/worklog/internal/service"
	"github.com/nootencorp/worklog/internal/storage"
)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	tmpDir := t.TempDir()
	store, err := storage.Open(storage.DefaultDriver, filepath.Join(tmpDir, storage.DatabaseFile), nil)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.Create(entry.Entry{EmployeeName: "Ann", TaskTitle: "Review", TimeSpent: 30, TaskNotes: "None"}); err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
	return service.NewServices(store, filepath.Join(tmpDir, config.ConfigFile), config.DefaultConfig(), nil)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update sends msg and runs any returned command once, feeding its message back
func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	newModel, cmd := m.Update(msg)
	m = newModel.(Model)
	if cmd != nil {
		if next := cmd(); next != nil {
			newModel, _ = m.Update(next)
			m = newModel.(Model)
		}
	}
	return m
}

func TestNew(t *testing.T) {
	services := setupTestServices(t)
	model := New(services)

	if model.activeTab != TabEntries {
		t.Errorf("expected initial tab to be Entries, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.ThemeName() != config.DefaultConfig().Theme {
		t.Errorf("expected configured theme, got %q", model.ThemeName())
	}
}

func TestInit(t *testing.T) {
	model := New(setupTestServices(t))

	if model.Init() == nil {
		t.Error("expected Init to return a command")
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	model := New(setupTestServices(t))

	if model.View() != "Loading..." {
		t.Errorf("expected Loading..., got %q", model.View())
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	model := New(setupTestServices(t))
	model = update(t, model, model.Init()())
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	if model.width != 120 || model.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", model.width, model.height)
	}

	view := model.View()
	for _, want := range []string{"Entries", "Stats", "Ann", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestUpdate_Quit(t *testing.T) {
	model := New(setupTestServices(t))

	_, cmd := model.Update(keyRunes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_TabNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want Tab
	}{
		{"tab", []tea.KeyMsg{{Type: tea.KeyTab}}, TabStats},
		{"tab wraps", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}}, TabEntries},
		{"shift+tab wraps", []tea.KeyMsg{{Type: tea.KeyShiftTab}}, TabStats},
		{"2", []tea.KeyMsg{keyRunes("2")}, TabStats},
		{"2 then 1", []tea.KeyMsg{keyRunes("2"), keyRunes("1")}, TabEntries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := New(setupTestServices(t))
			for _, k := range tt.keys {
				model = update(t, model, k)
			}
			if model.activeTab != tt.want {
				t.Errorf("expected tab %d, got %d", tt.want, model.activeTab)
			}
		})
	}
}

func TestUpdate_StatsTabLoads(t *testing.T) {
	model := New(setupTestServices(t))
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
	model = update(t, model, keyRunes("2"))

	if !strings.Contains(model.View(), "Total time:") {
		t.Errorf("expected stats in view, got %q", model.View())
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	model := New(setupTestServices(t))
	model = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	model = update(t, model, keyRunes("?"))
	if !model.showHelp {
		t.Fatal("expected help to be shown")
	}
	if !strings.Contains(model.View(), "Keyboard Shortcuts") {
		t.Error("expected help overlay")
	}

	model = update(t, model, keyRunes("?"))
	if model.showHelp {
		t.Error("expected help to be hidden")
	}
}

func TestUpdate_ThemeCycling(t *testing.T) {
	model := New(setupTestServices(t))
	initial := model.ThemeName()

	model = update(t, model, keyRunes("t"))
	if model.ThemeName() == initial {
		t.Error("expected t to change the theme")
	}

	model = update(t, model, keyRunes("T"))
	if model.ThemeName() != initial {
		t.Errorf("expected T to go back to %q, got %q", initial, model.ThemeName())
	}
}

func TestUpdate_SearchCapturesGlobalKeys(t *testing.T) {
	model := New(setupTestServices(t))
	model = update(t, model, model.Init()())
	model = update(t, model, keyRunes("/"))

	if !model.isCapturingKeys() {
		t.Fatal("expected search input to capture keys")
	}

	newModel, cmd := model.Update(keyRunes("q"))
	model = newModel.(Model)
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q quit while typing")
		}
	}

	// These would switch tab and toggle help outside the input
	for _, k := range []tea.KeyMsg{keyRunes("2"), keyRunes("?"), {Type: tea.KeyTab}} {
		newModel, _ = model.Update(k)
		model = newModel.(Model)
	}
	if model.activeTab != TabEntries {
		t.Error("expected tab to stay on Entries while typing")
	}
	if model.showHelp {
		t.Error("expected help to stay hidden while typing")
	}

	// ctrl+c always quits
	_, cmd = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg for ctrl+c")
	}
}
