package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/smileynet/crmclean/internal/contact"
)

var previewRecords = []contact.Record{
	{Name: "Alice Johnson", Email: "alice@example.com", Phone: "4695551234"},
	{Name: "Sara M.", Email: "sara@mail.co", Phone: "2145558888"},
	{Name: "Mehdi A.", Email: "mehdi.ay@example.org", Phone: "4695559999"},
}

func TestNewModel_BuildsRows(t *testing.T) {
	m := NewModel("contacts", previewRecords)

	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("rows = %d, want 3", got)
	}
	if row := m.table.Rows()[1]; row[0] != "Sara M." || row[1] != "sara@mail.co" || row[2] != "2145558888" {
		t.Errorf("row[1] = %v", row)
	}
	cols := m.table.Columns()
	if cols[1].Width != len("mehdi.ay@example.org") {
		t.Errorf("email column width = %d, want %d", cols[1].Width, len("mehdi.ay@example.org"))
	}
}

func TestModel_Selected(t *testing.T) {
	m := NewModel("contacts", previewRecords)

	r, ok := m.Selected()
	if !ok || r.Email != "alice@example.com" {
		t.Errorf("Selected() = %+v, %v; want alice", r, ok)
	}

	newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	r, ok = newModel.(Model).Selected()
	if !ok || r.Email != "sara@mail.co" {
		t.Errorf("Selected() after down = %+v, %v; want sara", r, ok)
	}
}

func TestModel_Selected_Empty(t *testing.T) {
	m := NewModel("contacts", nil)
	if _, ok := m.Selected(); ok {
		t.Error("Selected() on empty table should report false")
	}
}

func TestModel_Update_QuitKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{name: "q", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{name: "esc", msg: tea.KeyMsg{Type: tea.KeyEsc}},
		{name: "ctrl+c", msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel("contacts", previewRecords)

			newModel, cmd := m.Update(tt.msg)

			if !newModel.(Model).done {
				t.Error("model should be done after quit key")
			}
			if cmd == nil {
				t.Fatal("quit key should return tea.Quit")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("cmd() = %T, want tea.QuitMsg", cmd())
			}
		})
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel("contact_clean.csv", previewRecords)

	view := m.View()

	for _, want := range []string{"contact_clean.csv", "3 records", "alice@example.com", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestModel_View_SingleRecord(t *testing.T) {
	m := NewModel("x", previewRecords[:1])
	if !strings.Contains(m.View(), "1 record") {
		t.Errorf("View() should say 1 record:\n%s", m.View())
	}
}

func TestModel_Update_WindowSizeMsg(t *testing.T) {
	m := NewModel("contacts", previewRecords)

	newModel, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := newModel.(Model)

	if updated.help.Width != 120 {
		t.Errorf("help width = %d, want 120", updated.help.Width)
	}
}

// TestModel_Teatest_BrowseAndQuit drives the preview through a full program run.
func TestModel_Teatest_BrowseAndQuit(t *testing.T) {
	m := NewModel("contacts", previewRecords)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(Model)
	if !final.done {
		t.Error("final model should be done")
	}
	r, ok := final.Selected()
	if !ok || r.Email != "mehdi.ay@example.org" {
		t.Errorf("Selected() = %+v, %v; want mehdi", r, ok)
	}
}
