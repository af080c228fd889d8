package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/astrogator/voyager/internal/world"
)

func testFrames() []world.Frame {
	return []world.Frame{
		{TU: 0, Ship: world.ShipFrame{X: [2]float64{0, 0}}},
		{TU: 1, Ship: world.ShipFrame{X: [2]float64{1, 0}, Collected: []uint32{1}}},
		{TU: 2, Ship: world.ShipFrame{X: [2]float64{2, 0}, Collected: []uint32{1, 2}}},
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func step(t *testing.T, m Model, key string) Model {
	t.Helper()
	next, _ := m.Update(keyMsg(key))
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got
}

func TestCursorNavigation(t *testing.T) {
	m := NewModel("test", testFrames())
	if m.Cursor() != 0 {
		t.Fatalf("initial cursor = %d", m.Cursor())
	}

	m = step(t, m, "right")
	m = step(t, m, "right")
	if m.Cursor() != 2 {
		t.Errorf("cursor after two right = %d, want 2", m.Cursor())
	}

	// Clamped at the last frame.
	m = step(t, m, "right")
	if m.Cursor() != 2 {
		t.Errorf("cursor past end = %d, want 2", m.Cursor())
	}

	m = step(t, m, "left")
	if m.Cursor() != 1 {
		t.Errorf("cursor after left = %d, want 1", m.Cursor())
	}

	m = step(t, m, "g")
	if m.Cursor() != 0 {
		t.Errorf("cursor after g = %d, want 0", m.Cursor())
	}
	m = step(t, m, "G")
	if m.Cursor() != 2 {
		t.Errorf("cursor after G = %d, want 2", m.Cursor())
	}

	// Clamped at the first frame.
	m = step(t, m, "g")
	m = step(t, m, "left")
	if m.Cursor() != 0 {
		t.Errorf("cursor before start = %d, want 0", m.Cursor())
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel("test", testFrames())
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q command = %T, want tea.QuitMsg", cmd())
	}
}

func TestViewRendersFrame(t *testing.T) {
	m := NewModel("twin-suns", testFrames())
	m = step(t, m, "G")

	view := m.View()
	for _, want := range []string{"twin-suns", "frame 3/3", "2.000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmptyFrames(t *testing.T) {
	m := NewModel("empty", nil)
	if got := m.View(); !strings.Contains(got, "no frames") {
		t.Errorf("empty view = %q", got)
	}
}
