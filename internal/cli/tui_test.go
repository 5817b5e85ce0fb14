package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/springboard/pkg/script"
)

func newTestModel(items int) BoardModel {
	return NewBoardModel(script.NewScene(newTestConfig(items), quietLogger()))
}

// settle feeds tick messages until the scene comes to rest.
func settle(t *testing.T, m BoardModel) BoardModel {
	t.Helper()
	for i := 0; i < 600 && !m.Scene.Idle(); i++ {
		next, _ := m.Update(tickMsg{})
		m = next.(BoardModel)
	}
	if !m.Scene.Idle() {
		t.Fatal("scene did not settle")
	}
	return m
}

func press(m BoardModel, key tea.KeyMsg) BoardModel {
	next, _ := m.Update(key)
	return next.(BoardModel)
}

func TestBoardModelDragMovesFocus(t *testing.T) {
	m := settle(t, newTestModel(41))
	start := m.Scene.Board.LastFocusedIndex()

	m = settle(t, press(m, tea.KeyMsg{Type: tea.KeyRight}))
	if got := m.Scene.Board.LastFocusedIndex(); got != start+1 {
		t.Errorf("focused %d after right, want %d", got, start+1)
	}
	m = settle(t, press(m, tea.KeyMsg{Type: tea.KeyLeft}))
	if got := m.Scene.Board.LastFocusedIndex(); got != start {
		t.Errorf("focused %d after left, want %d", got, start)
	}
}

func TestBoardModelZoomKeys(t *testing.T) {
	m := settle(t, newTestModel(41))
	before := m.Scene.Viewport.ZoomScale()

	m = settle(t, press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}}))
	if z := m.Scene.Viewport.ZoomScale(); z >= before {
		t.Errorf("zoom %v after '-', want below %v", z, before)
	}
	m = settle(t, press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}))
	if z, min := m.Scene.Viewport.ZoomScale(), m.Scene.Viewport.MinimumZoomScale(); z-min > 1e-6 {
		t.Errorf("zoom %v after show all, want minimum %v", z, min)
	}
}

func TestBoardModelWindowSize(t *testing.T) {
	m := newTestModel(9)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(BoardModel)
	if m.Rows != 25 || m.Cols != 50 {
		t.Errorf("grid = %dx%d, want 50x25", m.Cols, m.Rows)
	}
}

func TestBoardModelQuit(t *testing.T) {
	_, cmd := newTestModel(9).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBoardModelView(t *testing.T) {
	m := settle(t, newTestModel(9))
	view := m.View()
	if !strings.Contains(view, appName) {
		t.Error("view should show the title")
	}
	focused := m.Scene.Capture().Focused
	if !strings.Contains(view, script.AppTitle(focused)) {
		t.Errorf("view should show the focused item's title %q", script.AppTitle(focused))
	}
}
