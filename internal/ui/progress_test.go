package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/HidekiAI/hairev-utils/internal/fib"
)

func TestSearchModel_Flow(t *testing.T) {
	events := make(chan fib.Event, 2)
	m := NewSearchModel("fibonacci search: 10 digits", 10, events).(*searchModel)

	events <- fib.Event{Index: 30, Digits: 7, Target: 10}
	msg := m.listenForEvent()()
	if _, ok := msg.(eventMsg); !ok {
		t.Fatalf("got %T, want eventMsg", msg)
	}
	m.Update(msg)
	if view := m.View(); !strings.Contains(view, "index 30  7/10 digits") {
		t.Fatalf("view missing status:\n%s", view)
	}

	close(events)
	msg = m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("got %T, want doneMsg", msg)
	}
	_, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("done should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("done should return tea.Quit")
	}
	if view := m.View(); !strings.HasPrefix(stripANSI(view), "done: ") {
		t.Fatalf("view after done:\n%s", view)
	}
}

func TestSearchModel_Error(t *testing.T) {
	m := NewSearchModel("search", 10, nil).(*searchModel)
	m.applyEvent(fib.Event{Done: true, Err: errors.New("boom")})
	m.done = true
	view := stripANSI(m.View())
	if !strings.Contains(view, "failed: search") || !strings.Contains(view, "error: boom") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		digits, target int
		want           float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := fraction(tt.digits, tt.target); got != tt.want {
			t.Errorf("fraction(%d, %d) = %v, want %v", tt.digits, tt.target, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("fibonacci", 6); got != "fib..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("fib", 6); got != "fib" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("数字検索", 5); runewidthOf(got) > 5 {
		t.Errorf("truncate wide = %q", got)
	}
}

func TestSearchModel_CtrlC(t *testing.T) {
	m := NewSearchModel("search", 10, make(chan fib.Event))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl-c should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl-c should return tea.Quit")
	}
	if !Interrupted(m) {
		t.Fatal("ctrl-c before done must mark the model interrupted")
	}

	finished := NewSearchModel("search", 10, nil)
	finished.Update(doneMsg{})
	finished.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if Interrupted(finished) {
		t.Fatal("ctrl-c after done is not an interruption")
	}
}
