package main

import (
	"context"
	"errors"
	"io"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type stubModel struct {
	quit     bool
	closed   int
	closeErr error
}

func (m *stubModel) Init() tea.Cmd {
	if m.quit {
		return tea.Quit
	}
	return nil
}

func (m *stubModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m *stubModel) View() string                        { return "" }

func (m *stubModel) Close() error {
	m.closed++
	return m.closeErr
}

func headless() []tea.ProgramOption {
	return []tea.ProgramOption{tea.WithInput(nil), tea.WithOutput(io.Discard)}
}

func TestRunClosesModelAfterExit(t *testing.T) {
	m := &stubModel{quit: true}
	if err := run(m, headless()...); err != nil {
		t.Fatalf("run: %v", err)
	}
	if m.closed != 1 {
		t.Fatalf("closed %d times, want 1", m.closed)
	}
}

func TestRunClosesModelWhenProgramFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &stubModel{closeErr: errors.New("close failed")}

	err := run(m, append(headless(), tea.WithContext(ctx))...)
	if !errors.Is(err, tea.ErrProgramKilled) {
		t.Fatalf("expected the program error to win, got %v", err)
	}
	if m.closed != 1 {
		t.Fatalf("closed %d times, want 1", m.closed)
	}
}

func TestRunReportsCloseError(t *testing.T) {
	want := errors.New("close failed")
	m := &stubModel{quit: true, closeErr: want}
	if err := run(m, headless()...); !errors.Is(err, want) {
		t.Fatalf("expected close error, got %v", err)
	}
}
