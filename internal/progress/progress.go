// Package progress shows a spinner while long work runs in a terminal.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Run calls fn, animating message on w while it works when w is a
// terminal. Elsewhere fn simply runs. The error of fn is returned as is.
func Run(ctx context.Context, w io.Writer, message string, fn func(context.Context) error) error {
	if !IsTerminal(w) {
		return fn(ctx)
	}

	m := newSpinnerModel(message)
	p := tea.NewProgram(m,
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithContext(ctx))

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		// A failed spinner must not fail the work it decorates.
		_, _ = p.Run()
	}()

	err := fn(ctx)
	p.Send(doneMsg{err: err})
	<-finished

	return err
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type doneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
