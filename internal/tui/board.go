package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"edurpg/internal/engine"
)

// RunBoard shows the read-only dashboard for one saved player.
func RunBoard(ctx context.Context, svc *engine.Service, name string, out io.Writer) error {
	m := newBoardModel(ctx, svc, name)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
