package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	webbrowser "github.com/pkg/browser"
)

// Run starts the TUI and blocks until the user quits or ctx is cancelled
func Run(ctx context.Context, opts Options) error {
	if opts.OpenURL == nil {
		// the browser launcher writes to the terminal the TUI owns
		webbrowser.Stdout = io.Discard
		webbrowser.Stderr = io.Discard
		opts.OpenURL = webbrowser.OpenURL
	}

	app := NewApp(ctx, opts)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
