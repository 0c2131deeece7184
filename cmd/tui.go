package main

import (
	"context"
	"fmt"

	"github.com/barboracab/hangthedj/internal/room"
	"github.com/barboracab/hangthedj/internal/shared"
	"github.com/barboracab/hangthedj/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a party room.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}

	songStore, closeStore, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/hangthedj-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	session := room.NewSession(room.SessionOpts{
		Store:   songStore,
		Feed:    songStore.Notifier(),
		Catalog: r.catalog,
		Logger:  fileLogger,
	})
	defer session.Close()

	model := ui.NewModel(ctx, session)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
