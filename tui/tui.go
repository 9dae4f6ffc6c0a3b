// Package tui provides the interactive terminal interface.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubescribe/tubescribe/batch"
)

// Options configures the terminal interface.
type Options struct {
	// Store holds the results and runs the batches.
	Store *batch.Store

	// Context is forwarded to every retrieval.
	Context context.Context

	// ExportDir is where downloads are written.
	ExportDir string

	// Initial pre-fills the links input.
	Initial string

	// ConfirmClear asks before clearing the results.
	ConfirmClear bool
}

// Run starts the program and blocks until the user quits.
func Run(options *Options) error {
	bubble := newBubble(options)
	defer bubble.unsubscribe()

	_, err := tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}
