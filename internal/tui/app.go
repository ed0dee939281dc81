package tui

import (
	"fmt"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the status dashboard and blocks until the user quits.
func Run(cache *ddev.Cache, hostDir string) error {
	p := tea.NewProgram(newModel(cache, hostDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
