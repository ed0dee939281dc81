package tui

import (
	"time"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	tea "github.com/charmbracelet/bubbletea"
)

// probeResultMsg carries one completed environment probe.
type probeResultMsg struct {
	status       ddev.Status
	projectRoot  string
	containerDir string
	checkedAt    time.Time
}

// statusTickMsg triggers the next probe poll.
type statusTickMsg time.Time

// tickCmd returns a command that sends a tick every 2 seconds.
func tickCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(t time.Time) tea.Msg {
		return statusTickMsg(t)
	})
}
