package tui

import (
	"context"
	"time"

	"github.com/JUVOJustin/opencode-ddev-plugin/internal/ddev"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// model is the Bubble Tea model for the status dashboard. It polls the
// environment probe every 2 seconds and renders the latest result.
type model struct {
	cache   *ddev.Cache
	hostDir string

	status       ddev.Status
	projectRoot  string
	containerDir string
	checkedAt    time.Time
	probed       bool

	spin     spinner.Model
	width    int
	height   int
	quitting bool
}

func newModel(cache *ddev.Cache, hostDir string) model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle
	return model{
		cache:   cache,
		hostDir: hostDir,
		spin:    sp,
		width:   80,
		height:  24,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, probeCmd(m.cache, m.hostDir))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusTickMsg:
		return m, probeCmd(m.cache, m.hostDir)

	case probeResultMsg:
		m.status = msg.status
		m.projectRoot = msg.projectRoot
		m.containerDir = msg.containerDir
		m.checkedAt = msg.checkedAt
		m.probed = true
		return m, tickCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "r":
			// Manual refresh without waiting for the next tick
			return m, probeCmd(m.cache, m.hostDir)
		}
	}
	return m, nil
}

// probeCmd bypasses the positive cache so the dashboard always shows live
// state rather than a result up to two minutes old.
func probeCmd(cache *ddev.Cache, hostDir string) tea.Cmd {
	return func() tea.Msg {
		cache.Invalidate()
		status := cache.Refresh(context.Background(), hostDir)
		return probeResultMsg{
			status:       status,
			projectRoot:  cache.ProjectRoot(),
			containerDir: cache.ContainerDir(),
			checkedAt:    time.Now(),
		}
	}
}
