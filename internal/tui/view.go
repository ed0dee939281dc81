package tui

import (
	"fmt"
	"strings"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Width(m.width).Render("opencode-ddev status"))
	b.WriteString("\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n\n")

	if !m.probed {
		b.WriteString(labelStyle.Render(m.spin.View() + " probing ddev..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render("Environment  ") + renderStatus(m))
	b.WriteString("\n")

	if m.status.Running {
		b.WriteString(labelStyle.Render("Project root ") + valueStyle.Render(m.projectRoot))
		b.WriteString("\n")
		b.WriteString(labelStyle.Render("Container dir") + " " + valueStyle.Render(m.containerDir))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("Last checked ") + valueStyle.Render(m.checkedAt.Format("15:04:05")))
	b.WriteString("\n\n")
	b.WriteString(dividerStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	b.WriteString(hotkeysStyle.Render("[r]efresh  [q]uit"))
	b.WriteString("\n")

	return b.String()
}

func renderStatus(m model) string {
	switch {
	case m.status.Running:
		return statusRunning.Render("● running")
	case m.status.Available:
		return statusStopped.Render(fmt.Sprintf("● stopped — run %s", "`ddev start`"))
	default:
		return statusUnavailable.Render("● no ddev project detected")
	}
}
