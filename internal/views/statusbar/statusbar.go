// Package statusbar renders the connection/control projection: a status dot,
// the latest control message, a transient notice, and a reading-progress bar.
// It holds no invariants of its own; it mirrors whatever the session reports.
package statusbar

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/dj-ayush/Pdf-Navigation/internal/session"
	"github.com/dj-ayush/Pdf-Navigation/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Width  int
	State  session.State
	Notice string

	bar progress.Model
}

// New creates a status bar model.
func New() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.ShowPercentage = false
	return Model{bar: bar}
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	var dot string
	switch m.State.ConnectionStatus {
	case session.StatusActive:
		dot = lipgloss.NewStyle().Foreground(theme.ColorActive).Render("● " + string(session.StatusActive))
	case session.StatusConnected:
		dot = lipgloss.NewStyle().Foreground(theme.ColorConnected).Render("● " + string(session.StatusConnected))
	default:
		dot = lipgloss.NewStyle().Foreground(theme.ColorDisconnected).Render("○ " + string(session.StatusDisconnected))
	}

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := dot

	if m.State.ControlType != session.ControlNone {
		badge := lipgloss.NewStyle().
			Foreground(theme.ControlColor(string(m.State.ControlType))).
			Render(fmt.Sprintf("%s (%s)", m.State.ControlType, m.State.ControlPhase))
		content += sep + badge
	}

	if m.State.ControlMessage != "" {
		content += sep + theme.StyleDimmed.Render(m.State.ControlMessage)
	}
	if m.Notice != "" {
		content += sep + theme.StyleNotice.Render(m.Notice)
	}

	if m.State.Loaded() {
		bar := m.bar
		bar.Width = 24
		frac := float64(m.State.CurrentPage+1) / float64(m.State.TotalPages)
		content += sep + bar.ViewAs(frac)
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
