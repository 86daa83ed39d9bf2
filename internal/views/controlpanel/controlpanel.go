// Package controlpanel renders the control-method selector and lifecycle
// glyphs for the external navigation controllers.
package controlpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dj-ayush/Pdf-Navigation/internal/session"
	"github.com/dj-ayush/Pdf-Navigation/internal/theme"
)

// Model holds the control panel state.
type Model struct {
	Width int
	State session.State
}

// Methods lists the selectable control methods in display order, matching
// the 1/2/3 key bindings.
var Methods = []session.ControlType{
	session.ControlEyeGaze,
	session.ControlHandGesture,
	session.ControlVoice,
}

// New creates a control panel model.
func New() Model {
	return Model{}
}

// View renders one line per control method plus a lifecycle hint.
func (m Model) View() string {
	var parts []string
	for i, method := range Methods {
		label := string(method)
		style := lipgloss.NewStyle().Foreground(theme.ColorDimmed)

		prefix := "  "
		if m.State.ControlType == method {
			style = lipgloss.NewStyle().Foreground(theme.ControlColor(label))
			prefix = phaseGlyph(m.State.ControlPhase) + " "
		}
		num := theme.StyleDimmed.Render(numKey(i))
		parts = append(parts, prefix+num+" "+style.Render(label))
	}

	line := strings.Join(parts, "   ")
	hint := theme.StyleDimmed.Render("s:start/stop control")
	return lipgloss.NewStyle().Width(m.Width).Padding(0, 1).
		Render(line + "   " + hint)
}

func phaseGlyph(p session.ControlPhase) string {
	switch p {
	case session.PhaseStarting:
		return "◎"
	case session.PhaseActive:
		return "●"
	case session.PhaseStopping:
		return "◌"
	default:
		return "○"
	}
}

func numKey(i int) string {
	return string(rune('1' + i))
}
