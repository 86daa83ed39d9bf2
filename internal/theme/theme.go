// Package theme provides the Lip Gloss color palette and reusable styles
// for the pdfnav TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Connection status colors.
var (
	ColorConnected    = lipgloss.Color("#22c55e")
	ColorActive       = lipgloss.Color("#06b6d4")
	ColorDisconnected = lipgloss.Color("#dc2626")
)

// Control method colors.
var (
	ColorEyeGaze     = lipgloss.Color("#a855f7")
	ColorHandGesture = lipgloss.Color("#d97706")
	ColorVoice       = lipgloss.Color("#3b82f6")
)

// General palette.
var (
	ColorBright  = lipgloss.Color("#e5e7eb")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBorder  = lipgloss.Color("#374151")
	ColorAccent  = lipgloss.Color("#f59e0b")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorWarning = lipgloss.Color("#d97706")
)

// Reusable styles.
var (
	StyleHeader = lipgloss.NewStyle().Foreground(ColorBright).Bold(true)
	StyleDimmed = lipgloss.NewStyle().Foreground(ColorDimmed)
	StyleNotice = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleError  = lipgloss.NewStyle().Foreground(ColorDanger)
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent)
)

// ControlColor returns the badge color for a control method identifier.
func ControlColor(controlType string) lipgloss.Color {
	switch controlType {
	case "eye_gaze":
		return ColorEyeGaze
	case "hand_gesture":
		return ColorHandGesture
	case "voice":
		return ColorVoice
	default:
		return ColorDimmed
	}
}
