// Package page renders the visible page surface: the committed frame raster,
// the page indicator, and the zoom label. The indicator follows the committed
// frame rather than the proposed page, so a pending navigation never flickers
// the label ahead of the image.
package page

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dj-ayush/Pdf-Navigation/internal/render"
	"github.com/dj-ayush/Pdf-Navigation/internal/theme"
)

// Model holds the page surface state.
type Model struct {
	Width  int
	Height int

	Frame      *render.Frame
	TotalPages int
	Loading    bool
	Spinner    string // current spinner glyph while a preload is outstanding
}

// New creates a page surface model.
func New() Model {
	return Model{}
}

// View renders the framed page surface with its indicator footer.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}
	height := m.Height
	if height < 8 {
		height = 8
	}

	// Border and footer take 3 rows, border takes 2 columns.
	innerW, innerH := width-2, height-3

	var body string
	switch {
	case m.Frame == nil && m.TotalPages == 0:
		body = theme.StyleDimmed.Render("No document loaded — press u to upload a PDF")
	case m.Frame == nil:
		body = theme.StyleDimmed.Render("Loading page...")
	default:
		body = render.Raster(m.Frame, innerW, innerH)
	}

	surface := lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, body)

	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(surface)

	return lipgloss.JoinVertical(lipgloss.Left, boxed, m.footer(width))
}

func (m Model) footer(width int) string {
	indicator := theme.StyleDimmed.Render("—/—")
	if m.Frame != nil && m.TotalPages > 0 {
		indicator = theme.StyleHeader.Render(
			fmt.Sprintf("Page %d/%d", m.Frame.Page+1, m.TotalPages))
	}

	zoom := ""
	if m.Frame != nil {
		zoom = theme.StyleAccent.Render(fmt.Sprintf("%d%%", m.Frame.Zoom))
	}

	busy := ""
	if m.Loading {
		busy = theme.StyleDimmed.Render(m.Spinner + " loading")
	}

	left := indicator
	if zoom != "" {
		left += "  " + zoom
	}
	if busy != "" {
		left += "  " + busy
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(left)
}
