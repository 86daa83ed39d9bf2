// Package help renders the key reference overlay from markdown.
package help

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dj-ayush/Pdf-Navigation/internal/theme"
)

const reference = `# pdfnav

## Navigation
- **←/h  →/l** — previous / next page
- **g** — go to page (type a 1-based number, enter to confirm)
- **+ / -** — zoom in / out (25% steps)
- **f** — fit page to window
- **r** — refresh (re-render and reconcile now)

## Document
- **u** — upload a PDF (16 MiB limit)

## Control methods
- **1 / 2 / 3** — select eye gaze / hand gesture / voice
- **s** — start or stop the selected control method

## Other
- **?** — toggle this help
- **q** — quit
`

// Model caches the rendered markdown for the last width it was given.
type Model struct {
	rendered string
	width    int
}

// New creates a help overlay model.
func New() Model {
	return Model{}
}

// SetWidth re-renders the markdown when the width changed. Callers invoke it
// on toggle and resize; View itself stays a pure read so it can run on a
// per-frame copy of the model.
func (m *Model) SetWidth(width int) {
	w := width
	if w < 40 {
		w = 40
	}
	if m.rendered != "" && m.width == w {
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(w-6),
	)
	if err == nil {
		if out, err := r.Render(reference); err == nil {
			m.rendered = out
			m.width = w
			return
		}
	}
	m.rendered = reference
	m.width = w
}

// View renders the overlay from the cached markdown.
func (m Model) View() string {
	out := m.rendered
	if out == "" {
		out = reference
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(out)
}
