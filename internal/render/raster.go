package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Raster draws a frame into a cell grid no larger than maxCols x maxRows,
// using half-block glyphs so each terminal cell carries two vertical pixels.
// Aspect ratio is preserved with nearest-neighbor sampling.
func Raster(f *Frame, maxCols, maxRows int) string {
	if f == nil || f.Img == nil || maxCols < 1 || maxRows < 1 {
		return ""
	}
	bounds := f.Img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return ""
	}

	cols, rows := fitCells(srcW, srcH, maxCols, maxRows)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			topY := bounds.Min.Y + (row*2)*srcH/(rows*2)
			botY := bounds.Min.Y + (row*2+1)*srcH/(rows*2)
			x := bounds.Min.X + col*srcW/cols

			style := lipgloss.NewStyle().
				Foreground(cellColor(f.Img, x, topY)).
				Background(cellColor(f.Img, x, botY))
			b.WriteString(style.Render("▀"))
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// fitCells scales source pixel dimensions into the cell budget, counting two
// pixel rows per cell row.
func fitCells(srcW, srcH, maxCols, maxRows int) (cols, rows int) {
	cols = maxCols
	rows = cols * srcH / (2 * srcW)
	if rows > maxRows {
		rows = maxRows
		cols = rows * 2 * srcW / srcH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

func cellColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
