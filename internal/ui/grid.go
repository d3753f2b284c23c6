package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/catalog/internal/catalog"
)

// cardGap is the horizontal space between cards in a row.
const cardGap = 1

// gridColumns returns how many cards fit side by side in width.
func gridColumns(width, cardWidth int) int {
	cols := (width + cardGap) / (cardWidth + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// RenderGrid lays the cards out in centered, wrapping rows. The card at
// index selected (or none, when out of range) gets the selection border.
// Returns the rendered grid and the height of one row in lines.
func RenderGrid(items []catalog.Item, width, cardWidth, selected int, thumbs map[catalog.ID]string) (string, int) {
	if len(items) == 0 {
		return "", 0
	}

	cols := gridColumns(width, cardWidth)
	gap := strings.Repeat(" ", cardGap)

	var rows []string
	rowHeight := 0
	for start := 0; start < len(items); start += cols {
		end := min(start+cols, len(items))

		cells := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, gap)
			}
			cells = append(cells, RenderCard(items[i], CardOptions{
				Width:     cardWidth,
				Selected:  i == selected,
				Thumbnail: thumbs[items[i].ID],
			}))
		}

		row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
		if rowHeight == 0 {
			rowHeight = lipgloss.Height(row)
		}
		if width > lipgloss.Width(row) {
			row = lipgloss.PlaceHorizontal(width, lipgloss.Center, row)
		}
		rows = append(rows, row)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...), rowHeight
}
