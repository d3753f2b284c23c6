package ui

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/abelbrown/catalog/internal/catalog"
)

// imageHeight is the number of lines reserved for the image block, so
// every card in a row has the same height with or without a thumbnail.
const imageHeight = 8

// ThumbnailSize returns the cell dimensions a thumbnail should be drawn at
// to fill the image block of a card of the given outer width.
func ThumbnailSize(cardWidth int) (width, height int) {
	return max(cardWidth, 20) - 2 - CardStyle.GetHorizontalPadding(), imageHeight
}

// CardOptions controls how a single card is drawn.
type CardOptions struct {
	Width     int    // outer width including border
	Selected  bool   // draw with the selection border
	Thumbnail string // pre-rendered image; empty falls back to alt text
}

// RenderCard maps one item to its card. Pure: no state, no I/O.
func RenderCard(item catalog.Item, opts CardOptions) string {
	width := opts.Width
	if width < 20 {
		width = 20
	}
	style := CardStyle
	if opts.Selected {
		style = CardSelectedStyle
	}
	// Width covers padding but not the border.
	inner := width - 2 - style.GetHorizontalPadding()

	lines := []string{
		CardName.Render(truncate(item.Name, inner)),
		CardPrice.Render(truncate(item.Price.Display, inner)),
		"",
		renderImage(item, opts.Thumbnail, inner),
		"",
		RatingLine(item.Rating),
	}

	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RatingLine formats "★ 4.2 (10 reviews)".
func RatingLine(r catalog.Rating) string {
	return CardStar.Render("★") + fmt.Sprintf(" %s (%d reviews)", formatAverage(r.Average), r.Reviews)
}

// formatAverage renders avg with one decimal, rounding exact ties away from
// zero. The float's exact binary expansion is rounded, so 4.25 gives "4.3"
// while 4.05 (stored just below 4.05) gives "4.0".
func formatAverage(avg float64) string {
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return fmt.Sprintf("%.1f", avg)
	}
	exact := new(big.Float).SetFloat64(avg).Text('f', 1074)
	return decimal.RequireFromString(exact).StringFixed(1)
}

// renderImage returns the thumbnail, or the item name as alt text with the
// image URI beneath it, centered in a fixed-height block.
func renderImage(item catalog.Item, thumbnail string, width int) string {
	content := thumbnail
	if content == "" {
		alt := []string{CardImageAlt.Render(truncate("[image] "+item.Name, width))}
		if item.Image != "" {
			alt = append(alt, CardPrice.Render(truncate(item.Image, width)))
		}
		content = strings.Join(alt, "\n")
	}
	return lipgloss.Place(width, imageHeight, lipgloss.Center, lipgloss.Center, content)
}

// truncate shortens s to width display cells, adding "…" if truncated.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
