package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/catalog/internal/catalog"
)

func TestRatingLine(t *testing.T) {
	tests := []struct {
		rating catalog.Rating
		want   string
	}{
		{catalog.Rating{Average: 4.2, Reviews: 10}, "★ 4.2 (10 reviews)"},
		{catalog.Rating{Average: 4.411243509154233, Reviews: 453}, "★ 4.4 (453 reviews)"},
		{catalog.Rating{Average: 3, Reviews: 1}, "★ 3.0 (1 reviews)"},
		{catalog.Rating{}, "★ 0.0 (0 reviews)"},
		{catalog.Rating{Average: 4.25, Reviews: 2}, "★ 4.3 (2 reviews)"},
		{catalog.Rating{Average: 3.75, Reviews: 2}, "★ 3.8 (2 reviews)"},
		{catalog.Rating{Average: 1.25, Reviews: 2}, "★ 1.3 (2 reviews)"},
		{catalog.Rating{Average: 4.05, Reviews: 2}, "★ 4.0 (2 reviews)"},
		{catalog.Rating{Average: 5, Reviews: 9}, "★ 5.0 (9 reviews)"},
	}

	for _, tt := range tests {
		if got := RatingLine(tt.rating); got != tt.want {
			t.Errorf("RatingLine(%+v) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}

func TestRenderCardContents(t *testing.T) {
	item := catalog.Item{
		ID:     "1",
		Name:   "Pale Ale",
		Price:  catalog.ParsePrice("$3.50"),
		Image:  "https://example.com/pale.png",
		Rating: catalog.Rating{Average: 4.2, Reviews: 10},
	}

	card := RenderCard(item, CardOptions{Width: 34})
	for _, want := range []string{"Pale Ale", "$3.50", "[image] Pale Ale", "https://example.com/pale.png", "★ 4.2 (10 reviews)"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
	if w := lipgloss.Width(card); w != 34 {
		t.Errorf("card width = %d, want 34", w)
	}
}

func TestRenderCardFixedHeight(t *testing.T) {
	plain := RenderCard(catalog.Item{ID: "1", Name: "A"}, CardOptions{Width: 30})
	withThumb := RenderCard(catalog.Item{ID: "2", Name: "B"}, CardOptions{Width: 30, Thumbnail: "xx\nxx\nxx"})
	selected := RenderCard(catalog.Item{ID: "3", Name: "C"}, CardOptions{Width: 30, Selected: true})

	h := lipgloss.Height(plain)
	if lipgloss.Height(withThumb) != h || lipgloss.Height(selected) != h {
		t.Errorf("card heights differ: plain %d, thumb %d, selected %d",
			h, lipgloss.Height(withThumb), lipgloss.Height(selected))
	}
}

func TestRenderCardThumbnailReplacesAlt(t *testing.T) {
	card := RenderCard(catalog.Item{ID: "1", Name: "Stout", Image: "https://x/y.png"}, CardOptions{Width: 34, Thumbnail: "PIXELS"})
	if !strings.Contains(card, "PIXELS") {
		t.Error("thumbnail not rendered")
	}
	if strings.Contains(card, "[image]") {
		t.Error("alt text should be replaced by the thumbnail")
	}
}

func TestRenderCardTruncatesLongName(t *testing.T) {
	name := strings.Repeat("Imperial ", 10)
	card := RenderCard(catalog.Item{ID: "1", Name: name}, CardOptions{Width: 24})
	if w := lipgloss.Width(card); w != 24 {
		t.Errorf("long name widened card to %d", w)
	}
	if !strings.Contains(card, "…") {
		t.Error("expected ellipsis on truncated name")
	}
}

func TestRenderCardMinimumWidth(t *testing.T) {
	card := RenderCard(catalog.Item{ID: "1", Name: "Tiny"}, CardOptions{Width: 5})
	if w := lipgloss.Width(card); w != 20 {
		t.Errorf("width = %d, want clamp to 20", w)
	}
}

func TestRenderGrid(t *testing.T) {
	items := make([]catalog.Item, 5)
	for i := range items {
		items[i] = catalog.Item{ID: catalog.ID(rune('a' + i)), Name: "Beer " + string(rune('A'+i))}
	}

	grid, rowHeight := RenderGrid(items, 80, 30, 0, nil)
	cardHeight := lipgloss.Height(RenderCard(items[0], CardOptions{Width: 30}))
	if rowHeight != cardHeight {
		t.Errorf("rowHeight = %d, want %d", rowHeight, cardHeight)
	}
	// 80 columns fit two 30-wide cards: 5 items make 3 rows.
	if h := lipgloss.Height(grid); h != 3*cardHeight {
		t.Errorf("grid height = %d, want %d", h, 3*cardHeight)
	}
	for _, item := range items {
		if !strings.Contains(grid, item.Name) {
			t.Errorf("grid missing %q", item.Name)
		}
	}

	if out, h := RenderGrid(nil, 80, 30, -1, nil); out != "" || h != 0 {
		t.Error("empty grid should render nothing")
	}
}

func TestGridColumns(t *testing.T) {
	tests := []struct{ width, card, want int }{
		{80, 34, 2},
		{69, 34, 2},
		{68, 34, 1},
		{10, 34, 1},
		{140, 34, 4},
	}
	for _, tt := range tests {
		if got := gridColumns(tt.width, tt.card); got != tt.want {
			t.Errorf("gridColumns(%d, %d) = %d, want %d", tt.width, tt.card, got, tt.want)
		}
	}
}
