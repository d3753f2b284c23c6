package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorStar      = lipgloss.Color("220") // Yellow
	colorBorder    = lipgloss.Color("238")
)

// CardStyle frames an unselected card.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

// CardSelectedStyle frames the card under the cursor.
var CardSelectedStyle = CardStyle.
	BorderForeground(colorPrimary)

// CardName style for the item name.
var CardName = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// CardPrice style for the verbatim price string.
var CardPrice = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CardImageAlt style for the image fallback text.
var CardImageAlt = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

// CardStar style for the rating glyph.
var CardStar = lipgloss.NewStyle().
	Foreground(colorStar)

// SearchPrompt style for the search input prompt.
var SearchPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// SortOption style for an inactive sort option.
var SortOption = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(0, 1)

// SortOptionActive style for the selected sort option.
var SortOptionActive = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("196")).
	Padding(1, 2)

// EmptyStyle for the no-results message.
var EmptyStyle = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Padding(1, 2)

// LoadingStyle for the loading label next to the spinner.
var LoadingStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Bold(true)

// DebugPanel frames the diagnostics overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorHighlight).
	Padding(1, 2)

// DebugHeaderStyle for section headings inside the overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
