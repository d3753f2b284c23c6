package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/abelbrown/catalog/internal/diag"
)

// debugPanelChrome is the number of lines DebugPanel's border and vertical
// padding take. Must follow the DebugPanel style.
const debugPanelChrome = 4

// debugOverlay renders load stats and recent events. Empty when ring is nil.
func debugOverlay(ring *diag.Ring, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	now := time.Now()

	var lines []string
	lines = append(lines, DebugHeaderStyle.Render("Diagnostics"))
	lines = append(lines, fmt.Sprintf("  Load:      %d complete, %d errors, %d discarded",
		stats[diag.KindLoadComplete], stats[diag.KindLoadError], stats[diag.KindLoadDiscard]))
	lines = append(lines, fmt.Sprintf("  View:      %d searches, %d sorts",
		stats[diag.KindSearch], stats[diag.KindSort]))
	lines = append(lines, fmt.Sprintf("  Images:    %d errors", stats[diag.KindThumbError]))
	lines = append(lines, fmt.Sprintf("  Buffer:    %d / %d events", ring.Len(), ring.Cap()))
	lines = append(lines, "")

	lines = append(lines, DebugHeaderStyle.Render("Recent Events"))
	for _, e := range ring.Last(20) {
		lines = append(lines, eventLine(e, now))
	}

	maxHeight := max(1, height-debugPanelChrome)
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}

	panelWidth := max(20, min(76, width-4))
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

func eventLine(e diag.Event, now time.Time) string {
	line := fmt.Sprintf("  %6s  %-14s", formatAge(now.Sub(e.Time)), string(e.Kind))
	switch e.Kind {
	case diag.KindSearch:
		line += fmt.Sprintf("  %q → %d", e.Term, e.Count)
	case diag.KindSort:
		line += fmt.Sprintf("  %s", e.Sort)
	case diag.KindLoadComplete:
		line += fmt.Sprintf("  %d items in %s", e.Count, e.Dur.Round(time.Millisecond))
	}
	if e.Msg != "" {
		line += "  " + truncate(e.Msg, 30)
	}
	if e.Err != "" {
		line += "  ERR:" + truncate(e.Err, 30)
	}
	if e.RequestID != "" {
		line += "  req:" + truncate(e.RequestID, 8)
	}
	return line
}

// formatAge formats a duration compactly. Negative durations clamp to "0ms".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0ms"
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}
