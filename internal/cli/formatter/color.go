package formatter

import (
	"fmt"
	"strings"

	"github.com/PicoEvanZhu/workdeck/internal/domain"
	"github.com/PicoEvanZhu/workdeck/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BarStyle returns the lipgloss style for a timeline bar's status bucket.
func BarStyle(s timeline.Status) lipgloss.Style {
	switch s {
	case timeline.StatusDone:
		return StyleGreen
	case timeline.StatusOverdue:
		return StyleRed
	case timeline.StatusInProgress:
		return StyleYellow
	case timeline.StatusNotStarted:
		return StyleBlue
	default:
		return StyleDim
	}
}

// StatePill returns a colored state indicator for a work item state.
func StatePill(state string) string {
	switch strings.ToLower(state) {
	case strings.ToLower(domain.StateNew):
		return StyleBlue.Render("○ New")
	case strings.ToLower(domain.StateActive):
		return StyleYellow.Render("▶ Active")
	case strings.ToLower(domain.StateValidate):
		return StylePurple.Render("◈ Validate")
	case strings.ToLower(domain.StateResolved):
		return StyleGreen.Render("✔ Resolved")
	case strings.ToLower(domain.StateClosed):
		return StyleDim.Render("✔ Closed")
	case strings.ToLower(domain.StateRemoved):
		return StyleDim.Render("✖ Removed")
	default:
		return StyleDim.Render(state)
	}
}

// TypeBadge returns a purple-styled work item type label, dimmed when empty.
func TypeBadge(itemType string) string {
	if itemType == "" {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(itemType)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
